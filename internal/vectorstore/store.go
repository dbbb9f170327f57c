package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"
)

var (
	// ErrIndexUnavailable indicates the embedding backend could not be reached.
	ErrIndexUnavailable = errors.New("embedding backend unavailable")
	// ErrInvalidTopK indicates a non-positive top-k was requested.
	ErrInvalidTopK = errors.New("top_k must be positive")
)

// Embedder produces fixed-dimensionality vectors for a batch of texts.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Store is an in-memory nearest-neighbor index over catalog product names.
// Immutable after Build; safe for concurrent reads.
type Store struct {
	names    []string
	vectors  [][]float32
	embedder Embedder
	logger   *zap.Logger
}

// Build embeds every name and stores the vectors. An empty name list yields
// an empty store whose every search returns no candidates.
func Build(ctx context.Context, names []string, embedder Embedder, logger *zap.Logger) (*Store, error) {
	s := &Store{
		names:    names,
		embedder: embedder,
		logger:   logger,
	}
	if len(names) == 0 {
		logger.Warn("Building vector store over an empty catalog")
		return s, nil
	}

	vectors, err := embedder.Embed(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}
	if len(vectors) != len(names) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d names", ErrIndexUnavailable, len(vectors), len(names))
	}
	s.vectors = vectors

	logger.Info("Vector store created", zap.Int("items", len(names)))
	return s, nil
}

// Search returns the topK names nearest to the query by cosine distance,
// ascending. Duplicate catalog names may appear more than once.
func (s *Store) Search(ctx context.Context, query string, topK int) ([]string, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTopK, topK)
	}
	if len(s.vectors) == 0 {
		return nil, nil
	}

	embedded, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}
	if len(embedded) == 0 {
		return nil, fmt.Errorf("%w: no embedding returned for query", ErrIndexUnavailable)
	}
	queryVec := embedded[0]

	type scored struct {
		index      int
		similarity float64
	}
	scores := make([]scored, len(s.vectors))
	for i, vec := range s.vectors {
		scores[i] = scored{index: i, similarity: cosineSimilarity(queryVec, vec)}
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].similarity > scores[j].similarity
	})

	if topK > len(scores) {
		topK = len(scores)
	}
	candidates := make([]string, topK)
	for i := 0; i < topK; i++ {
		candidates[i] = s.names[scores[i].index]
	}

	s.logger.Debug("Similarity search completed",
		zap.String("query", query),
		zap.Int("candidates", len(candidates)),
	)
	return candidates, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
