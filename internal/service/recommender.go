package service

import (
	"context"
	"sort"

	"ecomed-ai/internal/dto"
	"ecomed-ai/internal/models"

	"go.uber.org/zap"
)

// CandidateSearcher narrows the catalog to the names nearest a query.
type CandidateSearcher interface {
	Search(ctx context.Context, query string, topK int) ([]string, error)
}

// Disambiguator picks the best match and equivalents among candidates.
type Disambiguator interface {
	Disambiguate(ctx context.Context, bomItem string, candidates []string) models.MatchResult
}

// FootprintLookup resolves a product name to its carbon footprint.
type FootprintLookup interface {
	CarbonFootprint(productName string) float64
}

// Recommender runs the BOM matching pipeline: retrieval, LLM
// disambiguation, footprint lookup and alternative filtering.
type Recommender struct {
	searcher CandidateSearcher
	matcher  Disambiguator
	catalog  FootprintLookup
	topK     int
	logger   *zap.Logger
}

func NewRecommender(
	searcher CandidateSearcher,
	matcher Disambiguator,
	catalog FootprintLookup,
	topK int,
	logger *zap.Logger,
) *Recommender {
	return &Recommender{
		searcher: searcher,
		matcher:  matcher,
		catalog:  catalog,
		topK:     topK,
		logger:   logger,
	}
}

// rowMatch is the outcome of retrieval + disambiguation for one row.
type rowMatch struct {
	matchedItem     *string
	equivalentItems []string
}

// ProcessBOM processes rows sequentially and assembles the batch report.
// A failure while matching one row degrades that row to a null match and
// does not affect the rest of the batch.
func (r *Recommender) ProcessBOM(ctx context.Context, rows []models.BOMRow) *dto.ProcessingReport {
	items := make([]dto.ItemReport, 0, len(rows))
	totalCF := 0.0

	for _, row := range rows {
		r.logger.Info("Processing BOM item", zap.String("bom_item", row.ProductName))

		match, err := r.matchRow(ctx, row)
		if err != nil {
			r.logger.Error("Error processing BOM item",
				zap.String("bom_item", row.ProductName),
				zap.Error(err),
			)
			items = append(items, degradedReport(row))
			continue
		}

		report := r.buildReport(row, match)
		totalCF += report.TotalMatchedItemCarbonFootprint
		items = append(items, report)
	}

	return &dto.ProcessingReport{
		Items:                items,
		TotalCarbonFootprint: totalCF,
	}
}

func (r *Recommender) matchRow(ctx context.Context, row models.BOMRow) (rowMatch, error) {
	candidates, err := r.searcher.Search(ctx, row.ProductName, r.topK)
	if err != nil {
		return rowMatch{}, err
	}

	result := r.matcher.Disambiguate(ctx, row.ProductName, candidates)
	return rowMatch{
		matchedItem:     result.MatchedItem,
		equivalentItems: result.EquivalentItems,
	}, nil
}

func (r *Recommender) buildReport(row models.BOMRow, match rowMatch) dto.ItemReport {
	alternatives := []dto.AlternativeItem{}
	matchedCF := 0.0

	if match.matchedItem != nil {
		matchedCF = r.catalog.CarbonFootprint(*match.matchedItem)

		// Set semantics: each equivalent is considered once, the matched
		// item itself never qualifies as its own alternative.
		seen := make(map[string]struct{}, len(match.equivalentItems))
		for _, alt := range match.equivalentItems {
			if alt == *match.matchedItem {
				continue
			}
			if _, dup := seen[alt]; dup {
				continue
			}
			seen[alt] = struct{}{}

			altCF := r.catalog.CarbonFootprint(alt)
			// Strictly lower footprint than the match, and a valid
			// positive value. The bounds are exclusive on both sides.
			if 0 < altCF && altCF < matchedCF {
				alternatives = append(alternatives, dto.AlternativeItem{
					Name:                          alt,
					CarbonFootprint:               altCF,
					TotalAlternateCarbonFootprint: altCF * row.Quantity,
				})
			}
		}
		sort.SliceStable(alternatives, func(i, j int) bool {
			return alternatives[i].CarbonFootprint < alternatives[j].CarbonFootprint
		})
	}

	totalMatchedCF := 0.0
	if match.matchedItem != nil {
		totalMatchedCF = matchedCF * row.Quantity
	}

	return dto.ItemReport{
		BOMItem:                         row.ProductName,
		MatchedItem:                     match.matchedItem,
		MatchedItemCarbonFootprint:      matchedCF,
		TotalMatchedItemCarbonFootprint: totalMatchedCF,
		Quantity:                        row.Quantity,
		UnitPrice:                       row.UnitPrice,
		TotalPrice:                      row.Quantity * row.UnitPrice,
		AlternativeItems:                alternatives,
	}
}

func degradedReport(row models.BOMRow) dto.ItemReport {
	return dto.ItemReport{
		BOMItem:                         row.ProductName,
		MatchedItem:                     nil,
		MatchedItemCarbonFootprint:      0.0,
		TotalMatchedItemCarbonFootprint: 0.0,
		Quantity:                        row.Quantity,
		UnitPrice:                       row.UnitPrice,
		TotalPrice:                      row.Quantity * row.UnitPrice,
		AlternativeItems:                []dto.AlternativeItem{},
	}
}
