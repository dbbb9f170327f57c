package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ecomed-ai/internal/models"

	"go.uber.org/zap"
)

// Generator abstracts the synchronous text LLM call.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Matcher asks the LLM to pick the best catalog match and equivalent
// substitutes for a BOM item out of a candidate list.
type Matcher struct {
	llm    Generator
	logger *zap.Logger
}

func NewMatcher(llm Generator, logger *zap.Logger) *Matcher {
	return &Matcher{
		llm:    llm,
		logger: logger,
	}
}

func buildMatchPrompt(bomItem string, candidates []string) string {
	candidateList, _ := json.MarshalIndent(candidates, "", "  ")

	return fmt.Sprintf(`You are provided with a list of candidate product names.
For the BOM item: "%s", identify the best matching candidate and any equivalent items.
Instructions:
1. If no candidate is a valid match, set "matched_item" to null.
2. If there are no equivalent items, set "equivalent_items" to an empty list.
Return your answer in JSON format:
{
  "matched_item": "<best match or null>",
  "equivalent_items": ["item1", "item2", ...]
}

Candidates:
%s`, bomItem, string(candidateList))
}

// Disambiguate returns the LLM's verdict for one BOM item. Any call or
// parse failure degrades to "no match": this method never returns an error,
// so one bad model response cannot abort a batch.
func (m *Matcher) Disambiguate(ctx context.Context, bomItem string, candidates []string) models.MatchResult {
	empty := models.MatchResult{MatchedItem: nil, EquivalentItems: []string{}}

	response, err := m.llm.Generate(ctx, buildMatchPrompt(bomItem, candidates))
	if err != nil {
		m.logger.Error("LLM call failed",
			zap.String("bom_item", bomItem),
			zap.Error(err),
		)
		return empty
	}

	result, err := parseMatchResponse(response)
	if err != nil {
		m.logger.Error("Invalid JSON from LLM",
			zap.String("bom_item", bomItem),
			zap.String("response", response),
			zap.Error(err),
		)
		return empty
	}

	m.logger.Info("Match disambiguated",
		zap.String("bom_item", bomItem),
		zap.Stringp("matched_item", result.MatchedItem),
		zap.Int("equivalents", len(result.EquivalentItems)),
	)
	return result
}

// parseMatchResponse extracts the JSON object from a free-form model reply.
// Surrounding prose and markdown fences are tolerated; only the substring
// between the first '{' and the last '}' is parsed.
func parseMatchResponse(response string) (models.MatchResult, error) {
	var result models.MatchResult

	text := strings.TrimSpace(response)
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return result, fmt.Errorf("no JSON object in response")
	}

	if err := json.Unmarshal([]byte(text[start:end+1]), &result); err != nil {
		return result, fmt.Errorf("failed to parse match response: %w", err)
	}

	if result.EquivalentItems == nil {
		result.EquivalentItems = []string{}
	}
	return result, nil
}
