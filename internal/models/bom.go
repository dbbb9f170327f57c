package models

// BOMRow is one line of an uploaded bill of materials.
type BOMRow struct {
	ProductName string
	Quantity    float64
	UnitPrice   float64
}

// MatchResult is the disambiguator's verdict for a single BOM row.
// MatchedItem is nil when no candidate was judged a valid match.
type MatchResult struct {
	MatchedItem     *string  `json:"matched_item"`
	EquivalentItems []string `json:"equivalent_items"`
}
