package dto

type AlternativeItem struct {
	Name                          string  `json:"name"`
	CarbonFootprint               float64 `json:"carbonFootprint"`
	TotalAlternateCarbonFootprint float64 `json:"totalAlternateCarbonFootprint"`
}

type ItemReport struct {
	BOMItem                         string            `json:"bomItem"`
	MatchedItem                     *string           `json:"matchedItem"`
	MatchedItemCarbonFootprint      float64           `json:"matchedItemCarbonFootprint"`
	TotalMatchedItemCarbonFootprint float64           `json:"totalMatchedItemCarbonFootprint"`
	Quantity                        float64           `json:"quantity"`
	UnitPrice                       float64           `json:"unitPrice"`
	TotalPrice                      float64           `json:"totalPrice"`
	AlternativeItems                []AlternativeItem `json:"alternativeItems"`
}

type ProcessingReport struct {
	Items                []ItemReport `json:"items"`
	TotalCarbonFootprint float64      `json:"totalCarbonFootprint"`
}
