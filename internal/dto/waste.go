package dto

type PredictionResponse struct {
	Prediction               string `json:"prediction"`
	MappedBiomedicalCategory string `json:"mapped_biomedical_category"`
}
