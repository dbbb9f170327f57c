package models

// BinColor is one of the four biomedical disposal bin colors.
type BinColor string

const (
	BinRed   BinColor = "Red"
	BinGrey  BinColor = "Grey"
	BinBlue  BinColor = "Blue"
	BinWhite BinColor = "White"
)

// WasteCategories lists the seven recognized medical waste classes.
var WasteCategories = []string{
	"General Waste - Metal & Glass",
	"General Waste - Organic",
	"General Waste - Paper",
	"General Waste - Plastic",
	"Infectious Waste",
	"Pathological Waste",
	"Sharps Waste",
}

var biomedicalBins = map[string]BinColor{
	"Pathological Waste":            BinRed,
	"Infectious Waste":              BinRed,
	"General Waste - Organic":       BinGrey,
	"General Waste - Paper":         BinGrey,
	"General Waste - Plastic":       BinBlue,
	"General Waste - Metal & Glass": BinBlue,
	"Sharps Waste":                  BinWhite,
}

// BinFor maps a waste category to its disposal bin color.
func BinFor(category string) (BinColor, bool) {
	bin, ok := biomedicalBins[category]
	return bin, ok
}
