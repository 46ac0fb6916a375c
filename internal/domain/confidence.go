package domain

// VIIRS confidence codes as they appear in the extract.
const (
	ConfidenceLow     = "l"
	ConfidenceNominal = "n"
	ConfidenceHigh    = "h"
)

var confidenceLabels = map[string]string{
	ConfidenceNominal: "Nominal",
	ConfidenceLow:     "Low",
	ConfidenceHigh:    "High",
}

// ConfidenceLabel maps a confidence code to its display label. Codes outside
// l/n/h are returned unchanged.
func ConfidenceLabel(code string) string {
	if label, ok := confidenceLabels[code]; ok {
		return label
	}
	return code
}

// IsKnownConfidence reports whether code is one of l, n or h.
func IsKnownConfidence(code string) bool {
	_, ok := confidenceLabels[code]
	return ok
}
