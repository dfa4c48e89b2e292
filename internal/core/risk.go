package core

import "fmt"

// Severity categories returned by the prediction model.
const (
	SeverityAlta  = "ALTA"
	SeverityMedia = "MEDIA"
	SeverityBaja  = "BAJA"
)

// RiskForSeverity maps a categorical severity to the normalized risk used
// for color coding. Unknown values map to the low-risk band.
func RiskForSeverity(severity string) float64 {
	switch severity {
	case SeverityAlta:
		return 0.8
	case SeverityMedia:
		return 0.5
	case SeverityBaja:
		return 0.2
	default:
		return 0.2
	}
}

// SeverityForRisk is the inverse used when synthesizing fallback data, so a
// synthesized severity never contradicts its risk value.
func SeverityForRisk(risk float64) string {
	switch {
	case risk > 0.7:
		return SeverityAlta
	case risk > 0.4:
		return SeverityMedia
	default:
		return SeverityBaja
	}
}

// ColorForRisk interpolates risk into the overlay color: full green at 0,
// full red at 1.
func ColorForRisk(risk float64) string {
	if risk < 0 {
		risk = 0
	}
	if risk > 1 {
		risk = 1
	}
	r := int(255 * risk)
	g := int(255 * (1 - risk))
	return fmt.Sprintf("rgb(%d,%d,0)", r, g)
}
