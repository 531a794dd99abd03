// Package logparse interprets fields of network log records.
package logparse

// Network log severities.
const (
	SeverityLow    = "LOW"
	SeverityMedium = "MEDIUM"
	SeverityHigh   = "HIGH"
)

// NormalizeSeverity returns severity when it is exactly LOW, MEDIUM or HIGH
// and "" otherwise. Matching is case-sensitive and nothing is trimmed, so
// "low" or "WARN" render as an unclassified record.
func NormalizeSeverity(severity string) string {
	switch severity {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return severity
	default:
		return ""
	}
}
