package models

// RiskLevel is the ordered verdict scale: safe < caution < danger
type RiskLevel string

const (
	RiskLevelSafe    RiskLevel = "safe"
	RiskLevelCaution RiskLevel = "caution"
	RiskLevelDanger  RiskLevel = "danger"
)

// Severity returns the rank of the level, -1 for unknown values
func (r RiskLevel) Severity() int {
	switch r {
	case RiskLevelSafe:
		return 0
	case RiskLevelCaution:
		return 1
	case RiskLevelDanger:
		return 2
	default:
		return -1
	}
}

// IsValid reports whether r is one of the three known levels
func (r RiskLevel) IsValid() bool {
	return r.Severity() >= 0
}

// MaxRisk returns the more severe of the two levels
func MaxRisk(a, b RiskLevel) RiskLevel {
	if b.Severity() > a.Severity() {
		return b
	}
	return a
}

// ConfidenceLevel is the coarse bucket shown to end users
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// ConfidenceLevelFor buckets a confidence value: >=0.7 high, >=0.4 medium, else low
func ConfidenceLevelFor(confidence float64) ConfidenceLevel {
	switch {
	case confidence >= 0.7:
		return ConfidenceHigh
	case confidence >= 0.4:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
