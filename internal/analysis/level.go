package analysis

// Level is an ordinal band for a match score.
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"

	highThreshold   = 80
	mediumThreshold = 60
)

// MatchLevel classifies any score, including negative or above 100 ones.
func MatchLevel(score float64) Level {
	switch {
	case score >= highThreshold:
		return LevelHigh
	case score >= mediumThreshold:
		return LevelMedium
	default:
		return LevelLow
	}
}

// ConfidenceLabel is the human-readable form used in analysis headers.
func (l Level) ConfidenceLabel() string {
	switch l {
	case LevelHigh:
		return "High Confidence"
	case LevelMedium:
		return "Medium Confidence"
	default:
		return "Low Confidence"
	}
}
