package scorer

// Confidence classifies how strongly a score indicates a real error.
type Confidence string

const (
	ConfidenceLow    Confidence = "LOW"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceHigh   Confidence = "HIGH"
)

// Score thresholds. A record is an error at or above ErrorScoreThreshold;
// HIGH confidence begins at HighConfidenceThreshold.
const (
	ErrorScoreThreshold     = 25
	HighConfidenceThreshold = 50
)

// CategoryGeneralError is assigned when a record crosses the error
// threshold on keyword hits alone, which contribute score but no
// category of their own.
const CategoryGeneralError = "GENERAL_ERROR"

// ErrorAnalysis is the scoring result for a single log record.
// Categories are ordered by detection: level severity first, then
// structural patterns; the first entry is the primary category.
// Reasons name every contributing signal and exist for auditability
// only; nothing downstream scores from them.
type ErrorAnalysis struct {
	Score      int        `json:"score"`
	IsError    bool       `json:"is_error"`
	Confidence Confidence `json:"confidence"`
	Categories []string   `json:"categories,omitempty"`
	Reasons    []string   `json:"reasons,omitempty"`
}
