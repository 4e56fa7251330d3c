package models

// AnalyzeRequest is the body of POST /api/analyze.
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// ReviewStats populates the statistics panel next to the prediction.
type ReviewStats struct {
	WordCount    int `json:"word_count"`
	TokenCount   int `json:"token_count"`
	UnknownCount int `json:"unknown_count"`
}

// Prediction is the outcome of one pipeline run. Probability is the raw
// model output; Confidence is its distance from the 0.5 threshold scaled
// to [50,100].
type Prediction struct {
	Label       string      `json:"label"`
	Probability float64     `json:"probability"`
	Confidence  float64     `json:"confidence"`
	VaderScore  float64     `json:"vader_score"`
	Stats       ReviewStats `json:"stats"`
}

// ErrorResponse is the inline error body returned for invalid input.
type ErrorResponse struct {
	Error string `json:"error"`
}

const (
	LabelPositive = "positive"
	LabelNegative = "negative"
)
