package model

// ConfidenceInterval is expressed in percent of the best candidate score
type ConfidenceInterval struct {
	Lower   int `json:"lower"`
	Upper   int `json:"upper"`
	Average int `json:"average"`
}

// RiskMetrics holds the risk assessment of a prediction
type RiskMetrics struct {
	ConfidenceInterval ConfidenceInterval `json:"confidence_interval"`
	RiskScore          int                `json:"risk_score"`
	RiskLevel          string             `json:"risk_level"` // Low, Medium-Low, Medium-High, High
	ScoreSpread        float64            `json:"score_spread"`
	Volatility         int                `json:"volatility"`
	SuccessProbability int                `json:"success_probability"`
	Recommendations    []string           `json:"recommendations"`
}

// Validation flags quality problems of a prediction
type Validation struct {
	IsValid     bool     `json:"is_valid"`
	Errors      []string `json:"errors,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
	Suggestions []string `json:"suggestions"`
}
