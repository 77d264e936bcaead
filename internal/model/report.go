package model

import "time"

// ReportSummary condenses the analysis into labels
type ReportSummary struct {
	TotalPredictions    int      `json:"total_predictions"`
	ConfidenceLevel     int      `json:"confidence_level"`
	DataQuality         string   `json:"data_quality"`     // Excellent, Good, Fair, Poor
	PatternStrength     string   `json:"pattern_strength"` // Strong, Moderate, Weak, Very Weak
	ProbabilityInsights []string `json:"probability_insights"`
}

// Report is the assembled output for one dataset
type Report struct {
	ID               string    `json:"id"`
	GeneratedAt      time.Time `json:"generated_at"`
	DatasetID        string    `json:"dataset_id"`
	DatasetName      string    `json:"dataset_name"`
	DataPoints       int       `json:"data_points"`
	WindowSize       int       `json:"window_size"`
	AlgorithmVersion string    `json:"algorithm_version"`

	Summary         ReportSummary `json:"summary"`
	KeyFindings     []string      `json:"key_findings"`
	Recommendations []string      `json:"recommendations"`

	FrequentDigits     []int       `json:"frequent_digits"`
	TopOpenSums        []int       `json:"top_open_sums"`
	TopCloseSums       []int       `json:"top_close_sums"`
	Final4Pairs        []string    `json:"final4_pairs"`
	Final4Fallback     bool        `json:"final4_fallback,omitempty"`
	JackpotTriples     []string    `json:"jackpot_triples"`
	JackpotPairs       []string    `json:"jackpot_pairs"`
	PredictedFamilies  []int       `json:"predicted_families,omitempty"`
	Risk               RiskMetrics `json:"risk"`
	Validation         Validation  `json:"validation"`
	HistoricalAccuracy float64     `json:"historical_accuracy"`
	Warnings           []Warning   `json:"warnings,omitempty"`
}
