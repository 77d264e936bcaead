package risk

import (
	"fmt"

	"github.com/Alias1177/PanelPredictor/internal/model"
)

const (
	minimumDataPoints = 30
	overfitRatio      = 1.5
)

// Validate flags overfitting, low confidence and thin history. Overfitting is
// suspected when the top pairs hit the recent records far more often than the
// full history.
func Validate(p model.PredictionResult, records []model.DrawRecord, m model.RiskMetrics) model.Validation {
	v := model.Validation{}

	top := topValues(p.RankedPairs, successPairs)
	recent := hitRate(top, tail(records, successWindow))
	overall := hitRate(top, records)
	if recent > overall*overfitRatio {
		v.Errors = append(v.Errors, "Model may be overfitted to historical data")
	}

	if m.ConfidenceInterval.Average < lowConfidence {
		v.Warnings = append(v.Warnings, "Low confidence prediction - consider additional verification")
	}
	if len(records) < minimumDataPoints {
		v.Warnings = append(v.Warnings, fmt.Sprintf("Limited historical data (%d points)", len(records)))
	}

	v.IsValid = len(v.Errors) == 0
	v.Suggestions = suggestions(m)
	return v
}

// hitRate is the share of records whose pair is one of values
func hitRate(values []string, records []model.DrawRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	want := make(map[string]bool, len(values))
	for _, v := range values {
		want[v] = true
	}
	hits := 0
	for _, r := range records {
		if want[r.Pair] {
			hits++
		}
	}
	return float64(hits) / float64(len(records))
}

func suggestions(m model.RiskMetrics) []string {
	var out []string
	if m.RiskScore > highRiskScore {
		out = append(out,
			"Increase analysis window size for more stable patterns",
			"Incorporate additional validation methods")
	}
	if m.ConfidenceInterval.Average < lowConfidence {
		out = append(out,
			"Expand pattern recognition parameters",
			"Include more historical data in analysis")
	}
	if len(out) == 0 {
		out = append(out, "Current analysis parameters appear optimal")
	}
	return out
}
