// Package risk scores the confidence and spread of a prediction and flags
// quality problems.
package risk

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/Alias1177/PanelPredictor/internal/model"
)

const (
	baseRiskScore   = 50
	highSpread      = 50
	lowSpread       = 20
	highSpreadRisk  = 20
	lowSpreadRelief = 15
	spreadDepth     = 3
	successPairs    = 8
	successWindow   = 30
	highRiskScore   = 70
	lowConfidence   = 60
)

// Risk level labels
const (
	LevelLow        = "Low"
	LevelMediumLow  = "Medium-Low"
	LevelMediumHigh = "Medium-High"
	LevelHigh       = "High"
)

// Assess computes the risk metrics of a prediction against the history it was
// built from
func Assess(p model.PredictionResult, records []model.DrawRecord) model.RiskMetrics {
	scores := make([]float64, len(p.RankedPairs))
	for i, c := range p.RankedPairs {
		scores[i] = c.Score
	}

	m := model.RiskMetrics{
		ConfidenceInterval: confidence(scores),
		Volatility:         volatility(scores),
		SuccessProbability: int(math.Round(successRate(topValues(p.RankedPairs, successPairs), tail(records, successWindow)))),
	}
	m.RiskScore, m.ScoreSpread = riskScore(scores)
	m.RiskLevel = Level(m.RiskScore)
	m.Recommendations = recommendations(m.RiskScore, m.ConfidenceInterval)
	return m
}

// Level maps a risk score to its label
func Level(score int) string {
	switch {
	case score <= 25:
		return LevelLow
	case score <= 50:
		return LevelMediumLow
	case score <= 75:
		return LevelMediumHigh
	default:
		return LevelHigh
	}
}

func confidence(scores []float64) model.ConfidenceInterval {
	if len(scores) == 0 {
		return model.ConfidenceInterval{}
	}
	avg := stat.Mean(scores, nil)
	maxScore := scores[0]
	for _, s := range scores[1:] {
		maxScore = math.Max(maxScore, s)
	}
	if maxScore <= 0 {
		return model.ConfidenceInterval{}
	}

	ratio := avg / maxScore
	return model.ConfidenceInterval{
		Lower:   int(math.Round(ratio * 50)),
		Upper:   int(math.Round(ratio * 85)),
		Average: int(math.Round(ratio * 100)),
	}
}

// riskScore starts neutral and moves with the spread of the top candidates
func riskScore(scores []float64) (int, float64) {
	score := baseRiskScore
	if len(scores) == 0 {
		return score, 0
	}

	top := scores
	if len(top) > spreadDepth {
		top = top[:spreadDepth]
	}
	lo, hi := top[0], top[0]
	for _, s := range top[1:] {
		lo = math.Min(lo, s)
		hi = math.Max(hi, s)
	}
	spread := hi - lo

	if spread > highSpread {
		score += highSpreadRisk
	}
	if spread < lowSpread {
		score -= lowSpreadRelief
	}
	return min(max(score, 0), 100), spread
}

// volatility is the rounded population standard deviation of the scores
func volatility(scores []float64) int {
	if len(scores) < 2 {
		return 0
	}
	_, variance := stat.PopMeanVariance(scores, nil)
	return int(math.Round(math.Sqrt(variance)))
}

// successRate is the percentage of values that occurred as a pair in records
func successRate(values []string, records []model.DrawRecord) float64 {
	if len(values) == 0 {
		return 0
	}
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		seen[r.Pair] = true
	}
	hits := 0
	for _, v := range values {
		if seen[v] {
			hits++
		}
	}
	return float64(hits) / float64(len(values)) * 100
}

func recommendations(score int, ci model.ConfidenceInterval) []string {
	var recs []string
	if score > highRiskScore {
		recs = append(recs,
			"Consider reducing position size due to high risk",
			"Wait for more consistent patterns to emerge")
	}
	if ci.Average < lowConfidence {
		recs = append(recs, "Low confidence level - verify with additional analysis")
	}
	if len(recs) == 0 {
		recs = append(recs, "Risk level acceptable for standard analysis")
	}
	return recs
}

func topValues(ranked []model.ScoredCandidate, n int) []string {
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	values := make([]string, len(ranked))
	for i, c := range ranked {
		values[i] = c.Value
	}
	return values
}

func tail(records []model.DrawRecord, n int) []model.DrawRecord {
	if len(records) > n {
		return records[len(records)-n:]
	}
	return records
}
