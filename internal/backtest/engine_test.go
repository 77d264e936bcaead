package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/PanelPredictor/internal/model"
	"github.com/Alias1177/PanelPredictor/internal/predict"
)

func sequence() []model.DrawRecord {
	return []model.DrawRecord{
		{Open: "111", Pair: "30", Close: "222"},
		{Open: "333", Pair: "91", Close: "111"},
		{Open: "111", Pair: "36", Close: "444"},
		{Open: "555", Pair: "57", Close: "666"},
		{Open: "777", Pair: "13", Close: "888"},
	}
}

// previous returns the triples seen on the last visible day
func previous(history []model.DrawRecord) []string {
	last := history[len(history)-1]
	return []string{last.Open, last.Close}
}

func TestRun(t *testing.T) {
	res := Run(sequence(), previous, 0)

	require.Equal(t, 4, res.Tested)
	// 111 carries over twice, then nothing repeats
	assert.Equal(t, []bool{true, true, false, false}, hits(res))
	assert.Equal(t, 2, res.Hits)
	assert.Equal(t, 50.0, res.Accuracy)
	assert.Equal(t, 2, res.MaxConsecutive.Hits)
	assert.Equal(t, 2, res.MaxConsecutive.Misses)
}

func TestRunLookback(t *testing.T) {
	tests := []struct {
		name     string
		lookback int
		tested   int
		first    int
	}{
		{"whole sequence", 0, 4, 0},
		{"last three", 3, 2, 2},
		{"larger than history", 50, 4, 0},
		{"single record", 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Run(sequence(), previous, tt.lookback)
			assert.Equal(t, tt.tested, res.Tested)
			if tt.tested > 0 {
				assert.Equal(t, tt.first, res.Transitions[0].Index)
			}
		})
	}
}

func TestRunAccuracyRounding(t *testing.T) {
	records := append(sequence(), model.DrawRecord{Open: "000", Pair: "00", Close: "000"})
	res := Run(records, previous, 0)

	require.Equal(t, 5, res.Tested)
	assert.Equal(t, 40.0, res.Accuracy)

	assert.Equal(t, 33.3, accuracy(1, 3))
	assert.Equal(t, 66.7, accuracy(2, 3))
	assert.Zero(t, accuracy(0, 0))
}

func TestRunNoLookahead(t *testing.T) {
	records := sequence()
	var seen []int
	Run(records, func(history []model.DrawRecord) []string {
		seen = append(seen, len(history))
		return nil
	}, 0)
	assert.Equal(t, []int{1, 2, 3, 4}, seen)
}

func TestRunIgnoresFutureRecords(t *testing.T) {
	records := append([]model.DrawRecord(nil), sequence()...)
	for len(records) < 24 {
		src := records[len(records)-5]
		records = append(records, model.DrawRecord{Open: src.Close, Pair: src.Pair, Close: src.Open})
	}

	candidates := func(h []model.DrawRecord) []string { return predict.JackpotValues(h, 30) }
	full := Run(records, candidates, 0)

	for _, cut := range []int{10, 17, 22} {
		truncated := Run(records[:cut+2], candidates, 0)
		last := truncated.Transitions[len(truncated.Transitions)-1]
		require.Equal(t, cut, last.Index)
		assert.Equal(t, full.Transitions[cut], last)
	}
}

func TestFormatResults(t *testing.T) {
	assert.Equal(t, "No backtest results available", FormatResults(model.BacktestResult{}))

	out := FormatResults(Run(sequence(), previous, 0))
	assert.Contains(t, out, "Transitions tested: 4")
	assert.Contains(t, out, "Hits: 2 (50.0%)")
}

func hits(r model.BacktestResult) []bool {
	out := make([]bool, len(r.Transitions))
	for i, tr := range r.Transitions {
		out[i] = tr.Hit
	}
	return out
}
