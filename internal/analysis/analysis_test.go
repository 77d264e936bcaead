package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/PanelPredictor/internal/model"
)

func sample() []model.DrawRecord {
	return []model.DrawRecord{
		{Open: "123", Pair: "45", Close: "678"},
		{Open: "234", Pair: "56", Close: "789"},
	}
}

func TestWindow(t *testing.T) {
	records := sample()
	tests := []struct {
		name string
		size int
		want int
	}{
		{"default", 0, 2},
		{"negative", -4, 2},
		{"exact", 2, 2},
		{"suffix", 1, 1},
		{"larger", 50, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Window(records, tt.size)
			require.Len(t, w, tt.want)
			assert.Equal(t, records[len(records)-1], w[len(w)-1])
		})
	}
}

func TestAnalyzeScenario(t *testing.T) {
	res := Analyze(sample(), 2)

	assert.Equal(t, 2, res.WindowSize)
	assert.Equal(t, 2, res.Frequency.DigitCounts[2])
	assert.Equal(t, 12, res.Frequency.DigitSamples)
	assert.Contains(t, res.Panels.Pairs, "90")
	assert.Equal(t, 1, res.Panels.Pairs["45"].Hits)
}

func TestAnalyzeDefaultWindow(t *testing.T) {
	records := make([]model.DrawRecord, 40)
	for i := range records {
		records[i] = model.DrawRecord{Open: "111", Pair: "33", Close: "222"}
	}
	res := Analyze(records, 0)

	assert.Equal(t, DefaultWindowSize, res.WindowSize)
	assert.Len(t, res.Window, DefaultWindowSize)
	assert.Len(t, res.Records, 40)
}

func TestAnalyzeDeterministic(t *testing.T) {
	records := []model.DrawRecord{
		{Open: "123", Pair: "61", Close: "579"},
		{Open: "480", Pair: "24", Close: "149"},
		{Open: "123", Pair: "65", Close: "168"},
		{Open: "357", Pair: "53", Close: "120"},
	}
	assert.Equal(t, Analyze(records, 3), Analyze(records, 3))
}
