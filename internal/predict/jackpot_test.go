package predict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/PanelPredictor/internal/model"
)

func TestJackpotThresholds(t *testing.T) {
	in := JackpotInput{
		Families: []model.FamilySelection{
			{Sum: 6, Triples: []string{"123", "150"}},
			{Sum: 2, Triples: []string{"345", "123"}},
		},
		BestGuesses: []string{"123", "150", "345"},
		Recent:      []string{"123", "240"},
		Counts:      map[string]int{"123": 2, "240": 1, "345": 1},
	}
	got := Jackpot(in)

	require.Len(t, got, 2)

	assert.Equal(t, "123", got[0].Value)
	// listed by both families: 2*200 + 500 + 300 + 2*50 + 137
	assert.Equal(t, 1437, got[0].Score)
	assert.Equal(t, "678", got[0].Cut)
	assert.Equal(t, 2, got[0].Frequency)
	assert.Equal(t, 1.37, got[0].Quality)
	assert.Equal(t, []string{SourceFamily, SourceBestGuess, SourceRecent}, got[0].Sources)

	assert.Equal(t, "345", got[1].Value)
	assert.Equal(t, 847, got[1].Score)
}

func TestJackpotFamilyBonusPerFamily(t *testing.T) {
	tests := []struct {
		name     string
		families []model.FamilySelection
		want     int
	}{
		{name: "one family", families: []model.FamilySelection{{Sum: 7, Triples: []string{"124"}}}},
		{
			name: "open and close families overlap",
			families: []model.FamilySelection{
				{Sum: 7, Triples: []string{"124"}},
				{Sum: 7, Triples: []string{"124"}},
			},
			want: 957,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Jackpot(JackpotInput{
				Families:    tt.families,
				BestGuesses: []string{"124"},
				Counts:      map[string]int{},
			})
			if tt.want == 0 {
				// 200 + 500 + 57 misses the score floor
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Score)
			assert.Equal(t, []string{SourceFamily, SourceBestGuess}, got[0].Sources)
		})
	}
}

func TestJackpotDropsUnseenRepeats(t *testing.T) {
	// recurrence needs two sightings, so an unseen triple tops out at 700
	in := JackpotInput{
		Families:    []model.FamilySelection{{Triples: []string{"118"}}},
		BestGuesses: []string{"118"},
		Recent:      []string{"118"},
		Counts:      map[string]int{},
	}
	assert.Empty(t, Jackpot(in))
}

func TestJackpotKeepsEight(t *testing.T) {
	var guesses []string
	counts := map[string]int{}
	for _, v := range []string{"123", "234", "345", "456", "567", "678", "789", "012", "135", "246"} {
		guesses = append(guesses, v)
		counts[v] = 2
	}
	got := Jackpot(JackpotInput{BestGuesses: guesses, Recent: guesses, Counts: counts})

	require.Len(t, got, 8)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
}
