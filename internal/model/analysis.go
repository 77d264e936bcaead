package model

// FrequencyTables holds digit, sum and value counts over a record window
type FrequencyTables struct {
	DigitCounts    [10]int        `json:"digit_counts"`     // every digit of open and close triples
	OpenSumCounts  [10]int        `json:"open_sum_counts"`  // digit sum mod 10 of open triples
	CloseSumCounts [10]int        `json:"close_sum_counts"` // digit sum mod 10 of close triples
	SumCounts      [10]int        `json:"sum_counts"`       // open and close sums combined
	TripleCounts   map[string]int `json:"triple_counts"`
	PairCounts     map[string]int `json:"pair_counts"`

	DigitSamples int `json:"digit_samples"`
	SumSamples   int `json:"sum_samples"`

	DigitProbabilities    [10]float64 `json:"digit_probabilities"`
	OpenSumProbabilities  [10]float64 `json:"open_sum_probabilities"`
	CloseSumProbabilities [10]float64 `json:"close_sum_probabilities"`
	SumProbabilities      [10]float64 `json:"sum_probabilities"`
}

// PanelStats holds windowed statistics for one related-group key
type PanelStats struct {
	Hits           int `json:"hits"`
	Appearances    int `json:"appearances"`
	LastSeenOffset int `json:"last_seen_offset"` // 1 = most recent record of the window
	AsOpen         int `json:"as_open,omitempty"`
	AsClose        int `json:"as_close,omitempty"`
}

// PanelAnalysis groups the panel maps built from one window
type PanelAnalysis struct {
	Pairs        map[string]PanelStats `json:"pairs"`
	OpenTriples  map[string]PanelStats `json:"open_triples"`
	CloseTriples map[string]PanelStats `json:"close_triples"`
}

// FamilySequence is a repeated run of pair families
type FamilySequence struct {
	Sequence        [3]int  `json:"sequence"`
	Offset          int     `json:"offset"`         // where the repeated run starts
	EarlierOffset   int     `json:"earlier_offset"` // where it was first seen
	PredictedFamily int     `json:"predicted_family"`
	Confidence      float64 `json:"confidence"`
}

// Patterns holds the pattern detector output for one window
type Patterns struct {
	Sequential       []string         `json:"sequential"`
	Repeating        []string         `json:"repeating"`
	MirrorRecurrence []string         `json:"mirror_recurrence"`
	FamilySequences  []FamilySequence `json:"family_sequences"`
}

// Count returns the total number of detected patterns
func (p Patterns) Count() int {
	return len(p.Sequential) + len(p.Repeating) + len(p.MirrorRecurrence) + len(p.FamilySequences)
}

// AnalysisResult is the aggregate for one (records, window size) pair
type AnalysisResult struct {
	WindowSize int             `json:"window_size"`
	Records    []DrawRecord    `json:"-"`
	Window     []DrawRecord    `json:"window"` // suffix slice of Records
	Frequency  FrequencyTables `json:"frequency"`
	Panels     PanelAnalysis   `json:"panels"`
	Patterns   Patterns        `json:"patterns"`
}
