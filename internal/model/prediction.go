package model

// Method tags recorded on combined candidates
const (
	MethodPanel   = "panel"
	MethodMatrix  = "matrix"
	MethodPattern = "pattern"
	MethodGap     = "gap"
	MethodMirror  = "mirror"
)

// Pattern detector tags recorded on pattern-weighted pairs
const (
	PatternSequential = "sequential"
	PatternRepeating  = "repeating"
	PatternMirror     = "mirror-recurrence"
	PatternFamily     = "family-sequence"
)

// ScoredCandidate is a ranked candidate value
type ScoredCandidate struct {
	Value             string   `json:"value"`
	Score             float64  `json:"score"`
	SupportingMethods []string `json:"supporting_methods"`
	Rationale         []string `json:"rationale"`
}

// Warning reports a method that produced no output for lack of data
type Warning struct {
	Method  string `json:"method"`
	Message string `json:"message"`
}

// FamilySelection is a digit-sum family with its best members
type FamilySelection struct {
	Sum     int      `json:"sum"`
	Triples []string `json:"triples"`
	Score   float64  `json:"score"`
}

// JackpotCandidate is a triple surviving the jackpot filter
type JackpotCandidate struct {
	Value     string   `json:"value"`
	Cut       string   `json:"cut"`
	Score     int      `json:"score"`
	Frequency int      `json:"frequency"`
	Quality   float64  `json:"quality"`
	Sources   []string `json:"sources"`
}

// PredictionResult stores the candidate lists produced for a window
type PredictionResult struct {
	WindowSize int `json:"window_size"`

	RankedPairs        []ScoredCandidate `json:"ranked_pairs"`
	PatternPairs       []ScoredCandidate `json:"pattern_pairs"` // panel pairs weighted by detected patterns
	RankedOpenTriples  []ScoredCandidate `json:"ranked_open_triples"`
	RankedCloseTriples []ScoredCandidate `json:"ranked_close_triples"`

	Final4Pairs    []string `json:"final4_pairs"`
	Final4Fallback bool     `json:"final4_fallback,omitempty"` // placeholders were used

	FrequentDigits []int             `json:"frequent_digits"`
	TopOpenSums    []int             `json:"top_open_sums"`
	TopCloseSums   []int             `json:"top_close_sums"`
	OpenFamilies   []FamilySelection `json:"open_families"`
	CloseFamilies  []FamilySelection `json:"close_families"`
	BestGuesses    []string          `json:"best_guesses"`
	TopPairs       []string          `json:"top_pairs"`

	JackpotCandidates []JackpotCandidate `json:"jackpot_candidates"`
	Warnings          []Warning          `json:"warnings,omitempty"`
}

// JackpotValues returns the triples of the jackpot pool in rank order
func (p PredictionResult) JackpotValues() []string {
	values := make([]string, len(p.JackpotCandidates))
	for i, c := range p.JackpotCandidates {
		values[i] = c.Value
	}
	return values
}
