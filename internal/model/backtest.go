package model

// TransitionOutcome records one tested (day, day+1) transition
type TransitionOutcome struct {
	Index     int    `json:"index"` // index of the day the pool was built on
	NextOpen  string `json:"next_open"`
	NextClose string `json:"next_close"`
	PoolSize  int    `json:"pool_size"`
	Hit       bool   `json:"hit"`
}

// BacktestResult stores backtesting results
type BacktestResult struct {
	Lookback    int                 `json:"lookback"`
	Tested      int                 `json:"tested"`
	Hits        int                 `json:"hits"`
	Accuracy    float64             `json:"accuracy"` // percent, one decimal
	Transitions []TransitionOutcome `json:"transitions"`

	MaxConsecutive struct {
		Hits   int `json:"hits"`
		Misses int `json:"misses"`
	} `json:"max_consecutive"`
}
