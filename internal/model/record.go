package model

import "time"

// DrawRecord represents a single day's draw
type DrawRecord struct {
	Date  time.Time `json:"date"`
	Open  string    `json:"open"`  // 3-digit open triple
	Pair  string    `json:"pair"`  // 2-digit pair derived from the day
	Close string    `json:"close"` // 3-digit close triple
}

// Pairs returns the pair sequence of the records in order
func Pairs(records []DrawRecord) []string {
	pairs := make([]string, len(records))
	for i, r := range records {
		pairs[i] = r.Pair
	}
	return pairs
}
