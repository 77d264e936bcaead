// Package panel builds windowed statistics over related-value panels and runs
// the pattern detectors over the pair sequence.
package panel

import (
	"github.com/Alias1177/PanelPredictor/internal/model"
	"github.com/Alias1177/PanelPredictor/internal/relation"
)

type role int

const (
	roleNone role = iota
	roleOpen
	roleClose
)

// Scan expands every record of the window through the relation engine and
// accumulates hits, appearances and recency per related value
func Scan(window []model.DrawRecord) model.PanelAnalysis {
	a := model.PanelAnalysis{
		Pairs:        make(map[string]model.PanelStats),
		OpenTriples:  make(map[string]model.PanelStats),
		CloseTriples: make(map[string]model.PanelStats),
	}

	for i, r := range window {
		offset := len(window) - i
		accumulate(a.Pairs, relation.RelatedPairs(r.Pair), r.Pair, offset, roleNone)
		accumulate(a.OpenTriples, relation.RelatedTriples(r.Open), r.Open, offset, roleOpen)
		accumulate(a.CloseTriples, relation.RelatedTriples(r.Close), r.Close, offset, roleClose)
	}
	return a
}

func accumulate(stats map[string]model.PanelStats, related []string, actual string, offset int, rl role) {
	for _, v := range related {
		s := stats[v]
		s.Appearances++
		s.LastSeenOffset = offset
		if v == actual {
			s.Hits++
			switch rl {
			case roleOpen:
				s.AsOpen++
			case roleClose:
				s.AsClose++
			}
		}
		stats[v] = s
	}
}
