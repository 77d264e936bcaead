package report

import (
	"fmt"
	"strings"

	"github.com/Alias1177/PanelPredictor/internal/model"
)

// FormatText renders a report for the terminal and for chat delivery
func FormatText(r model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🎯 %s analysis (%d records, window %d)\n", r.DatasetName, r.DataPoints, r.WindowSize)
	fmt.Fprintf(&b, "Generated: %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))

	fmt.Fprintf(&b, "📊 Final 4 pairs: %s", strings.Join(r.Final4Pairs, ", "))
	if r.Final4Fallback {
		b.WriteString(" (placeholders, no signal)")
	}
	b.WriteString("\n")
	if len(r.JackpotTriples) > 0 {
		fmt.Fprintf(&b, "🎰 Jackpot triples: %s\n", strings.Join(r.JackpotTriples, ", "))
	}
	if len(r.JackpotPairs) > 0 {
		fmt.Fprintf(&b, "🎰 Jackpot pairs: %s\n", strings.Join(r.JackpotPairs, ", "))
	}
	fmt.Fprintf(&b, "Frequent digits: %s\n", joinInts(r.FrequentDigits))
	fmt.Fprintf(&b, "Top open sums: %s | Top close sums: %s\n", joinInts(r.TopOpenSums), joinInts(r.TopCloseSums))
	if len(r.PredictedFamilies) > 0 {
		fmt.Fprintf(&b, "Predicted families: %s\n", joinInts(r.PredictedFamilies))
	}

	b.WriteString("\n📈 Summary\n")
	fmt.Fprintf(&b, "• Confidence: %d%%\n", r.Summary.ConfidenceLevel)
	fmt.Fprintf(&b, "• Data quality: %s\n", r.Summary.DataQuality)
	fmt.Fprintf(&b, "• Pattern strength: %s\n", r.Summary.PatternStrength)
	fmt.Fprintf(&b, "• Risk: %s (%d)\n", r.Risk.RiskLevel, r.Risk.RiskScore)
	fmt.Fprintf(&b, "• Historical accuracy: %.1f%%\n", r.HistoricalAccuracy)

	writeList(&b, "\n🔍 Key findings\n", r.KeyFindings)
	writeList(&b, "\n💡 Recommendations\n", r.Recommendations)
	writeList(&b, "\n⚠️ Risk notes\n", r.Risk.Recommendations)

	if len(r.Warnings) > 0 {
		b.WriteString("\n⚠️ Warnings\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "• %s: %s\n", w.Method, w.Message)
		}
	}
	return b.String()
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(title)
	for _, it := range items {
		fmt.Fprintf(b, "• %s\n", it)
	}
}
