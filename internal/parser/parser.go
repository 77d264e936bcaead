// Package parser turns raw markup tables or delimited text into validated,
// chronologically ordered draw records.
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/Alias1177/PanelPredictor/internal/model"
)

var (
	triplePattern = regexp.MustCompile(`^\d{3}$`)
	pairPattern   = regexp.MustCompile(`^\d{2}$`)
	digitsPattern = regexp.MustCompile(`^\d+$`)
	fieldSplit    = regexp.MustCompile(`[\s,;|-]+`)
)

var dateLayouts = []string{"02/01/2006", "02-01-2006", "02.01.2006", "2006-01-02"}

// Parse extracts draw records from raw source text. Markup input is scanned
// cell by cell, anything else is read as one record per line.
func Parse(raw string) ([]model.DrawRecord, error) {
	var (
		records []model.DrawRecord
		err     error
	)
	if strings.Contains(strings.ToLower(raw), "<td") {
		records = parseMarkup(raw)
	} else {
		records, err = parseLines(raw)
		if err != nil {
			return nil, err
		}
	}

	if len(records) == 0 {
		reason := "no valid records"
		if strings.TrimSpace(raw) == "" {
			reason = "empty source"
		}
		return nil, &ParseError{Reason: reason, Err: ErrNoRecords}
	}

	sortByDate(records)
	return records, nil
}

func parseMarkup(raw string) []model.DrawRecord {
	cells := tableCells(raw)
	var (
		records []model.DrawRecord
		pending time.Time
	)
	for i := 0; i < len(cells); i++ {
		if d, ok := parseDate(cells[i]); ok {
			pending = d
			continue
		}
		if i+2 < len(cells) && triplePattern.MatchString(cells[i]) &&
			pairPattern.MatchString(cells[i+1]) && triplePattern.MatchString(cells[i+2]) {
			records = append(records, model.DrawRecord{
				Date:  pending,
				Open:  cells[i],
				Pair:  cells[i+1],
				Close: cells[i+2],
			})
			pending = time.Time{}
			i += 2
		}
	}
	return records
}

// tableCells returns the normalized text of every td element. Comments are
// skipped and entities decoded by the tokenizer.
func tableCells(raw string) []string {
	var (
		cells  []string
		parts  []string
		inCell bool
	)
	z := html.NewTokenizer(strings.NewReader(raw))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a truncated document; keep what was read
			if inCell {
				cells = append(cells, cellText(parts))
			}
			return cells
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch atom.Lookup(name) {
			case atom.Td:
				if inCell {
					cells = append(cells, cellText(parts))
				}
				inCell, parts = true, parts[:0]
			case atom.Br:
				parts = append(parts, " ")
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if atom.Lookup(name) == atom.Td && inCell {
				cells = append(cells, cellText(parts))
				inCell = false
			}
		case html.TextToken:
			if inCell {
				parts = append(parts, string(z.Text()))
			}
		}
	}
}

// cellText collapses whitespace. A cell whose fields are all digits, such as
// a triple stacked one digit per line, is joined without separators.
func cellText(parts []string) string {
	// strings.Fields also splits on the no-break space left by &nbsp;
	fields := strings.Fields(strings.Join(parts, ""))
	for _, f := range fields {
		if !digitsPattern.MatchString(f) {
			return strings.Join(fields, " ")
		}
	}
	return strings.Join(fields, "")
}

func parseLines(raw string) ([]model.DrawRecord, error) {
	var records []model.DrawRecord
	for n, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		r, err := ParseLine(line)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Line = n + 1
			}
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

// ParseLine parses "[date] open pair close" with the three values separated
// by whitespace, '-', ',', '|' or ';'
func ParseLine(line string) (model.DrawRecord, error) {
	var r model.DrawRecord
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return r, &ParseError{Reason: "empty line"}
	}
	if d, ok := parseDate(fields[0]); ok {
		r.Date = d
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))
	}

	parts := fieldSplit.Split(strings.Trim(line, " ,;|-"), -1)
	if len(parts) != 3 {
		return r, &ParseError{Reason: fmt.Sprintf("expected open, pair and close, got %d fields", len(parts))}
	}
	r.Open, r.Pair, r.Close = parts[0], parts[1], parts[2]
	if err := Validate(r); err != nil {
		return model.DrawRecord{}, err
	}
	return r, nil
}

// Validate checks the shape of a record
func Validate(r model.DrawRecord) error {
	switch {
	case !triplePattern.MatchString(r.Open):
		return &ParseError{Reason: fmt.Sprintf("open %q is not a 3-digit value", r.Open)}
	case !pairPattern.MatchString(r.Pair):
		return &ParseError{Reason: fmt.Sprintf("pair %q is not a 2-digit value", r.Pair)}
	case !triplePattern.MatchString(r.Close):
		return &ParseError{Reason: fmt.Sprintf("close %q is not a 3-digit value", r.Close)}
	}
	return nil
}

func parseDate(s string) (time.Time, bool) {
	if len(s) != 10 {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// sortByDate orders records by date when every record carries one
func sortByDate(records []model.DrawRecord) {
	for _, r := range records {
		if r.Date.IsZero() {
			return
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
}
