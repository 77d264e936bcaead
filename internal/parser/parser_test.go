package parser

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/PanelPredictor/internal/model"
)

const chart = `<table>
<tr><th>Date</th><th>Open</th><th>Jodi</th><th>Close</th></tr>
<tr><td>01/01/2024</td><td>123</td><td>45</td><td>678</td></tr>
<tr><td>02/01/2024</td><td> 2<br>3<br>4 </td><td class="r">56</td><td>789</td></tr>
<tr><td>03/01/2024</td><td>***</td><td>**</td><td>***</td></tr>
<tr><td>04/01/2024</td><td>550</td><td>00</td><td>190</td></tr>
</table>`

func TestParseMarkup(t *testing.T) {
	records, err := Parse(chart)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, model.DrawRecord{
		Date:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Open:  "123",
		Pair:  "45",
		Close: "678",
	}, records[0])
	assert.Equal(t, "234", records[1].Open)
	assert.Equal(t, "56", records[1].Pair)
	assert.Equal(t, "550", records[2].Open)
	assert.Equal(t, time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), records[2].Date)
}

func TestParseMarkupWithoutDates(t *testing.T) {
	raw := `<td>123</td><td>45</td><td>678</td><td>234</td><td>56</td><td>789</td>`
	records, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].Date.IsZero())
	assert.Equal(t, "234", records[1].Open)
}

func TestTableCells(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "stacked digits", raw: `<td> 2<br>3<br/>4 </td>`, want: []string{"234"}},
		{name: "nested markup", raw: `<td><b>1</b><i>2</i>3</td>`, want: []string{"123"}},
		{name: "entities", raw: `<td>&nbsp;45&nbsp;</td><td>Milan&amp;Day</td>`, want: []string{"45", "Milan&Day"}},
		{name: "comment skipped", raw: `<td>123</td><!-- <td>00</td> --><td>45</td>`, want: []string{"123", "45"}},
		{name: "mixed text keeps spaces", raw: `<td>Open<br>Close</td>`, want: []string{"Open Close"}},
		{name: "unclosed cells", raw: `<tr><td>123<td>45`, want: []string{"123", "45"}},
		{name: "header cells ignored", raw: `<th>Date</th><td>01/01/2024</td>`, want: []string{"01/01/2024"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tableCells(tt.raw))
		})
	}
}

func TestParseMarkupSkipsComments(t *testing.T) {
	records, err := Parse(`<td>123</td><!-- <td>00</td> --><td>45</td><td>678</td>`)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, model.DrawRecord{Open: "123", Pair: "45", Close: "678"}, records[0])
}

func TestParseLines(t *testing.T) {
	raw := `# history
2024-01-03 345-67-890
2024-01-01 123 45 678

02/01/2024 234,56,789
`
	records, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// every record is dated, so the output is chronological
	assert.Equal(t, []string{"45", "56", "67"}, model.Pairs(records))
}

func TestParseLinesDuplicatesKept(t *testing.T) {
	records, err := Parse("123-45-678\n123-45-678\n")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		line     int
		noRecord bool
	}{
		{name: "empty", raw: "", noRecord: true},
		{name: "only comments", raw: "# nothing\n\n", noRecord: true},
		{name: "markup without draws", raw: "<td>Date</td><td>***</td>", noRecord: true},
		{name: "short triple", raw: "123-45-678\n12-45-678\n", line: 2},
		{name: "missing close", raw: "123 45\n", line: 1},
		{name: "three digit pair", raw: "123 456 789", line: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Parse(tt.raw)
			require.Error(t, err)
			assert.Nil(t, records)

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.line, pe.Line)
			assert.Equal(t, tt.noRecord, errors.Is(err, ErrNoRecords))
		})
	}
}

func TestParseErrorReason(t *testing.T) {
	_, err := Parse("   \n")
	assert.EqualError(t, err, "parse: empty source: no valid records found")

	_, err = Parse("<td>Date</td><td>***</td>")
	assert.EqualError(t, err, "parse: no valid records: no valid records found")
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(model.DrawRecord{Open: "000", Pair: "00", Close: "999"}))
	assert.Error(t, Validate(model.DrawRecord{Open: "00a", Pair: "00", Close: "999"}))
	assert.Error(t, Validate(model.DrawRecord{Open: "000", Pair: "0", Close: "999"}))
	assert.Error(t, Validate(model.DrawRecord{Open: "000", Pair: "00", Close: "9999"}))
}
