package render

import (
	"github.com/i474232898/covid-dashboard/internal/covid"
)

// TableData is a ranked table indexed by its first column.
type TableData struct {
	Title   string   `json:"title"`
	Date    string   `json:"date,omitempty"`
	Index   string   `json:"index"`
	Columns []Column `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Column describes a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number"
	Align string `json:"align"` // "left", "right"
}

var snapshotColumns = []Column{
	{Key: "country", Label: "country", Type: "text", Align: "left"},
	{Key: "total_cases", Label: "total_cases", Type: "number", Align: "right"},
	{Key: "new_cases", Label: "new_cases", Type: "number", Align: "right"},
	{Key: "total_deaths", Label: "total_deaths", Type: "number", Align: "right"},
	{Key: "new_deaths", Label: "new_deaths", Type: "number", Align: "right"},
	{Key: "total_vaccinations", Label: "total_vaccinations", Type: "number", Align: "right"},
}

// BuildSnapshotTable lays out the latest-date ranking. Missing totals are nil.
func BuildSnapshotTable(view covid.View, snap covid.Snapshot) *TableData {
	t := &TableData{
		Title:   view.Heading,
		Index:   "country",
		Columns: snapshotColumns,
		Rows:    make([][]any, 0, len(snap.Rows)),
	}
	if !snap.Date.IsZero() {
		t.Date = snap.Date.Format(covid.DateLayout)
	}

	for _, r := range snap.Rows {
		t.Rows = append(t.Rows, []any{
			r.Country,
			optional(r.TotalCases),
			r.NewCases,
			optional(r.TotalDeaths),
			r.NewDeaths,
			optional(r.TotalVaccinations),
		})
	}
	return t
}

// optional keeps a typed nil out of the row so it encodes as JSON null.
func optional(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
