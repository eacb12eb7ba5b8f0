package render

import (
	"github.com/i474232898/covid-dashboard/internal/covid"
)

// Result types.
const (
	TypeChart = "chart"
	TypeTable = "table"
)

// Result is the render-ready output for one view. Exactly one of Chart and
// Table is set, according to Type.
type Result struct {
	Type    string       `json:"type"`
	View    covid.View   `json:"view"`
	Heading string       `json:"heading"`
	Chart   *ChartConfig `json:"chart,omitempty"`
	Table   *TableData   `json:"table,omitempty"`

	Selection []string `json:"selection,omitempty"`
	Meta      Meta     `json:"meta"`
}

// Meta identifies the dataset a result was computed from.
type Meta struct {
	LoadID     string `json:"loadId"`
	LatestDate string `json:"latestDate,omitempty"`
}

// Request is what the user picked in the sidebar.
type Request struct {
	View covid.View
	// Labels are countries or continents depending on the view.
	Labels []string
	// TopN bounds the snapshot table.
	TopN int
}

// Render computes the view over ds.
func Render(ds *covid.Dataset, req Request) Result {
	res := Result{
		View:    req.View,
		Heading: req.View.Heading,
		Meta:    Meta{LoadID: ds.Info.ID},
	}
	if !ds.Info.LatestDate.IsZero() {
		res.Meta.LatestDate = ds.Info.LatestDate.Format(covid.DateLayout)
	}

	switch req.View.Kind {
	case covid.KindSnapshot:
		res.Type = TypeTable
		res.Table = BuildSnapshotTable(req.View, covid.TakeSnapshot(ds.Rows, req.TopN))
	default:
		res.Type = TypeChart
		res.Selection = req.Labels
		series := covid.SelectSeries(req.View.Table(ds), req.Labels, req.View.Measure)
		res.Chart = BuildChart(req.View, series)
	}
	return res
}
