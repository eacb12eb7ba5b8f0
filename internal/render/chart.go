package render

import (
	"time"

	"github.com/i474232898/covid-dashboard/internal/covid"
)

const (
	// TickLayout formats x axis tick labels, e.g. "Jan 2021".
	TickLayout = "Jan 2006"
	// TickIntervalMonths spaces the major ticks.
	TickIntervalMonths = 3
	// TickRotation is the x axis label angle in degrees.
	TickRotation = 45
)

// ChartConfig is a line chart ready for the browser charting library.
type ChartConfig struct {
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis"`
	YAxis      string        `json:"yAxis"`
	Series     []ChartSeries `json:"series"`
	Ticks      []Tick        `json:"ticks"`
	TickAngle  int           `json:"tickAngle"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
}

// ChartSeries is one line.
type ChartSeries struct {
	Name string       `json:"name"`
	Data []ChartPoint `json:"data"`
}

// ChartPoint is one x/y pair; X is a calendar date.
type ChartPoint struct {
	X string  `json:"x"`
	Y float64 `json:"y"`
}

// Tick is a labelled major tick on the date axis.
type Tick struct {
	Date  string `json:"date"`
	Label string `json:"label"`
}

// BuildChart turns selected series into a line chart for the view.
func BuildChart(view covid.View, series []covid.Series) *ChartConfig {
	cfg := &ChartConfig{
		ChartType:  "line",
		Title:      view.ChartTitle,
		XAxis:      "Date",
		YAxis:      view.YLabel,
		Series:     make([]ChartSeries, 0, len(series)),
		TickAngle:  TickRotation,
		ShowLegend: true,
		ShowGrid:   true,
	}

	var first, last time.Time
	for _, s := range series {
		cs := ChartSeries{Name: s.Label, Data: make([]ChartPoint, 0, len(s.Points))}
		for _, p := range s.Points {
			cs.Data = append(cs.Data, ChartPoint{X: p.Date.Format(covid.DateLayout), Y: p.Value})
			if first.IsZero() || p.Date.Before(first) {
				first = p.Date
			}
			if p.Date.After(last) {
				last = p.Date
			}
		}
		cfg.Series = append(cfg.Series, cs)
	}

	cfg.Ticks = MonthTicks(first, last, TickIntervalMonths)
	return cfg
}

// MonthTicks returns the first day of every interval-th month (counting from
// January) that falls within [from, to]. Zero bounds yield no ticks.
func MonthTicks(from, to time.Time, interval int) []Tick {
	ticks := []Tick{}
	if from.IsZero() || to.IsZero() || to.Before(from) {
		return ticks
	}
	if interval <= 0 {
		interval = 1
	}

	from = from.UTC()
	to = to.UTC()
	// Align to a month whose index is a multiple of interval.
	m := int(from.Month()) - 1
	m -= m % interval
	t := time.Date(from.Year(), time.Month(m+1), 1, 0, 0, 0, 0, time.UTC)
	if t.Before(from) {
		t = t.AddDate(0, interval, 0)
	}

	for !t.After(to) {
		ticks = append(ticks, Tick{Date: t.Format(covid.DateLayout), Label: t.Format(TickLayout)})
		t = t.AddDate(0, interval, 0)
	}
	return ticks
}
