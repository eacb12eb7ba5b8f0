package covid

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	// ErrUnknownView is returned for a view id that is not registered.
	ErrUnknownView = errors.New("unknown view")
	// ErrUnknownSelection is returned when a picked country or continent is not in the data.
	ErrUnknownSelection = errors.New("unknown selection")
)

// ViewID identifies a dashboard view.
type ViewID string

const (
	ViewDailyCases            ViewID = "daily-cases"
	ViewWeeklyVaccinations    ViewID = "weekly-vaccinations"
	ViewMonthlyContinentCases ViewID = "monthly-continent-cases"
	ViewTopCountries          ViewID = "top-countries"
)

// ViewKind tells the renderer whether to draw lines or a ranked table.
type ViewKind string

const (
	KindTimeSeries ViewKind = "timeseries"
	KindSnapshot   ViewKind = "snapshot"
)

// View describes what a dashboard view shows.
type View struct {
	ID          ViewID      `json:"id"`
	Label       string      `json:"label"`
	Heading     string      `json:"heading"`
	ChartTitle  string      `json:"chartTitle,omitempty"`
	Kind        ViewKind    `json:"kind"`
	GroupBy     GroupKey    `json:"groupBy,omitempty"`
	Granularity Granularity `json:"granularity,omitempty"`
	Measure     Measure     `json:"measure,omitempty"`
	YLabel      string      `json:"yLabel,omitempty"`
}

var views = []View{
	{
		ID:          ViewDailyCases,
		Label:       "Daily Cases",
		Heading:     "Daily COVID-19 Cases",
		ChartTitle:  "Daily COVID-19 Cases",
		Kind:        KindTimeSeries,
		GroupBy:     ByCountry,
		Granularity: Daily,
		Measure:     MeasureNewCases,
		YLabel:      "New Cases",
	},
	{
		ID:          ViewWeeklyVaccinations,
		Label:       "Weekly Vaccinations",
		Heading:     "Weekly COVID-19 Vaccinations",
		ChartTitle:  "Weekly Vaccinations",
		Kind:        KindTimeSeries,
		GroupBy:     ByCountry,
		Granularity: Weekly,
		Measure:     MeasureNewVaccinations,
		YLabel:      "New Vaccinations",
	},
	{
		ID:          ViewMonthlyContinentCases,
		Label:       "Monthly Cases by Continent",
		Heading:     "Monthly COVID-19 Cases by Continent",
		ChartTitle:  "Monthly COVID-19 Cases by Continent",
		Kind:        KindTimeSeries,
		GroupBy:     ByContinent,
		Granularity: Monthly,
		Measure:     MeasureNewCases,
		YLabel:      "New Cases",
	},
	{
		ID:      ViewTopCountries,
		Label:   "Top 10 Countries Snapshot",
		Heading: "Top 10 Countries by Total Cases (Latest Data)",
		Kind:    KindSnapshot,
	},
}

// Views returns the registered views in display order.
func Views() []View {
	out := make([]View, len(views))
	copy(out, views)
	return out
}

// LookupView finds a view by id.
func LookupView(id string) (View, error) {
	for _, v := range views {
		if string(v.ID) == id {
			return v, nil
		}
	}
	return View{}, fmt.Errorf("%w: %q", ErrUnknownView, id)
}

// Table returns the derived table a time-series view plots.
func (v View) Table(ds *Dataset) []Bucket {
	switch {
	case v.GroupBy == ByContinent:
		return ds.ContinentMonthly
	case v.Granularity == Weekly:
		return ds.Weekly
	case v.Granularity == Monthly:
		return ds.Monthly
	default:
		return ds.Daily
	}
}

// Available returns the options a view's selector offers.
func (v View) Available(opts Options) []string {
	if v.GroupBy == ByContinent {
		return opts.Continents
	}
	return opts.Countries
}

// Defaults are the preselected countries and continents.
type Defaults struct {
	Countries  []string `json:"countries"`
	Continents []string `json:"continents"`
}

// StandardDefaults mirrors the dashboard's initial sidebar state.
var StandardDefaults = Defaults{
	Countries:  []string{"United States", "India", "Brazil", "Russia", "United Kingdom"},
	Continents: []string{"Asia", "Europe", "Africa", "North America", "South America", "Oceania"},
}

// AvailableOptions collects the sorted unique non-empty countries and continents.
func AvailableOptions(rows []Row) Options {
	countries := make(map[string]struct{})
	continents := make(map[string]struct{})
	for _, r := range rows {
		if r.Country != "" {
			countries[r.Country] = struct{}{}
		}
		if r.Continent != "" {
			continents[r.Continent] = struct{}{}
		}
	}
	return Options{
		Countries:  sortedKeys(countries),
		Continents: sortedKeys(continents),
	}
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Resolve keeps only the defaults present in the data, preserving their order.
func (d Defaults) Resolve(opts Options) Defaults {
	return Defaults{
		Countries:  keepAvailable(d.Countries, opts.Countries),
		Continents: keepAvailable(d.Continents, opts.Continents),
	}
}

func keepAvailable(want, available []string) []string {
	set := toSet(available)
	out := make([]string, 0, len(want))
	for _, w := range want {
		if _, ok := set[w]; ok {
			out = append(out, w)
		}
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// ValidateSelection reports the first picked value that is not available.
func ValidateSelection(picked, available []string) error {
	set := toSet(available)
	for _, p := range picked {
		if _, ok := set[p]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownSelection, p)
		}
	}
	return nil
}

// Point is one plotted value.
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Series is the line drawn for one selected label.
type Series struct {
	Label  string  `json:"label"`
	Points []Point `json:"points"`
}

// SelectSeries extracts one series per label, in the order given. A label
// with no rows still gets an (empty) series.
func SelectSeries(table []Bucket, labels []string, m Measure) []Series {
	byLabel := make(map[string]int, len(labels))
	out := make([]Series, 0, len(labels))
	for _, l := range labels {
		if _, dup := byLabel[l]; dup {
			continue
		}
		byLabel[l] = len(out)
		out = append(out, Series{Label: l, Points: []Point{}})
	}

	for _, b := range table {
		i, ok := byLabel[b.Group]
		if !ok {
			continue
		}
		out[i].Points = append(out[i].Points, Point{Date: b.Date, Value: b.Value(m)})
	}
	return out
}
