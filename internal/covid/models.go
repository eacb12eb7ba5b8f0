package covid

import (
	"time"
)

// DateLayout is the calendar-day format used by the dataset and the API.
const DateLayout = "2006-01-02"

// Row is one cleaned daily record for a country.
// New* fields are never negative; missing source values are zero.
// Total* fields are nil when the source leaves them empty.
type Row struct {
	Continent         string    `json:"continent"`
	Country           string    `json:"country"`
	Date              time.Time `json:"date"` // always UTC midnight
	NewCases          float64   `json:"new_cases"`
	NewDeaths         float64   `json:"new_deaths"`
	TotalCases        *float64  `json:"total_cases"`
	TotalDeaths       *float64  `json:"total_deaths"`
	NewVaccinations   float64   `json:"new_vaccinations"`
	TotalVaccinations *float64  `json:"total_vaccinations"`
}

// Bucket is a summed row of a derived table, keyed by group (country or
// continent) and the date that closes the time bucket.
type Bucket struct {
	Group           string    `json:"group"`
	Date            time.Time `json:"date"`
	NewCases        float64   `json:"new_cases"`
	NewDeaths       float64   `json:"new_deaths"`
	NewVaccinations float64   `json:"new_vaccinations"`
}

// Measure names one of the summable columns.
type Measure string

const (
	MeasureNewCases        Measure = "new_cases"
	MeasureNewDeaths       Measure = "new_deaths"
	MeasureNewVaccinations Measure = "new_vaccinations"
)

// Value returns the measure's value on a bucket.
func (b Bucket) Value(m Measure) float64 {
	switch m {
	case MeasureNewCases:
		return b.NewCases
	case MeasureNewDeaths:
		return b.NewDeaths
	case MeasureNewVaccinations:
		return b.NewVaccinations
	default:
		return 0
	}
}

// Options lists what a user can pick from, sorted.
type Options struct {
	Countries  []string `json:"countries"`
	Continents []string `json:"continents"`
}

// LoadInfo describes one completed dataset load.
type LoadInfo struct {
	ID         string        `json:"id"`
	Source     string        `json:"source"`
	LoadedAt   time.Time     `json:"loadedAt"`
	Duration   time.Duration `json:"durationNs"`
	Rows       int           `json:"rows"`
	LatestDate time.Time     `json:"latestDate"`
}

// Dataset is the cleaned daily table together with everything derived from it.
// A Dataset is immutable once built and safe to share between goroutines.
type Dataset struct {
	Info LoadInfo

	Rows             []Row
	Daily            []Bucket
	Weekly           []Bucket
	Monthly          []Bucket
	ContinentMonthly []Bucket

	Options Options
}

// SnapshotRow is one line of the latest-date ranking.
type SnapshotRow struct {
	Country           string   `json:"country"`
	TotalCases        *float64 `json:"total_cases"`
	NewCases          float64  `json:"new_cases"`
	TotalDeaths       *float64 `json:"total_deaths"`
	NewDeaths         float64  `json:"new_deaths"`
	TotalVaccinations *float64 `json:"total_vaccinations"`
}

// Snapshot is the most recent date's rows ranked by total cases.
type Snapshot struct {
	Date time.Time     `json:"date"`
	Rows []SnapshotRow `json:"rows"`
}
