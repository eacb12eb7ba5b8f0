package covid

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// aggregatePrefix marks OWID pseudo-countries (World, continents, income groups).
const aggregatePrefix = "OWID_"

var (
	// ErrMissingColumn is returned when the CSV header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")
	// ErrEmptyDataset is returned when the CSV has no header at all.
	ErrEmptyDataset = errors.New("dataset is empty")
)

// Source column names.
const (
	colISOCode           = "iso_code"
	colContinent         = "continent"
	colLocation          = "location"
	colDate              = "date"
	colNewCases          = "new_cases"
	colNewDeaths         = "new_deaths"
	colTotalCases        = "total_cases"
	colTotalDeaths       = "total_deaths"
	colNewVaccinations   = "new_vaccinations"
	colTotalVaccinations = "total_vaccinations"
)

var requiredColumns = []string{
	colISOCode, colContinent, colLocation, colDate,
	colNewCases, colNewDeaths, colTotalCases, colTotalDeaths,
	colNewVaccinations, colTotalVaccinations,
}

// ParseCSV reads the OWID CSV and returns the cleaned daily table:
// aggregate pseudo-entries dropped, location renamed to country, missing
// new_* values set to zero. Columns not listed above are ignored.
func ParseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		// A BOM may precede the first column name.
		h = strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")
		idx[h] = i
	}
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, c)
		}
	}

	var rows []Row
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if strings.HasPrefix(rec[idx[colISOCode]], aggregatePrefix) {
			continue
		}

		row, err := parseRow(rec, idx)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func parseRow(rec []string, idx map[string]int) (Row, error) {
	date, err := time.Parse(DateLayout, strings.TrimSpace(rec[idx[colDate]]))
	if err != nil {
		return Row{}, fmt.Errorf("invalid date %q: %w", rec[idx[colDate]], err)
	}

	row := Row{
		Continent: strings.TrimSpace(rec[idx[colContinent]]),
		Country:   strings.TrimSpace(rec[idx[colLocation]]),
		Date:      date.UTC(),
	}

	fields := []struct {
		col string
		dst *float64
	}{
		{colNewCases, &row.NewCases},
		{colNewDeaths, &row.NewDeaths},
		{colNewVaccinations, &row.NewVaccinations},
	}
	for _, f := range fields {
		v, err := parseNumber(rec[idx[f.col]])
		if err != nil {
			return Row{}, fmt.Errorf("%s: %w", f.col, err)
		}
		if v != nil && *v > 0 {
			*f.dst = *v
		}
	}

	totals := []struct {
		col string
		dst **float64
	}{
		{colTotalCases, &row.TotalCases},
		{colTotalDeaths, &row.TotalDeaths},
		{colTotalVaccinations, &row.TotalVaccinations},
	}
	for _, f := range totals {
		v, err := parseNumber(rec[idx[f.col]])
		if err != nil {
			return Row{}, fmt.Errorf("%s: %w", f.col, err)
		}
		*f.dst = v
	}

	return row, nil
}

// parseNumber returns nil for empty and NaN cells.
func parseNumber(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	if math.IsNaN(v) {
		return nil, nil
	}
	return &v, nil
}
