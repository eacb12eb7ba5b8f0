package covid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupView(t *testing.T) {
	v, err := LookupView("weekly-vaccinations")
	require.NoError(t, err)
	assert.Equal(t, MeasureNewVaccinations, v.Measure)
	assert.Equal(t, "Weekly Vaccinations", v.ChartTitle)

	_, err = LookupView("hourly")
	assert.True(t, errors.Is(err, ErrUnknownView))
}

func TestViewTables(t *testing.T) {
	ds := BuildDataset(loadSample(t), LoadInfo{})

	for _, v := range Views() {
		if v.Kind != KindTimeSeries {
			continue
		}
		table := v.Table(ds)
		require.NotEmpty(t, table, v.ID)
		for _, b := range table {
			assert.Contains(t, v.Available(ds.Options), b.Group, v.ID)
		}
	}

	daily, _ := LookupView(string(ViewDailyCases))
	assert.Equal(t, ds.Daily, daily.Table(ds))
	continent, _ := LookupView(string(ViewMonthlyContinentCases))
	assert.Equal(t, ds.ContinentMonthly, continent.Table(ds))
}

func TestDefaultsResolve(t *testing.T) {
	opts := AvailableOptions(loadSample(t))

	got := StandardDefaults.Resolve(opts)
	assert.Equal(t, []string{"United States", "India", "Brazil"}, got.Countries)
	assert.Equal(t, []string{"Asia", "Europe", "North America", "South America"}, got.Continents)
}

func TestValidateSelection(t *testing.T) {
	available := []string{"Brazil", "India"}

	assert.NoError(t, ValidateSelection(nil, available))
	assert.NoError(t, ValidateSelection([]string{"India"}, available))

	err := ValidateSelection([]string{"India", "Atlantis"}, available)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownSelection))
	assert.Contains(t, err.Error(), "Atlantis")
}

func TestSelectSeries(t *testing.T) {
	ds := BuildDataset(loadSample(t), LoadInfo{})

	series := SelectSeries(ds.Weekly, []string{"United States", "France", "United States"}, MeasureNewVaccinations)
	require.Len(t, series, 2)

	assert.Equal(t, "United States", series[0].Label)
	require.Len(t, series[0].Points, 2)
	assert.Equal(t, day("2021-01-03"), series[0].Points[0].Date)
	assert.Equal(t, 50.0, series[0].Points[0].Value)
	assert.Equal(t, 0.0, series[0].Points[1].Value)

	assert.Equal(t, "France", series[1].Label)
	require.Len(t, series[1].Points, 1)
}

func TestSelectSeriesUnknownLabelIsEmpty(t *testing.T) {
	series := SelectSeries(nil, []string{"Oceania"}, MeasureNewCases)
	require.Len(t, series, 1)
	assert.NotNil(t, series[0].Points)
	assert.Empty(t, series[0].Points)
}
