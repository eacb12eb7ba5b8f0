package covid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTakeSnapshotRanksLatestDate(t *testing.T) {
	snap := TakeSnapshot(loadSample(t), DefaultTopN)

	assert.Equal(t, day("2021-01-04"), snap.Date)
	require.Len(t, snap.Rows, 4)

	var order []string
	for _, r := range snap.Rows {
		order = append(order, r.Country)
	}
	// Brazil has no total_cases and sorts last.
	assert.Equal(t, []string{"United States", "France", "India", "Brazil"}, order)
	assert.Equal(t, 300.0, *snap.Rows[2].TotalVaccinations)
}

func TestTakeSnapshotLimit(t *testing.T) {
	snap := TakeSnapshot(loadSample(t), 2)
	require.Len(t, snap.Rows, 2)
	assert.Equal(t, "United States", snap.Rows[0].Country)
}

func TestTakeSnapshotTiesByCountry(t *testing.T) {
	v := 10.0
	rows := []Row{
		{Country: "Chad", Date: day("2021-01-01"), TotalCases: &v},
		{Country: "Benin", Date: day("2021-01-01"), TotalCases: &v},
		{Country: "Angola", Date: day("2020-12-31"), TotalCases: &v},
	}

	snap := TakeSnapshot(rows, 0)
	require.Len(t, snap.Rows, 2)
	assert.Equal(t, "Benin", snap.Rows[0].Country)
	assert.Equal(t, "Chad", snap.Rows[1].Country)
}

func TestTakeSnapshotEmpty(t *testing.T) {
	snap := TakeSnapshot(nil, 10)
	assert.True(t, snap.Date.IsZero())
	assert.Empty(t, snap.Rows)
}
