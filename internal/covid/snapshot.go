package covid

import "sort"

// DefaultTopN is the number of countries in the snapshot ranking.
const DefaultTopN = 10

// TakeSnapshot ranks the rows of the most recent date by total cases,
// descending, keeping at most n. Missing totals sort last; ties fall back to
// the country name. n <= 0 keeps every row.
func TakeSnapshot(rows []Row, n int) Snapshot {
	latest := LatestDate(rows)
	snap := Snapshot{Date: latest}
	if latest.IsZero() {
		return snap
	}

	for _, r := range rows {
		if !r.Date.Equal(latest) {
			continue
		}
		snap.Rows = append(snap.Rows, SnapshotRow{
			Country:           r.Country,
			TotalCases:        r.TotalCases,
			NewCases:          r.NewCases,
			TotalDeaths:       r.TotalDeaths,
			NewDeaths:         r.NewDeaths,
			TotalVaccinations: r.TotalVaccinations,
		})
	}

	sort.SliceStable(snap.Rows, func(i, j int) bool {
		a, b := snap.Rows[i].TotalCases, snap.Rows[j].TotalCases
		switch {
		case a == nil && b == nil:
			return snap.Rows[i].Country < snap.Rows[j].Country
		case a == nil:
			return false
		case b == nil:
			return true
		case *a != *b:
			return *a > *b
		default:
			return snap.Rows[i].Country < snap.Rows[j].Country
		}
	})

	if n > 0 && len(snap.Rows) > n {
		snap.Rows = snap.Rows[:n]
	}
	return snap
}
