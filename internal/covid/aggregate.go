package covid

import (
	"sort"
	"time"
)

// Granularity is the width of a time bucket.
type Granularity string

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
)

// GroupKey selects the column rows are grouped by.
type GroupKey string

const (
	ByCountry   GroupKey = "country"
	ByContinent GroupKey = "continent"
)

func (k GroupKey) of(r Row) string {
	if k == ByContinent {
		return r.Continent
	}
	return r.Country
}

// BucketEnd returns the date that labels the bucket containing d.
// Weeks close on Sunday, months on their last calendar day.
func BucketEnd(d time.Time, g Granularity) time.Time {
	d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	switch g {
	case Weekly:
		return d.AddDate(0, 0, (7-int(d.Weekday()))%7)
	case Monthly:
		return time.Date(d.Year(), d.Month()+1, 0, 0, 0, 0, 0, time.UTC)
	default:
		return d
	}
}

// Aggregate sums new_cases, new_deaths and new_vaccinations per group and
// time bucket. Rows with an empty group value are skipped. Only buckets that
// received at least one row are returned, ordered by group then date.
func Aggregate(rows []Row, key GroupKey, g Granularity) []Bucket {
	type bucketKey struct {
		group string
		date  time.Time
	}

	sums := make(map[bucketKey]*Bucket)
	for _, r := range rows {
		group := key.of(r)
		if group == "" {
			continue
		}
		k := bucketKey{group: group, date: BucketEnd(r.Date, g)}
		b, ok := sums[k]
		if !ok {
			b = &Bucket{Group: k.group, Date: k.date}
			sums[k] = b
		}
		b.NewCases += r.NewCases
		b.NewDeaths += r.NewDeaths
		b.NewVaccinations += r.NewVaccinations
	}

	out := make([]Bucket, 0, len(sums))
	for _, b := range sums {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Group != out[j].Group {
			return out[i].Group < out[j].Group
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// BuildDataset derives every table the views need from the cleaned rows.
func BuildDataset(rows []Row, info LoadInfo) *Dataset {
	ds := &Dataset{
		Info:             info,
		Rows:             rows,
		Daily:            Aggregate(rows, ByCountry, Daily),
		Weekly:           Aggregate(rows, ByCountry, Weekly),
		Monthly:          Aggregate(rows, ByCountry, Monthly),
		ContinentMonthly: Aggregate(rows, ByContinent, Monthly),
		Options:          AvailableOptions(rows),
	}
	ds.Info.Rows = len(rows)
	ds.Info.LatestDate = LatestDate(rows)
	return ds
}

// LatestDate returns the maximum date over all rows, or the zero time.
func LatestDate(rows []Row) time.Time {
	var latest time.Time
	for _, r := range rows {
		if r.Date.After(latest) {
			latest = r.Date
		}
	}
	return latest
}
