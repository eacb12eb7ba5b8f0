package covid

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const loadKey = "dataset"

// Service loads the dataset from its source, caches it in the store and
// hands the cached copy to every caller.
type Service struct {
	store    Store
	source   Source
	observer Observer
	defaults Defaults
	topN     int

	group singleflight.Group
	now   func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithObserver reports every load to o.
func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

// WithDefaults overrides the preselected countries and continents.
func WithDefaults(d Defaults) Option {
	return func(s *Service) { s.defaults = d }
}

// WithTopN sets the snapshot size.
func WithTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topN = n
		}
	}
}

// NewService creates a new Service.
func NewService(store Store, source Source, opts ...Option) *Service {
	s := &Service{
		store:    store,
		source:   source,
		defaults: StandardDefaults,
		topN:     DefaultTopN,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dataset returns the cached dataset, loading it on first use.
func (s *Service) Dataset(ctx context.Context) (*Dataset, error) {
	if ds, err := s.store.Current(); err == nil {
		return ds, nil
	}
	return s.do(func() (interface{}, error) {
		// Another caller may have finished loading in the meantime.
		if ds, err := s.store.Current(); err == nil {
			return ds, nil
		}
		return s.load(ctx)
	})
}

// Refresh fetches and rebuilds the dataset, replacing the cached one on
// success. A refresh that overlaps an in-flight load shares its result. On
// failure the previous dataset, if any, stays in place.
func (s *Service) Refresh(ctx context.Context) (*Dataset, error) {
	return s.do(func() (interface{}, error) {
		return s.load(ctx)
	})
}

func (s *Service) do(fn func() (interface{}, error)) (*Dataset, error) {
	v, err, shared := s.group.Do(loadKey, fn)
	if shared {
		log.Printf("DEBUG: dataset load shared between callers")
	}
	if err != nil {
		return nil, err
	}
	return v.(*Dataset), nil
}

func (s *Service) load(ctx context.Context) (*Dataset, error) {
	if s.source == nil {
		return nil, fmt.Errorf("no dataset source configured")
	}

	start := s.now()
	info := LoadInfo{
		ID:       uuid.NewString(),
		Source:   s.source.Name(),
		LoadedAt: start.UTC(),
	}
	log.Printf("INFO: loading dataset %s from %s", info.ID, info.Source)

	rows, err := s.fetchRows(ctx)
	info.Duration = s.now().Sub(start)
	if err != nil {
		log.Printf("ERROR: dataset load from %s failed: %v", info.Source, err)
		s.observe(info, err)
		return nil, err
	}

	ds := BuildDataset(rows, info)
	s.store.SaveDataset(ds)
	s.observe(ds.Info, nil)

	log.Printf("INFO: dataset %s loaded: %d rows, latest date %s, took %s",
		ds.Info.ID, ds.Info.Rows, ds.Info.LatestDate.Format(DateLayout), ds.Info.Duration)
	return ds, nil
}

func (s *Service) fetchRows(ctx context.Context) ([]Row, error) {
	body, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}
	defer body.Close()

	rows, err := ParseCSV(body)
	if err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	return rows, nil
}

func (s *Service) observe(info LoadInfo, err error) {
	if s.observer != nil {
		s.observer.ObserveLoad(info, err)
	}
}

// History delegates to the underlying store.
func (s *Service) History() []LoadInfo {
	return s.store.History()
}

// Defaults returns the configured defaults restricted to what opts contains.
func (s *Service) Defaults(opts Options) Defaults {
	return s.defaults.Resolve(opts)
}

// TopN is the configured snapshot size.
func (s *Service) TopN() int {
	return s.topN
}
