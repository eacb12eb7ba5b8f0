package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/covid-dashboard/internal/covid"
)

func TestMemoryStoreEmpty(t *testing.T) {
	s := NewMemoryStore(3)

	_, err := s.Current()
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Empty(t, s.History())

	s.SaveDataset(nil)
	_, err = s.Current()
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryStoreKeepsLatestAndBoundedHistory(t *testing.T) {
	s := NewMemoryStore(2)

	for _, id := range []string{"a", "b", "c"} {
		s.SaveDataset(&covid.Dataset{Info: covid.LoadInfo{ID: id}})
	}

	ds, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, "c", ds.Info.ID)

	history := s.History()
	require.Len(t, history, 2)
	assert.Equal(t, "b", history[0].ID)
	assert.Equal(t, "c", history[1].ID)

	// Callers get a copy.
	history[0].ID = "changed"
	assert.Equal(t, "b", s.History()[0].ID)
}

func TestMemoryStoreUnlimitedHistory(t *testing.T) {
	s := NewMemoryStore(0)
	for i := 0; i < 50; i++ {
		s.SaveDataset(&covid.Dataset{})
	}
	assert.Len(t, s.History(), 50)
}
