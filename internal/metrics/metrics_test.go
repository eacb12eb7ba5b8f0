package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/covid-dashboard/internal/covid"
)

func TestObserveLoad(t *testing.T) {
	m := New()

	latest := time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC)
	m.ObserveLoad(covid.LoadInfo{Source: "fake", Rows: 8, LatestDate: latest, Duration: time.Second}, nil)
	m.ObserveLoad(covid.LoadInfo{Source: "fake"}, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.loads.WithLabelValues("fake", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.loads.WithLabelValues("fake", "error")))
	assert.Equal(t, 8.0, testutil.ToFloat64(m.rows))
	assert.Equal(t, float64(latest.Unix()), testutil.ToFloat64(m.latestDate))
}

func TestObserveRenderAndHandler(t *testing.T) {
	m := New()
	m.ObserveRender(covid.ViewDailyCases, "json")
	m.ObserveRender(covid.ViewDailyCases, "json")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.renders.WithLabelValues("daily-cases", "json")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `covid_dashboard_view_renders_total{format="json",view="daily-cases"} 2`)
}
