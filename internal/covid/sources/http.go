package sources

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// DefaultURL is the public Our World in Data COVID-19 dataset.
const DefaultURL = "https://covid.ourworldindata.org/data/owid-covid-data.csv"

// HTTPSource downloads the dataset CSV over HTTP.
type HTTPSource struct {
	name    string
	url     string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewHTTPSource creates a source for url. An empty url means DefaultURL.
func NewHTTPSource(client *http.Client, url string) *HTTPSource {
	if url == "" {
		url = DefaultURL
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "owid",
		MaxRequests: 1,
		Interval:    10 * time.Minute,
		Timeout:     5 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	return &HTTPSource{
		name:    "owid-http",
		url:     url,
		client:  client,
		circuit: cb,
	}
}

func (s *HTTPSource) Name() string {
	return s.name
}

// URL is the address the source downloads from.
func (s *HTTPSource) URL() string {
	return s.url
}

// Fetch returns the response body; the caller must close it.
func (s *HTTPSource) Fetch(ctx context.Context) (io.ReadCloser, error) {
	buildRequest := func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodGet, s.url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "text/csv")
		return req, nil
	}

	resp, err := doRequest(ctx, s.client, s.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}
