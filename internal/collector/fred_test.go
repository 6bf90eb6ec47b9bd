package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"EconDash/internal/model"
)

const observationsBody = `{
  "realtime_start": "2025-01-10",
  "units": "Percent Change",
  "count": 3,
  "observations": [
    {"realtime_start": "2025-01-10", "realtime_end": "2025-01-10", "date": "2024-01-01", "value": "0.3"},
    {"realtime_start": "2025-01-10", "realtime_end": "2025-01-10", "date": "2024-02-01", "value": "."},
    {"realtime_start": "2025-01-10", "realtime_end": "2025-01-10", "date": "2024-03-01", "value": "0.1"}
  ]
}`

func newTestFetcher(baseURL, apiKey string) *FredFetcher {
	return NewFredFetcher(baseURL, apiKey, "", zerolog.Nop())
}

func TestFetchSeries_QueryParameters(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(observationsBody))
	}))
	defer srv.Close()

	f := newTestFetcher(srv.URL+"/fred/series/observations", "secret")
	obs, err := f.FetchSeries(context.Background(), model.SeriesQuery{
		SeriesID:  "CPIAUCSL",
		StartDate: time.Date(2020, time.May, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
		Units:     model.UnitsPercentChange,
		Frequency: model.FrequencyMonthly,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := url.Values{
		"series_id":         {"CPIAUCSL"},
		"api_key":           {"secret"},
		"file_type":         {"json"},
		"observation_start": {"2020-05-01"},
		"observation_end":   {"2024-12-31"},
		"units":             {"pch"},
		"frequency":         {"m"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("query mismatch (-want +got):\n%s", diff)
	}

	wantObs := []model.RawObservation{
		{Date: "2024-01-01", Value: "0.3"},
		{Date: "2024-02-01", Value: "."},
		{Date: "2024-03-01", Value: "0.1"},
	}
	if diff := cmp.Diff(wantObs, obs); diff != "" {
		t.Errorf("observations mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchSeries_OmitsUnsetOptions(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Write([]byte(`{"observations": []}`))
	}))
	defer srv.Close()

	f := newTestFetcher(srv.URL, "secret")
	obs, err := f.FetchSeries(context.Background(), model.SeriesQuery{SeriesID: "UNRATE"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(obs) != 0 {
		t.Errorf("expected no observations, got %d", len(obs))
	}
	for _, key := range []string{"observation_start", "observation_end", "units", "frequency"} {
		if got.Has(key) {
			t.Errorf("expected %s to be omitted, got %q", key, got.Get(key))
		}
	}
	if got.Get("series_id") != "UNRATE" || got.Get("file_type") != "json" {
		t.Errorf("missing fixed parameters: %v", got)
	}
}

func TestFetchSeries_MissingKeyMakesNoRequest(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	f := newTestFetcher(srv.URL, "  ")
	_, err := f.FetchSeries(context.Background(), model.SeriesQuery{SeriesID: "DGS10"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsConfigError(err) {
		t.Errorf("expected ConfigError, got %v", err)
	}
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %T", err)
	}
	if ue.HasStatus() {
		t.Errorf("expected no status, got %d", ue.Status)
	}
	if hits.Load() != 0 {
		t.Errorf("expected zero network calls, got %d", hits.Load())
	}
}

func TestFetchSeries_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error_code":400,"error_message":"Bad Request.  The series does not exist."}`))
	}))
	defer srv.Close()

	_, err := newTestFetcher(srv.URL, "secret").FetchSeries(context.Background(), model.SeriesQuery{SeriesID: "NOPE"})
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if ue.Status != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", ue.Status)
	}
	if !strings.Contains(ue.Message, "series does not exist") {
		t.Errorf("expected upstream message to be kept, got %q", ue.Message)
	}
	if IsConfigError(err) {
		t.Error("status failure must not be a ConfigError")
	}
}

func TestFetchSeries_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	_, err := newTestFetcher(base, "secret").FetchSeries(context.Background(), model.SeriesQuery{SeriesID: "DGS3MO"})
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if ue.HasStatus() {
		t.Errorf("expected no status for transport failure, got %d", ue.Status)
	}
	if strings.Contains(err.Error(), "secret") {
		t.Errorf("error leaks api key: %v", err)
	}
}

func TestFetchSeries_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer srv.Close()

	_, err := newTestFetcher(srv.URL, "secret").FetchSeries(context.Background(), model.SeriesQuery{SeriesID: "UNRATE"})
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if ue.Err == nil {
		t.Error("expected decode error to be wrapped")
	}
}

func TestFetchSeries_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := newTestFetcher(srv.URL, "secret").FetchSeries(ctx, model.SeriesQuery{SeriesID: "UNRATE"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}
