package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"EconDash/internal/model"
)

// FredFetcher implements Fetcher against the FRED series/observations endpoint.
type FredFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	Logger  zerolog.Logger
}

// NewFredFetcher creates a fetcher with optional proxy support. The client
// keeps the platform default timeout; callers bound requests through ctx.
func NewFredFetcher(baseURL, apiKey, proxyURL string, logger zerolog.Logger) *FredFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &FredFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Transport: transport},
		Logger:  logger,
	}
}

func (f *FredFetcher) Name() string { return "fred" }

// fredResponse is the subset of the observations payload we consume.
type fredResponse struct {
	Count        int                    `json:"count"`
	Observations []model.RawObservation `json:"observations"`
}

// fredError is the body FRED sends with 4xx responses.
type fredError struct {
	Code    int    `json:"error_code"`
	Message string `json:"error_message"`
}

// FetchSeries requests the observations for q. Every call is an independent request.
func (f *FredFetcher) FetchSeries(ctx context.Context, q model.SeriesQuery) ([]model.RawObservation, error) {
	if strings.TrimSpace(f.APIKey) == "" {
		return nil, &UpstreamError{
			SeriesID: q.SeriesID,
			Message:  "FRED API key not found in environment variables",
			Err:      &ConfigError{Setting: "FRED_API_KEY"},
		}
	}

	endpoint, err := f.buildURL(q)
	if err != nil {
		return nil, &UpstreamError{SeriesID: q.SeriesID, Message: "build request url", Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &UpstreamError{SeriesID: q.SeriesID, Message: "build request", Err: err}
	}

	start := time.Now()
	f.Logger.Debug().Str("series_id", q.SeriesID).Msg("querying fred")
	resp, err := f.Client.Do(req)
	if err != nil {
		cause := withoutURL(err)
		return nil, &UpstreamError{SeriesID: q.SeriesID, Message: "failed to fetch FRED data: " + cause.Error(), Err: cause}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{SeriesID: q.SeriesID, Message: "read body: " + err.Error(), Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{
			SeriesID: q.SeriesID,
			Status:   resp.StatusCode,
			Message:  statusMessage(resp, body),
		}
	}

	var parsed fredResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &UpstreamError{SeriesID: q.SeriesID, Message: "decode observations: " + err.Error(), Err: err}
	}

	f.Logger.Debug().
		Str("series_id", q.SeriesID).
		Int("observations", len(parsed.Observations)).
		Dur("took", time.Since(start)).
		Msg("fred response")
	return parsed.Observations, nil
}

func (f *FredFetcher) buildURL(q model.SeriesQuery) (string, error) {
	u, err := url.Parse(f.BaseURL)
	if err != nil {
		return "", err
	}
	params := u.Query()
	params.Set("series_id", q.SeriesID)
	params.Set("api_key", f.APIKey)
	params.Set("file_type", "json")
	if !q.StartDate.IsZero() {
		params.Set("observation_start", q.StartDate.Format(time.DateOnly))
	}
	if !q.EndDate.IsZero() {
		params.Set("observation_end", q.EndDate.Format(time.DateOnly))
	}
	if q.Units != "" {
		params.Set("units", string(q.Units))
	}
	if q.Frequency != "" {
		params.Set("frequency", string(q.Frequency))
	}
	u.RawQuery = params.Encode()
	return u.String(), nil
}

func statusMessage(resp *http.Response, body []byte) string {
	msg := fmt.Sprintf("FRED API request failed: %s", resp.Status)
	var fe fredError
	if json.Unmarshal(body, &fe) == nil && fe.Message != "" {
		msg += ": " + fe.Message
	}
	return msg
}

// withoutURL strips the request URL, which carries the api key, from client errors.
func withoutURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}
