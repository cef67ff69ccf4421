package geocoder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/ojst60/DevBootcamp/utils/apperror"
	"github.com/ojst60/DevBootcamp/utils/metrics"
	"github.com/rs/zerolog/log"
	gobreaker "github.com/sony/gobreaker/v2"
)

const (
	// DefaultBaseURL is the MapQuest geocoding API base URL
	DefaultBaseURL = "https://www.mapquestapi.com/geocoding/v1"
	// DefaultTimeout bounds a single geocode call including retries
	DefaultTimeout = 10 * time.Second
	// DefaultFailureThreshold is the number of consecutive upstream failures that opens the breaker
	DefaultFailureThreshold = 5
)

// RetryConfig holds retry configuration for failed requests
type RetryConfig struct {
	MaxRetries     int           // Maximum number of retry attempts (default: 2)
	InitialBackoff time.Duration // Initial backoff duration (default: 250ms)
	MaxBackoff     time.Duration // Maximum backoff duration (default: 2s)
}

// DefaultRetryConfig returns the default retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     2,
		InitialBackoff: 250 * time.Millisecond,
		MaxBackoff:     2 * time.Second,
	}
}

// Config holds configuration for the MapQuest client
type Config struct {
	APIKey           string
	BaseURL          string
	Timeout          time.Duration
	RetryConfig      *RetryConfig
	FailureThreshold uint32
	// BreakerTimeout is how long the breaker stays open before letting a probe through
	BreakerTimeout time.Duration
	HTTPClient     *http.Client
}

// MapQuest geocodes addresses through the MapQuest geocoding API
type MapQuest struct {
	apiKey      string
	baseURL     string
	timeout     time.Duration
	httpClient  *http.Client
	retryConfig RetryConfig
	breaker     *gobreaker.CircuitBreaker[[]Result]
}

// NewMapQuest creates a new MapQuest client
func NewMapQuest(config Config) *MapQuest {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.FailureThreshold == 0 {
		config.FailureThreshold = DefaultFailureThreshold
	}
	if config.BreakerTimeout == 0 {
		config.BreakerTimeout = 30 * time.Second
	}
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{Timeout: config.Timeout}
	}

	retryConfig := DefaultRetryConfig()
	if config.RetryConfig != nil {
		retryConfig = *config.RetryConfig
	}

	threshold := config.FailureThreshold
	breaker := gobreaker.NewCircuitBreaker[[]Result](gobreaker.Settings{
		Name:        "geocoder-mapquest",
		MaxRequests: 1,
		Timeout:     config.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// an unresolvable address is the caller's problem, not the provider's
		IsSuccessful: func(err error) bool {
			return err == nil || apperror.Is(err, apperror.KindUpstreamBadInput)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("geocoder circuit breaker state changed")
		},
	})

	return &MapQuest{
		apiKey:      config.APIKey,
		baseURL:     strings.TrimRight(config.BaseURL, "/"),
		timeout:     config.Timeout,
		httpClient:  config.HTTPClient,
		retryConfig: retryConfig,
		breaker:     breaker,
	}
}

// Geocode implements Geocoder
func (m *MapQuest) Geocode(ctx context.Context, address string) ([]Result, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, apperror.UpstreamBadInput("address not resolvable: empty address", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	results, err := m.breaker.Execute(func() ([]Result, error) {
		return m.geocodeWithRetry(ctx, address)
	})

	switch {
	case err == nil:
		metrics.GeocoderRequests.WithLabelValues("ok").Inc()
		return results, nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.GeocoderRequests.WithLabelValues("breaker_open").Inc()
		return nil, apperror.UpstreamUnavailable("Geocoding service unavailable", err)
	case apperror.Is(err, apperror.KindUpstreamBadInput):
		metrics.GeocoderRequests.WithLabelValues("unresolvable").Inc()
		return nil, err
	default:
		metrics.GeocoderRequests.WithLabelValues("error").Inc()
		return nil, err
	}
}

func (m *MapQuest) geocodeWithRetry(ctx context.Context, address string) ([]Result, error) {
	var lastErr error

	for attempt := 0; attempt <= m.retryConfig.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := CalculateBackoff(attempt-1, m.retryConfig)
			select {
			case <-ctx.Done():
				return nil, apperror.UpstreamUnavailable("Geocoding service timed out", ctx.Err())
			case <-time.After(backoff):
			}
		}

		results, retryable, err := m.geocodeOnce(ctx, address)
		if err == nil {
			return results, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}

		log.Debug().Err(err).Int("attempt", attempt+1).Msg("geocode attempt failed")
	}

	return nil, lastErr
}

// geocodeOnce performs one request; retryable reports whether a later attempt may succeed
func (m *MapQuest) geocodeOnce(ctx context.Context, address string) (results []Result, retryable bool, err error) {
	query := url.Values{}
	query.Set("key", m.apiKey)
	query.Set("location", address)
	query.Set("maxResults", "5")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+"/address?"+query.Encode(), nil)
	if err != nil {
		return nil, false, apperror.Internal("failed to create geocode request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, apperror.UpstreamUnavailable("Geocoding service unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, apperror.UpstreamUnavailable("Geocoding service response unreadable", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := fmt.Errorf("mapquest status %d: %s", resp.StatusCode, truncate(string(body), 200))
		return nil, IsRetryableStatusCode(resp.StatusCode), apperror.UpstreamUnavailable("Geocoding service error", statusErr)
	}

	var payload mapQuestResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, false, apperror.UpstreamUnavailable("Geocoding service returned malformed data", err)
	}

	switch code := payload.Info.StatusCode; {
	case code == 0:
	case code == 400:
		return nil, false, apperror.UpstreamBadInput(fmt.Sprintf("address not resolvable: %q", address), payload.Info.err())
	case code >= 500:
		return nil, true, apperror.UpstreamUnavailable("Geocoding service error", payload.Info.err())
	default:
		return nil, false, apperror.UpstreamUnavailable("Geocoding service rejected the request", payload.Info.err())
	}

	return payload.results(), false, nil
}

// IsRetryableStatusCode checks if an HTTP status code should trigger a retry
func IsRetryableStatusCode(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout || statusCode == http.StatusTooManyRequests || statusCode >= 500
}

// CalculateBackoff returns initialBackoff * 2^attempt, capped at maxBackoff
func CalculateBackoff(attempt int, config RetryConfig) time.Duration {
	backoff := config.InitialBackoff * time.Duration(1<<uint(attempt))
	if backoff > config.MaxBackoff {
		return config.MaxBackoff
	}
	return backoff
}

type mapQuestInfo struct {
	StatusCode int      `json:"statuscode"`
	Messages   []string `json:"messages"`
}

func (i mapQuestInfo) err() error {
	return fmt.Errorf("mapquest statuscode %d: %s", i.StatusCode, strings.Join(i.Messages, "; "))
}

type mapQuestResponse struct {
	Info    mapQuestInfo `json:"info"`
	Results []struct {
		Locations []mapQuestLocation `json:"locations"`
	} `json:"results"`
}

type mapQuestLocation struct {
	Street     string `json:"street"`
	AdminArea5 string `json:"adminArea5"` // city
	AdminArea3 string `json:"adminArea3"` // state
	AdminArea1 string `json:"adminArea1"` // country
	PostalCode string `json:"postalCode"`
	LatLng     *struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"latLng"`
}

func (r *mapQuestResponse) results() []Result {
	var out []Result
	for _, res := range r.Results {
		for _, loc := range res.Locations {
			// a location without coordinates cannot place a bootcamp
			if loc.LatLng == nil {
				continue
			}
			out = append(out, Result{
				Latitude:         loc.LatLng.Lat,
				Longitude:        loc.LatLng.Lng,
				FormattedAddress: joinNonEmpty(loc.Street, loc.AdminArea5, strings.TrimSpace(loc.AdminArea3+" "+loc.PostalCode), loc.AdminArea1),
				StreetName:       loc.Street,
				City:             loc.AdminArea5,
				StateCode:        loc.AdminArea3,
				Zipcode:          loc.PostalCode,
				CountryCode:      loc.AdminArea1,
			})
		}
	}
	return out
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
