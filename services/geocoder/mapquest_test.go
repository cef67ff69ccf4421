package geocoder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ojst60/DevBootcamp/utils/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bostonResponse = `{
  "info": {"statuscode": 0, "messages": []},
  "results": [{
    "providedLocation": {"location": "233 Bay State Rd Boston MA 02215"},
    "locations": [{
      "street": "233 Bay State Rd",
      "adminArea5": "Boston",
      "adminArea3": "MA",
      "adminArea1": "US",
      "postalCode": "02215-1405",
      "latLng": {"lat": 42.350846, "lng": -71.103833}
    }]
  }]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *MapQuest {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewMapQuest(Config{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
		RetryConfig: &RetryConfig{
			MaxRetries:     2,
			InitialBackoff: time.Millisecond,
			MaxBackoff:     5 * time.Millisecond,
		},
		FailureThreshold: 3,
		BreakerTimeout:   time.Minute,
	})
}

func TestMapQuest_Geocode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/address", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "233 Bay State Rd Boston MA 02215", r.URL.Query().Get("location"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(bostonResponse))
	})

	results, err := client.Geocode(context.Background(), "233 Bay State Rd Boston MA 02215")
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.InDelta(t, 42.350846, r.Latitude, 1e-9)
	assert.InDelta(t, -71.103833, r.Longitude, 1e-9)
	assert.Equal(t, "233 Bay State Rd", r.StreetName)
	assert.Equal(t, "Boston", r.City)
	assert.Equal(t, "MA", r.StateCode)
	assert.Equal(t, "02215-1405", r.Zipcode)
	assert.Equal(t, "US", r.CountryCode)
	assert.Equal(t, "233 Bay State Rd, Boston, MA 02215-1405, US", r.FormattedAddress)
}

func TestFirst_EmptyResultIsUnresolvable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"info":{"statuscode":0},"results":[{"locations":[]}]}`))
	})

	_, err := First(context.Background(), client, "nowhere at all")
	require.Error(t, err)
	assert.Equal(t, apperror.KindUpstreamBadInput, apperror.KindOf(err))
}

func TestMapQuest_EmptyAddress(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	_, err := client.Geocode(context.Background(), "   ")
	assert.Equal(t, apperror.KindUpstreamBadInput, apperror.KindOf(err))
	assert.Zero(t, calls.Load())
}

func TestMapQuest_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(bostonResponse))
	})

	results, err := client.Geocode(context.Background(), "02215")
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestMapQuest_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("The AppKey submitted with this request is invalid."))
	})

	_, err := client.Geocode(context.Background(), "02215")
	require.Error(t, err)
	assert.Equal(t, apperror.KindUpstreamUnavailable, apperror.KindOf(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestMapQuest_IllegalArgumentIsBadInput(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"info":{"statuscode":400,"messages":["Illegal argument from request: Insufficient info for location"]},"results":[]}`))
	})

	_, err := client.Geocode(context.Background(), "??")
	assert.Equal(t, apperror.KindUpstreamBadInput, apperror.KindOf(err))
}

func TestMapQuest_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	})

	for i := 0; i < 3; i++ {
		_, err := client.Geocode(context.Background(), "02215")
		require.Error(t, err)
	}
	require.Equal(t, int32(3), calls.Load())

	_, err := client.Geocode(context.Background(), "02215")
	assert.Equal(t, apperror.KindUpstreamUnavailable, apperror.KindOf(err))
	assert.Equal(t, int32(3), calls.Load(), "open breaker must not reach the provider")
}

func TestMapQuest_UnresolvableDoesNotTripBreaker(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"info":{"statuscode":400,"messages":["bad"]},"results":[]}`))
	})

	for i := 0; i < 5; i++ {
		_, err := client.Geocode(context.Background(), "??")
		assert.Equal(t, apperror.KindUpstreamBadInput, apperror.KindOf(err))
	}
	assert.Equal(t, int32(5), calls.Load())
}

func TestCalculateBackoff(t *testing.T) {
	cfg := RetryConfig{InitialBackoff: 100 * time.Millisecond, MaxBackoff: 300 * time.Millisecond}
	assert.Equal(t, 100*time.Millisecond, CalculateBackoff(0, cfg))
	assert.Equal(t, 200*time.Millisecond, CalculateBackoff(1, cfg))
	assert.Equal(t, 300*time.Millisecond, CalculateBackoff(2, cfg))
}
