package geocode

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBing(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *BingResolver {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewBingResolver("test-key",
		WithHTTPClient(newRewriteClient(srv.URL, bingLocationsURL, timeout)),
		WithRateLimit(1000),
	)
}

func TestBingResolve_Match(t *testing.T) {
	var gotQuery, gotKey string
	b := newTestBing(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotKey = r.URL.Query().Get("key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"statusCode": 200,
			"resourceSets": [{
				"estimatedTotal": 1,
				"resources": [{
					"name": "BTM Layout, Bengaluru, Karnataka, India",
					"point": {"type": "Point", "coordinates": [12.91663, 77.61011]},
					"confidence": "High"
				}]
			}]
		}`)
	}, time.Second)

	got, err := b.Resolve(context.Background(), "BTM, Bangalore, Karnataka, India")
	require.NoError(t, err)
	assert.InDelta(t, 12.91663, got.Latitude, 1e-6)
	assert.InDelta(t, 77.61011, got.Longitude, 1e-6)
	assert.Equal(t, "BTM, Bangalore, Karnataka, India", gotQuery)
	assert.Equal(t, "test-key", gotKey)
}

func TestBingResolve_NoResources(t *testing.T) {
	b := newTestBing(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"statusCode": 200, "resourceSets": [{"estimatedTotal": 0, "resources": []}]}`)
	}, time.Second)

	_, err := b.Resolve(context.Background(), "Nowhere, Bangalore, Karnataka, India")
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf), "want NotFoundError, got %v", err)
	assert.Equal(t, "Nowhere, Bangalore, Karnataka, India", nf.Address)
}

func TestBingResolve_StatusError(t *testing.T) {
	b := newTestBing(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, time.Second)

	_, err := b.Resolve(context.Background(), "BTM")
	var se *ServiceError
	require.True(t, errors.As(err, &se), "want ServiceError, got %v", err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestBingResolve_BadJSON(t *testing.T) {
	b := newTestBing(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `<html>oops</html>`)
	}, time.Second)

	_, err := b.Resolve(context.Background(), "BTM")
	var se *ServiceError
	assert.True(t, errors.As(err, &se))
}

func TestBingResolve_TimeoutIsServiceError(t *testing.T) {
	b := newTestBing(t, func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = io.WriteString(w, `{"resourceSets": []}`)
	}, 50*time.Millisecond)

	_, err := b.Resolve(context.Background(), "BTM")
	var se *ServiceError
	require.True(t, errors.As(err, &se), "timeout must not look like a miss: %v", err)
	var nf *NotFoundError
	assert.False(t, errors.As(err, &nf))
}
