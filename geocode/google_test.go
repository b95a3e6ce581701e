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

func newTestGoogle(t *testing.T, body string, status int) *GoogleResolver {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return NewGoogleResolver("test-key",
		WithHTTPClient(newRewriteClient(srv.URL, googleGeocodeURL, time.Second)),
		WithRateLimit(1000),
	)
}

func TestGoogleResolve_OK(t *testing.T) {
	g := newTestGoogle(t, `{
		"status": "OK",
		"results": [{
			"geometry": {"location": {"lat": 12.9784, "lng": 77.6408}},
			"formatted_address": "Indiranagar, Bengaluru, Karnataka, India"
		}]
	}`, http.StatusOK)

	got, err := g.Resolve(context.Background(), "Indiranagar, Bangalore, Karnataka, India")
	require.NoError(t, err)
	assert.InDelta(t, 12.9784, got.Latitude, 1e-6)
	assert.InDelta(t, 77.6408, got.Longitude, 1e-6)
}

func TestGoogleResolve_ZeroResults(t *testing.T) {
	g := newTestGoogle(t, `{"status": "ZERO_RESULTS", "results": []}`, http.StatusOK)

	_, err := g.Resolve(context.Background(), "000 Nowhere")
	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestGoogleResolve_RequestDenied(t *testing.T) {
	g := newTestGoogle(t, `{"status": "REQUEST_DENIED", "error_message": "bad key", "results": []}`, http.StatusOK)

	_, err := g.Resolve(context.Background(), "BTM")
	var se *ServiceError
	require.True(t, errors.As(err, &se))
	assert.Contains(t, err.Error(), "REQUEST_DENIED")
}

func TestGoogleResolve_HTTPError(t *testing.T) {
	g := newTestGoogle(t, ``, http.StatusForbidden)

	_, err := g.Resolve(context.Background(), "BTM")
	var se *ServiceError
	require.True(t, errors.As(err, &se))
	assert.Contains(t, err.Error(), "status 403")
}
