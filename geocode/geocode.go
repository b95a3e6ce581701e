// Package geocode resolves free-text addresses to coordinates through an
// external geocoding service.
package geocode

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// LatLng is a resolved position.
type LatLng struct {
	Latitude  float64
	Longitude float64
}

// Resolver turns an address into a position.
//
// Implementations return *NotFoundError when the service answered but had
// no match, and *ServiceError for anything else (transport failure,
// timeout, unexpected status, undecodable body).
type Resolver interface {
	Resolve(ctx context.Context, address string) (LatLng, error)
}

// NotFoundError reports that the service has no match for an address.
type NotFoundError struct {
	Address string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("geocode: no match for %q", e.Address)
}

// ServiceError reports that the service could not be queried. It must not
// be treated as "no match".
type ServiceError struct {
	Address string
	Err     error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("geocode: service failure for %q: %v", e.Address, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// NotFoundPolicy decides what happens when a locality has no match.
type NotFoundPolicy int

const (
	// ContinueOnNotFound records null coordinates and keeps going.
	ContinueOnNotFound NotFoundPolicy = iota
	// AbortOnNotFound halts the run with the NotFoundError.
	AbortOnNotFound
)

// ParsePolicy maps "continue" or "abort" to a NotFoundPolicy.
func ParsePolicy(s string) (NotFoundPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "continue":
		return ContinueOnNotFound, nil
	case "abort":
		return AbortOnNotFound, nil
	}
	return ContinueOnNotFound, eris.Errorf("geocode: unknown not-found policy %q", s)
}

func (p NotFoundPolicy) String() string {
	if p == AbortOnNotFound {
		return "abort"
	}
	return "continue"
}

// Option configures an HTTP-backed resolver.
type Option func(*httpResolver)

// WithHTTPClient sets a custom HTTP client. Its Timeout is the per-call timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(r *httpResolver) {
		r.httpClient = hc
	}
}

// WithTimeout sets the per-call timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(r *httpResolver) {
		r.timeout = d
	}
}

// WithRateLimit paces requests to at most rps per second.
func WithRateLimit(rps float64) Option {
	return func(r *httpResolver) {
		r.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// httpResolver holds what every HTTP provider needs.
type httpResolver struct {
	apiKey     string
	httpClient *http.Client
	timeout    time.Duration
	limiter    *rate.Limiter
}

func newHTTPResolver(apiKey string, opts []Option) httpResolver {
	r := httpResolver{
		apiKey:  apiKey,
		timeout: 5 * time.Second,
		limiter: rate.NewLimiter(5, 1),
	}
	for _, opt := range opts {
		opt(&r)
	}
	if r.httpClient == nil {
		r.httpClient = &http.Client{Timeout: r.timeout}
	}
	return r
}

// get waits for the limiter and issues a GET request.
func (r *httpResolver) get(ctx context.Context, reqURL string) (*http.Response, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "rate limit")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "build request")
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "request")
	}
	return resp, nil
}

// New builds the resolver for the named provider ("bing" or "google").
func New(provider, apiKey string, opts ...Option) (Resolver, error) {
	if apiKey == "" {
		return nil, eris.Errorf("geocode: %s api key not configured", provider)
	}
	switch strings.ToLower(provider) {
	case "bing":
		return NewBingResolver(apiKey, opts...), nil
	case "google":
		return NewGoogleResolver(apiKey, opts...), nil
	}
	return nil, eris.Errorf("geocode: unknown provider %q", provider)
}
