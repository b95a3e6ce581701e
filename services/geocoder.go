package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"zomato-etl/geocode"
	"zomato-etl/models"
	"zomato-etl/utils"
)

// DefaultAddressSuffix places a locality in the city being summarised.
const DefaultAddressSuffix = "Bangalore, Karnataka, India"

// GeocoderOptions configures a SuburbGeocoder.
type GeocoderOptions struct {
	AddressSuffix string
	Policy        geocode.NotFoundPolicy
}

// SuburbGeocoder builds the locality → coordinates lookup table. It keeps
// an in-memory cache, so build one per run.
type SuburbGeocoder struct {
	resolver geocode.Resolver
	logger   *utils.Logger
	suffix   string
	policy   geocode.NotFoundPolicy

	cache  map[string]*models.SuburbLocation
	misses []string
	calls  int
}

// NewSuburbGeocoder creates a SuburbGeocoder backed by resolver.
func NewSuburbGeocoder(resolver geocode.Resolver, logger *utils.Logger, opts GeocoderOptions) *SuburbGeocoder {
	suffix := opts.AddressSuffix
	if suffix == "" {
		suffix = DefaultAddressSuffix
	}
	return &SuburbGeocoder{
		resolver: resolver,
		logger:   logger,
		suffix:   suffix,
		policy:   opts.Policy,
		cache:    make(map[string]*models.SuburbLocation),
	}
}

// Address builds the query sent to the geocoding service for a locality.
func (g *SuburbGeocoder) Address(locality string) string {
	return strings.TrimSpace(locality) + ", " + g.suffix
}

// Geocode returns one SuburbLocation per distinct locality of rows, in
// order of first appearance. Null localities get null coordinates without
// a service call. A ServiceError always aborts; a NotFoundError aborts
// only under AbortOnNotFound.
func (g *SuburbGeocoder) Geocode(ctx context.Context, rows []*models.AggregateRow) ([]*models.SuburbLocation, error) {
	localities := utils.NewOrderedSet()
	for _, r := range rows {
		localities.Add(r.Locality)
	}

	out := make([]*models.SuburbLocation, 0, localities.Size())
	for _, locality := range localities.Items() {
		loc, err := g.locate(ctx, locality)
		if err != nil {
			return nil, err
		}
		out = append(out, loc)
	}

	g.logger.Info("[geocoder] %d suburbs, %d service calls, %d without match",
		len(out), g.calls, len(g.misses))
	return out, nil
}

// Misses lists the localities the service had no match for.
func (g *SuburbGeocoder) Misses() []string {
	return append([]string(nil), g.misses...)
}

func (g *SuburbGeocoder) locate(ctx context.Context, locality string) (*models.SuburbLocation, error) {
	if cached, ok := g.cache[locality]; ok {
		return cached, nil
	}

	loc := &models.SuburbLocation{Locality: locality}
	if locality == "" {
		g.logger.Warn("[geocoder] Null suburb, leaving coordinates empty")
		g.cache[locality] = loc
		return loc, nil
	}

	address := g.Address(locality)
	g.logger.Debug("[geocoder] Geocoding: %s", address)
	g.calls++

	ll, err := g.resolver.Resolve(ctx, address)
	if err != nil {
		var nf *geocode.NotFoundError
		if errors.As(err, &nf) {
			if g.policy == geocode.AbortOnNotFound {
				return nil, fmt.Errorf("geocoder: %s: %w", locality, err)
			}
			g.logger.Warn("[geocoder] No match for %q, leaving coordinates empty", address)
			g.misses = append(g.misses, locality)
			g.cache[locality] = loc
			return loc, nil
		}
		return nil, fmt.Errorf("geocoder: %s: %w", locality, err)
	}

	lat, lng := ll.Latitude, ll.Longitude
	loc.Latitude, loc.Longitude = &lat, &lng
	g.cache[locality] = loc
	return loc, nil
}
