package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/rotisserie/eris"
)

const bingLocationsURL = "https://dev.virtualearth.net/REST/v1/Locations"

// bingLocationsResponse is the JSON response of the Bing Maps Locations API.
type bingLocationsResponse struct {
	StatusCode   int `json:"statusCode"`
	ResourceSets []struct {
		EstimatedTotal int `json:"estimatedTotal"`
		Resources      []struct {
			Name  string `json:"name"`
			Point struct {
				Coordinates []float64 `json:"coordinates"`
			} `json:"point"`
			Confidence string `json:"confidence"`
		} `json:"resources"`
	} `json:"resourceSets"`
}

// BingResolver geocodes addresses with the Bing Maps Locations API.
type BingResolver struct {
	httpResolver
}

// NewBingResolver creates a BingResolver authenticated with apiKey.
func NewBingResolver(apiKey string, opts ...Option) *BingResolver {
	return &BingResolver{httpResolver: newHTTPResolver(apiKey, opts)}
}

// Resolve implements Resolver.
func (b *BingResolver) Resolve(ctx context.Context, address string) (LatLng, error) {
	params := url.Values{
		"q":          {address},
		"maxResults": {"1"},
		"key":        {b.apiKey},
	}

	resp, err := b.get(ctx, bingLocationsURL+"?"+params.Encode())
	if err != nil {
		return LatLng{}, &ServiceError{Address: address, Err: eris.Wrap(err, "geocode: bing")}
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return LatLng{}, &ServiceError{
			Address: address,
			Err:     eris.Errorf("geocode: bing returned status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return LatLng{}, &ServiceError{Address: address, Err: eris.Wrap(err, "geocode: bing read body")}
	}

	var parsed bingLocationsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return LatLng{}, &ServiceError{Address: address, Err: eris.Wrap(err, "geocode: bing parse response")}
	}

	for _, set := range parsed.ResourceSets {
		for _, res := range set.Resources {
			if len(res.Point.Coordinates) >= 2 {
				return LatLng{Latitude: res.Point.Coordinates[0], Longitude: res.Point.Coordinates[1]}, nil
			}
		}
	}
	return LatLng{}, &NotFoundError{Address: address}
}
