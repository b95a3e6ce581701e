package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/rotisserie/eris"
)

const googleGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

// googleGeocodeResponse is the JSON response from the Google Geocoding API.
type googleGeocodeResponse struct {
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

// GoogleResolver geocodes addresses with the Google Geocoding API.
type GoogleResolver struct {
	httpResolver
}

// NewGoogleResolver creates a GoogleResolver authenticated with apiKey.
func NewGoogleResolver(apiKey string, opts ...Option) *GoogleResolver {
	return &GoogleResolver{httpResolver: newHTTPResolver(apiKey, opts)}
}

// Resolve implements Resolver. ZERO_RESULTS is a miss; every other
// non-OK status is a service failure.
func (g *GoogleResolver) Resolve(ctx context.Context, address string) (LatLng, error) {
	params := url.Values{
		"address": {address},
		"key":     {g.apiKey},
	}

	resp, err := g.get(ctx, googleGeocodeURL+"?"+params.Encode())
	if err != nil {
		return LatLng{}, &ServiceError{Address: address, Err: eris.Wrap(err, "geocode: google")}
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return LatLng{}, &ServiceError{
			Address: address,
			Err:     eris.Errorf("geocode: google returned status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return LatLng{}, &ServiceError{Address: address, Err: eris.Wrap(err, "geocode: google read body")}
	}

	var parsed googleGeocodeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return LatLng{}, &ServiceError{Address: address, Err: eris.Wrap(err, "geocode: google parse response")}
	}

	switch parsed.Status {
	case "OK":
		if len(parsed.Results) > 0 {
			loc := parsed.Results[0].Geometry.Location
			return LatLng{Latitude: loc.Lat, Longitude: loc.Lng}, nil
		}
		return LatLng{}, &NotFoundError{Address: address}
	case "ZERO_RESULTS":
		return LatLng{}, &NotFoundError{Address: address}
	}
	return LatLng{}, &ServiceError{
		Address: address,
		Err:     eris.Errorf("geocode: google status %s: %s", parsed.Status, parsed.ErrorMessage),
	}
}
