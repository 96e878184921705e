// Package geo wraps the Google Maps geocoding API. Every failure mode is
// folded into the returned Result; callers never see a raised error.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/go-querystring/query"

	"github.com/TheoInCodeLand/casalinga-tours/pkg/logger"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

type Result struct {
	OK               bool
	Latitude         float64
	Longitude        float64
	FormattedAddress string
	Err              string
}

type Geocoder struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

type Option func(*Geocoder)

func WithBaseURL(url string) Option {
	return func(g *Geocoder) { g.baseURL = url }
}

func WithTimeout(d time.Duration) Option {
	return func(g *Geocoder) { g.client.Timeout = d }
}

func New(apiKey string, opts ...Option) *Geocoder {
	g := &Geocoder{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type requestParams struct {
	Address string `url:"address,omitempty"`
	LatLng  string `url:"latlng,omitempty"`
	Key     string `url:"key"`
}

type apiResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves a free-text address to coordinates.
func (g *Geocoder) Geocode(ctx context.Context, address string) Result {
	logger.DebugContext(ctx, "Geocoding address", "address", address)
	return g.lookup(ctx, requestParams{Address: address, Key: g.apiKey})
}

// ReverseGeocode resolves coordinates back to a formatted address.
func (g *Geocoder) ReverseGeocode(ctx context.Context, lat, lng float64) Result {
	return g.lookup(ctx, requestParams{LatLng: fmt.Sprintf("%f,%f", lat, lng), Key: g.apiKey})
}

func (g *Geocoder) lookup(ctx context.Context, params requestParams) Result {
	values, err := query.Values(params)
	if err != nil {
		return Result{Err: "Invalid geocoding request."}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return Result{Err: "Invalid geocoding request."}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
			return Result{Err: "Request timeout. Please try again."}
		}
		return Result{Err: "Network error. Please check your connection."}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{Err: fmt.Sprintf("API error: %d - %s", resp.StatusCode, http.StatusText(resp.StatusCode))}
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{Err: "Unexpected response from geocoding service."}
	}

	if body.Status != "OK" || len(body.Results) == 0 {
		return Result{Err: statusMessage(body.Status)}
	}

	first := body.Results[0]
	return Result{
		OK:               true,
		Latitude:         first.Geometry.Location.Lat,
		Longitude:        first.Geometry.Location.Lng,
		FormattedAddress: first.FormattedAddress,
	}
}

// statusMessage translates the provider's status codes into messages safe to
// show to users. Unrecognized codes fall through to a generic message.
func statusMessage(status string) string {
	switch status {
	case "ZERO_RESULTS":
		return "No results found for this address. Please check the address and try again."
	case "OVER_QUERY_LIMIT":
		return "Query limit exceeded. Please try again later."
	case "REQUEST_DENIED":
		return "Geocoding service is currently unavailable."
	case "INVALID_REQUEST":
		return "Invalid address format. Please provide a complete address."
	case "UNKNOWN_ERROR":
		return "Temporary error. Please try again."
	case "":
		return "Unknown error occurred."
	default:
		return fmt.Sprintf("Geocoding failed: %s", status)
	}
}
