// Package geo computes distances and resolves coordinates to addresses.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"favornet/server/internal/models"

	"golang.org/x/time/rate"
)

// DefaultGeocodeURL is Google's reverse geocoding endpoint
const DefaultGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

// ErrNoAddress is returned when the geocoder knows no address for a point
var ErrNoAddress = errors.New("no address for location")

// AddressLookup resolves a location to a human readable address
type AddressLookup interface {
	Address(ctx context.Context, loc models.Location) (string, error)
}

// Geocoder calls the Google reverse geocoding API. Outbound calls are
// throttled so a large community group listing cannot exhaust the quota.
type Geocoder struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
}

// NewGeocoder creates a geocoder allowing rps requests per second
func NewGeocoder(baseURL, apiKey string, rps float64) *Geocoder {
	if baseURL == "" {
		baseURL = DefaultGeocodeURL
	}
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &Geocoder{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(limit, 1),
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
}

// Address returns the first formatted address Google reports for loc
func (g *Geocoder) Address(ctx context.Context, loc models.Location) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}

	query := url.Values{}
	query.Set("latlng", strconv.FormatFloat(loc.Lat, 'f', -1, 64)+","+strconv.FormatFloat(loc.Lng, 'f', -1, 64))
	query.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("failed to geocode, status: %d, body: %s", resp.StatusCode, string(body))
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}

	if len(decoded.Results) == 0 {
		return "", ErrNoAddress
	}

	return decoded.Results[0].FormattedAddress, nil
}
