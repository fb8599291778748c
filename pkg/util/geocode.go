package util

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNoGeocodeResults is returned when the provider finds nothing for an address.
var ErrNoGeocodeResults = errors.New("no geocoding results for address")

// Coordinates is a point in decimal degrees.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Geocoder resolves a free-form address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*Coordinates, error)
}

// openCageResponse is the subset of the OpenCage forward geocoding response we read.
type openCageResponse struct {
	Results []struct {
		Geometry struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"geometry"`
	} `json:"results"`
	Status struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"status"`
}

// OpenCageClient talks to the OpenCage forward geocoding API.
type OpenCageClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewOpenCageClient(baseURL, apiKey string, timeout time.Duration) *OpenCageClient {
	return &OpenCageClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Geocode returns the coordinates of the first result for address.
func (c *OpenCageClient) Geocode(ctx context.Context, address string) (*Coordinates, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("geocoding API key not configured")
	}

	params := url.Values{}
	params.Add("q", address)
	params.Add("key", c.apiKey)
	params.Add("limit", "1")
	requestURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call geocoding API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result openCageResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(result.Results) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoGeocodeResults, address)
	}

	return &Coordinates{
		Latitude:  result.Results[0].Geometry.Lat,
		Longitude: result.Results[0].Geometry.Lng,
	}, nil
}

// FormatAddress joins the non-empty parts as "logradouro, cidade, estado".
func FormatAddress(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}
