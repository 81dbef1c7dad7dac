package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/bobby-s-dev/skyline/internal/models"
	"go.uber.org/zap"
)

const DefaultGeocodeURL = "https://geocoding-api.open-meteo.com/v1/search"

// GeocodingClient resolves free-text place names through the Open-Meteo
// geocoding API.
type GeocodingClient struct {
	*BaseClient
	baseURL string
}

type GeocodingResponse struct {
	Results []struct {
		Name        string  `json:"name"`
		CountryCode string  `json:"country_code"`
		Latitude    float64 `json:"latitude"`
		Longitude   float64 `json:"longitude"`
		Timezone    string  `json:"timezone"`
	} `json:"results"`
}

func NewGeocodingClient(baseURL string, config ClientConfig, logger *zap.Logger, opts ...Option) *GeocodingClient {
	if baseURL == "" {
		baseURL = DefaultGeocodeURL
	}
	return &GeocodingClient{
		BaseClient: NewBaseClient("geocoding", config, logger, opts...),
		baseURL:    baseURL,
	}
}

// Resolve returns the best-ranked match for query, or
// models.ErrLocationNotFound when the service has none.
func (c *GeocodingClient) Resolve(ctx context.Context, query string) (*models.Location, error) {
	params := url.Values{}
	params.Set("name", strings.TrimSpace(query))
	params.Set("count", "1")
	params.Set("language", "en")
	params.Set("format", "json")

	var response GeocodingResponse
	if err := c.GetJSON(ctx, c.baseURL, params, &response); err != nil {
		return nil, fmt.Errorf("geocoding %q: %w", query, err)
	}

	if len(response.Results) == 0 {
		return nil, models.ErrLocationNotFound
	}

	best := response.Results[0]
	return &models.Location{
		Name:        best.Name,
		CountryCode: best.CountryCode,
		Latitude:    best.Latitude,
		Longitude:   best.Longitude,
		Timezone:    best.Timezone,
	}, nil
}
