package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/bobby-s-dev/skyline/internal/models"
	"go.uber.org/zap"
)

const (
	DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"

	ForecastDays  = 7
	currentFields = "temperature_2m,relative_humidity_2m,weather_code,wind_speed_10m,apparent_temperature"
	dailyFields   = "weather_code,temperature_2m_max,temperature_2m_min"
)

type OpenMeteoClient struct {
	*BaseClient
	baseURL string
}

type OpenMeteoForecastResponse struct {
	Current struct {
		Temperature2M       float64 `json:"temperature_2m"`
		ApparentTemperature float64 `json:"apparent_temperature"`
		RelativeHumidity2M  float64 `json:"relative_humidity_2m"`
		WindSpeed10M        float64 `json:"wind_speed_10m"`
		WeatherCode         int     `json:"weather_code"`
	} `json:"current"`
	Daily struct {
		Time             []string  `json:"time"`
		WeatherCode      []int     `json:"weather_code"`
		Temperature2MMax []float64 `json:"temperature_2m_max"`
		Temperature2MMin []float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

func NewOpenMeteoClient(baseURL string, config ClientConfig, logger *zap.Logger, opts ...Option) *OpenMeteoClient {
	if baseURL == "" {
		baseURL = DefaultForecastURL
	}
	return &OpenMeteoClient{
		BaseClient: NewBaseClient("forecast", config, logger, opts...),
		baseURL:    baseURL,
	}
}

// Fetch requests current conditions and a 7-day daily forecast for the given
// coordinates. An empty timezone is sent as "auto".
func (c *OpenMeteoClient) Fetch(ctx context.Context, lat, lon float64, timezone string) (*models.WeatherSnapshot, error) {
	if timezone == "" {
		timezone = "auto"
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("timezone", timezone)
	params.Set("current", currentFields)
	params.Set("daily", dailyFields)
	params.Set("forecast_days", strconv.Itoa(ForecastDays))

	var response OpenMeteoForecastResponse
	if err := c.GetJSON(ctx, c.baseURL, params, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}

	return toSnapshot(&response)
}

func toSnapshot(response *OpenMeteoForecastResponse) (*models.WeatherSnapshot, error) {
	daily := response.Daily
	n := len(daily.Time)
	if len(daily.WeatherCode) != n || len(daily.Temperature2MMax) != n || len(daily.Temperature2MMin) != n {
		return nil, fmt.Errorf("%w: daily arrays not aligned (time=%d weather_code=%d max=%d min=%d)",
			ErrMalformedPayload, n, len(daily.WeatherCode), len(daily.Temperature2MMax), len(daily.Temperature2MMin))
	}
	if n != ForecastDays {
		return nil, fmt.Errorf("%w: expected %d daily entries, got %d", ErrMalformedPayload, ForecastDays, n)
	}

	snapshot := &models.WeatherSnapshot{
		Current: models.CurrentConditions{
			Temperature:         response.Current.Temperature2M,
			ApparentTemperature: response.Current.ApparentTemperature,
			RelativeHumidity:    response.Current.RelativeHumidity2M,
			WindSpeed:           response.Current.WindSpeed10M,
			WeatherCode:         response.Current.WeatherCode,
		},
		Daily: make([]models.DailyForecast, 0, n),
	}

	for i := 0; i < n; i++ {
		snapshot.Daily = append(snapshot.Daily, models.DailyForecast{
			Date:           daily.Time[i],
			WeatherCode:    daily.WeatherCode[i],
			MaxTemperature: daily.Temperature2MMax[i],
			MinTemperature: daily.Temperature2MMin[i],
		})
	}

	return snapshot, nil
}
