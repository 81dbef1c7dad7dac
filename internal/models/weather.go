package models

import (
	"errors"
)

// ErrLocationNotFound is returned by a resolver when the geocoder has no match
// for the query. It is an expected outcome, not a transport failure.
var ErrLocationNotFound = errors.New("location not found")

type Location struct {
	Name        string  `json:"name"`
	CountryCode string  `json:"country_code"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Timezone    string  `json:"timezone"`
}

type CurrentConditions struct {
	Temperature         float64 `json:"temperature"`
	ApparentTemperature float64 `json:"apparent_temperature"`
	RelativeHumidity    float64 `json:"relative_humidity"`
	WindSpeed           float64 `json:"wind_speed"`
	WeatherCode         int     `json:"weather_code"`
}

// DailyForecast is one day of the forecast. Date is a calendar date
// (YYYY-MM-DD) in the location's timezone.
type DailyForecast struct {
	Date           string  `json:"date"`
	WeatherCode    int     `json:"weather_code"`
	MaxTemperature float64 `json:"max_temperature"`
	MinTemperature float64 `json:"min_temperature"`
}

type WeatherSnapshot struct {
	Current CurrentConditions `json:"current"`
	Daily   []DailyForecast   `json:"daily"`
}

type ConditionInfo struct {
	Description string `json:"description"`
	Pictogram   string `json:"pictogram"`
}
