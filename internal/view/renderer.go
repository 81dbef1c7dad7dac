package view

import (
	"math"
	"strconv"
	"time"

	"github.com/bobby-s-dev/skyline/internal/models"
)

// Renderer writes a WeatherSnapshot into display slots. Numbers are rounded
// with math.Round (halves away from zero).
type Renderer struct {
	now func() time.Time
}

func NewRenderer(now func() time.Time) *Renderer {
	if now == nil {
		now = time.Now
	}
	return &Renderer{now: now}
}

func (r *Renderer) RenderCurrent(slots Slots, snapshot *models.WeatherSnapshot, locationName, countryCode string) {
	cur := snapshot.Current
	info := models.Classify(cur.WeatherCode)

	slots.SetField(FieldCityName, locationName)
	slots.SetField(FieldCountry, countryCode)
	slots.SetField(FieldCurrentTemp, roundString(cur.Temperature))
	slots.SetField(FieldWeatherDesc, info.Description)
	slots.SetField(FieldWeatherEmoji, info.Pictogram)
	slots.SetField(FieldFeelsLike, roundString(cur.ApparentTemperature)+"°")
	slots.SetField(FieldHumidity, strconv.FormatFloat(cur.RelativeHumidity, 'f', -1, 64)+"%")
	slots.SetField(FieldWindSpeed, roundString(cur.WindSpeed)+" km/h")
}

// RenderForecast replaces the forecast list with one row per daily entry.
func (r *Renderer) RenderForecast(slots Slots, snapshot *models.WeatherSnapshot) {
	now := r.now()
	rows := make([]ForecastRow, 0, len(snapshot.Daily))
	for _, day := range snapshot.Daily {
		rows = append(rows, ForecastRow{
			Day:       models.DayLabel(day.Date, now),
			Pictogram: models.Classify(day.WeatherCode).Pictogram,
			Max:       roundString(day.MaxTemperature),
			Min:       roundString(day.MinTemperature),
		})
	}
	slots.ReplaceForecast(rows)
}

func roundString(v float64) string {
	rounded := math.Round(v)
	if rounded == 0 {
		// avoid "-0"
		rounded = 0
	}
	return strconv.FormatFloat(rounded, 'f', 0, 64)
}
