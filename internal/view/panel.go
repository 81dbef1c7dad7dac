// Package view projects weather data onto the widget panel.
//
// The panel is a set of named text slots plus a forecast list, a display
// state, an error message, the search placeholder and the document theme
// flag. It is the only mutable UI state of the widget and is safe for
// concurrent use.
package view

import (
	"sync"

	"github.com/bobby-s-dev/skyline/internal/models"
)

// Field names a display slot.
type Field string

const (
	FieldCityName     Field = "cityName"
	FieldCountry      Field = "country"
	FieldCurrentTemp  Field = "currentTemp"
	FieldWeatherDesc  Field = "weatherDesc"
	FieldWeatherEmoji Field = "weatherEmoji"
	FieldFeelsLike    Field = "feelsLike"
	FieldHumidity     Field = "humidity"
	FieldWindSpeed    Field = "windSpeed"
)

type ForecastRow struct {
	Day       string `json:"day"`
	Pictogram string `json:"pictogram"`
	Max       string `json:"max"`
	Min       string `json:"min"`
}

// Slots is the write side the Renderer needs.
type Slots interface {
	SetField(field Field, value string)
	ReplaceForecast(rows []ForecastRow)
}

// PanelView is a point-in-time copy of the panel.
type PanelView struct {
	State        string        `json:"state"`
	ErrorText    string        `json:"error_text,omitempty"`
	Placeholder  string        `json:"placeholder,omitempty"`
	Theme        string        `json:"theme"`
	CityName     string        `json:"city_name"`
	Country      string        `json:"country"`
	CurrentTemp  string        `json:"current_temp"`
	WeatherDesc  string        `json:"weather_desc"`
	WeatherEmoji string        `json:"weather_emoji"`
	FeelsLike    string        `json:"feels_like"`
	Humidity     string        `json:"humidity"`
	WindSpeed    string        `json:"wind_speed"`
	Forecast     []ForecastRow `json:"forecast"`
}

// Frame stages slot writes for a single Panel.Apply.
type Frame struct {
	fields      map[Field]string
	forecast    []ForecastRow
	hasForecast bool
}

func NewFrame() *Frame {
	return &Frame{fields: make(map[Field]string)}
}

func (f *Frame) SetField(field Field, value string) {
	f.fields[field] = value
}

func (f *Frame) ReplaceForecast(rows []ForecastRow) {
	f.forecast = make([]ForecastRow, len(rows))
	copy(f.forecast, rows)
	f.hasForecast = true
}

type Panel struct {
	mu          sync.RWMutex
	state       models.DisplayState
	errorText   string
	placeholder string
	lightTheme  bool
	fields      map[Field]string
	forecast    []ForecastRow
}

func NewPanel() *Panel {
	return &Panel{
		fields: make(map[Field]string),
	}
}

func (p *Panel) SetField(field Field, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fields[field] = value
}

func (p *Panel) Field(field Field) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.fields[field]
}

// ReplaceForecast swaps the whole forecast list.
func (p *Panel) ReplaceForecast(rows []ForecastRow) {
	cp := make([]ForecastRow, len(rows))
	copy(cp, rows)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.forecast = cp
}

// Apply writes every staged slot of f and the new state under one lock, so a
// concurrent Snapshot never mixes two renders.
func (p *Panel) Apply(f *Frame, state models.DisplayState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for field, value := range f.fields {
		p.fields[field] = value
	}
	if f.hasForecast {
		p.forecast = f.forecast
	}
	p.state = state
}

// ShowError enters the error state with message.
func (p *Panel) ShowError(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = models.StateError
	p.errorText = message
}

func (p *Panel) SetState(state models.DisplayState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = state
}

func (p *Panel) State() models.DisplayState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

func (p *Panel) SetError(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errorText = message
}

func (p *Panel) SetPlaceholder(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.placeholder = text
}

// SetLightTheme sets or clears the document's data-theme="light" flag.
func (p *Panel) SetLightTheme(light bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lightTheme = light
}

func (p *Panel) LightTheme() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lightTheme
}

func (p *Panel) Snapshot() PanelView {
	p.mu.RLock()
	defer p.mu.RUnlock()

	theme := models.ThemeDark
	if p.lightTheme {
		theme = models.ThemeLight
	}

	forecast := make([]ForecastRow, len(p.forecast))
	copy(forecast, p.forecast)

	return PanelView{
		State:        p.state.String(),
		ErrorText:    p.errorText,
		Placeholder:  p.placeholder,
		Theme:        string(theme),
		CityName:     p.fields[FieldCityName],
		Country:      p.fields[FieldCountry],
		CurrentTemp:  p.fields[FieldCurrentTemp],
		WeatherDesc:  p.fields[FieldWeatherDesc],
		WeatherEmoji: p.fields[FieldWeatherEmoji],
		FeelsLike:    p.fields[FieldFeelsLike],
		Humidity:     p.fields[FieldHumidity],
		WindSpeed:    p.fields[FieldWindSpeed],
		Forecast:     forecast,
	}
}
