package models

import "sort"

// WMO weather interpretation codes shown by the widget.
var weatherCodes = map[int]ConditionInfo{
	0:  {"Clear sky", "☀️"},
	1:  {"Mainly clear", "🌤️"},
	2:  {"Partly cloudy", "⛅"},
	3:  {"Overcast", "☁️"},
	45: {"Foggy", "🌫️"},
	48: {"Depositing rime fog", "🌫️"},
	51: {"Light drizzle", "🌧️"},
	53: {"Moderate drizzle", "🌧️"},
	55: {"Dense drizzle", "🌧️"},
	61: {"Slight rain", "🌧️"},
	63: {"Moderate rain", "🌧️"},
	65: {"Heavy rain", "🌧️"},
	66: {"Light freezing rain", "🌨️"},
	67: {"Heavy freezing rain", "🌨️"},
	71: {"Slight snow", "❄️"},
	73: {"Moderate snow", "❄️"},
	75: {"Heavy snow", "❄️"},
	77: {"Snow grains", "❄️"},
	80: {"Slight rain showers", "🌦️"},
	81: {"Moderate rain showers", "🌦️"},
	82: {"Violent rain showers", "🌧️"},
	85: {"Slight snow showers", "🌨️"},
	86: {"Heavy snow showers", "🌨️"},
	95: {"Thunderstorm", "⛈️"},
	96: {"Thunderstorm with slight hail", "⛈️"},
	99: {"Thunderstorm with heavy hail", "⛈️"},
}

// UnknownCondition is returned for codes outside the table.
var UnknownCondition = ConditionInfo{Description: "Unknown", Pictogram: "🌡️"}

// Classify maps a weather code to its description and pictogram.
func Classify(code int) ConditionInfo {
	if info, ok := weatherCodes[code]; ok {
		return info
	}
	return UnknownCondition
}

// KnownCodes returns the codes Classify recognises, ascending.
func KnownCodes() []int {
	codes := make([]int, 0, len(weatherCodes))
	for code := range weatherCodes {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	return codes
}
