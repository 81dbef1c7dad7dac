package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyKnownCodes(t *testing.T) {
	tests := []struct {
		code int
		want ConditionInfo
	}{
		{0, ConditionInfo{"Clear sky", "☀️"}},
		{1, ConditionInfo{"Mainly clear", "🌤️"}},
		{2, ConditionInfo{"Partly cloudy", "⛅"}},
		{3, ConditionInfo{"Overcast", "☁️"}},
		{45, ConditionInfo{"Foggy", "🌫️"}},
		{48, ConditionInfo{"Depositing rime fog", "🌫️"}},
		{51, ConditionInfo{"Light drizzle", "🌧️"}},
		{53, ConditionInfo{"Moderate drizzle", "🌧️"}},
		{55, ConditionInfo{"Dense drizzle", "🌧️"}},
		{61, ConditionInfo{"Slight rain", "🌧️"}},
		{63, ConditionInfo{"Moderate rain", "🌧️"}},
		{65, ConditionInfo{"Heavy rain", "🌧️"}},
		{66, ConditionInfo{"Light freezing rain", "🌨️"}},
		{67, ConditionInfo{"Heavy freezing rain", "🌨️"}},
		{71, ConditionInfo{"Slight snow", "❄️"}},
		{73, ConditionInfo{"Moderate snow", "❄️"}},
		{75, ConditionInfo{"Heavy snow", "❄️"}},
		{77, ConditionInfo{"Snow grains", "❄️"}},
		{80, ConditionInfo{"Slight rain showers", "🌦️"}},
		{81, ConditionInfo{"Moderate rain showers", "🌦️"}},
		{82, ConditionInfo{"Violent rain showers", "🌧️"}},
		{85, ConditionInfo{"Slight snow showers", "🌨️"}},
		{86, ConditionInfo{"Heavy snow showers", "🌨️"}},
		{95, ConditionInfo{"Thunderstorm", "⛈️"}},
		{96, ConditionInfo{"Thunderstorm with slight hail", "⛈️"}},
		{99, ConditionInfo{"Thunderstorm with heavy hail", "⛈️"}},
	}

	assert.Len(t, KnownCodes(), len(tests))
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.code), "code %d", tt.code)
	}
}

func TestClassifyFallback(t *testing.T) {
	for _, code := range []int{-1, 4, 44, 56, 57, 100, 1000} {
		assert.Equal(t, UnknownCondition, Classify(code), "code %d", code)
	}
	assert.Equal(t, "Unknown", UnknownCondition.Description)
	assert.Equal(t, "🌡️", UnknownCondition.Pictogram)
}

func TestKnownCodesSorted(t *testing.T) {
	codes := KnownCodes()
	for i := 1; i < len(codes); i++ {
		assert.Less(t, codes[i-1], codes[i])
	}
}
