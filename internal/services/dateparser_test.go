package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhenDateParser_RelativePhrase(t *testing.T) {
	parser := NewWhenDateParser("en")

	result, err := parser.Parse("in 2 hours", "UTC")
	require.NoError(t, err)

	expected := time.Now().Add(2 * time.Hour)
	assert.WithinDuration(t, expected, result, 2*time.Minute)
}

func TestWhenDateParser_TomorrowAtTen(t *testing.T) {
	parser := NewWhenDateParser("en")

	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	result, err := parser.Parse("tomorrow at 10am", "America/Sao_Paulo")
	require.NoError(t, err)

	tomorrow := time.Now().In(loc).AddDate(0, 0, 1)
	localResult := result.In(loc)
	assert.Equal(t, tomorrow.Year(), localResult.Year())
	assert.Equal(t, tomorrow.Month(), localResult.Month())
	assert.Equal(t, tomorrow.Day(), localResult.Day())
	assert.Equal(t, 10, localResult.Hour())
}

func TestWhenDateParser_ForwardBias(t *testing.T) {
	parser := NewWhenDateParser("en")

	result, err := parser.Parse("tomorrow at 10am", "UTC")
	require.NoError(t, err)
	assert.True(t, result.After(time.Now()), "relative phrases must resolve to the future")
}

func TestWhenDateParser_ExplicitCalendarDate(t *testing.T) {
	parser := NewWhenDateParser("en")

	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	result, err := parser.Parse("2035-06-15 14:30:00", "America/Sao_Paulo")
	require.NoError(t, err)

	localResult := result.In(loc)
	assert.Equal(t, 2035, localResult.Year())
	assert.Equal(t, time.June, localResult.Month())
	assert.Equal(t, 15, localResult.Day())
	assert.Equal(t, 14, localResult.Hour())
	assert.Equal(t, 30, localResult.Minute())
}

func TestWhenDateParser_NoDateFound(t *testing.T) {
	parser := NewWhenDateParser("en")

	tests := []struct {
		name string
		text string
	}{
		{name: "empty text", text: ""},
		{name: "whitespace only", text: "   "},
		{name: "plain prose", text: "buy milk please"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(tt.text, "UTC")
			assert.ErrorIs(t, err, ErrNoDateFound)
		})
	}
}

func TestWhenDateParser_DefaultTimezoneFromLocale(t *testing.T) {
	parser := NewWhenDateParser("pt")

	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	// Empty timezone falls back to the locale default
	result, err := parser.Parse("2035-06-15 14:30:00", "")
	require.NoError(t, err)
	assert.Equal(t, 14, result.In(loc).Hour())
}

func TestWhenDateParser_InvalidTimezoneFallsBackToUTC(t *testing.T) {
	parser := NewWhenDateParser("en")

	result, err := parser.Parse("2035-06-15 14:30:00", "Not/AZone")
	require.NoError(t, err)
	assert.Equal(t, 14, result.In(time.UTC).Hour())
}

func TestWhenDateParser_SetLocale(t *testing.T) {
	parser := NewWhenDateParser("en")
	assert.Equal(t, "en", parser.Locale().Code)

	parser.SetLocale("pt")
	assert.Equal(t, "pt", parser.Locale().Code)
	assert.Equal(t, "America/Sao_Paulo", parser.Locale().Timezone)

	// Explicit dates still parse after the swap
	_, err := parser.Parse("2035-06-15 14:30:00", "")
	assert.NoError(t, err)
}

func TestWhenDateParser_UnknownLocaleFallsBack(t *testing.T) {
	parser := NewWhenDateParser("xx")
	assert.Equal(t, "en", parser.Locale().Code)

	_, err := parser.Parse("in 2 hours", "UTC")
	assert.NoError(t, err)
}
