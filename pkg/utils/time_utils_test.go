package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayWindow_FixedOffset(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	// 18:30 UTC is already the next day at UTC+7.
	instant := time.Date(2024, 9, 2, 18, 30, 0, 0, time.UTC)

	start, end := DayWindow(instant, loc)
	assert.Equal(t, time.Date(2024, 9, 3, 0, 0, 0, 0, loc), start)
	assert.Equal(t, 24*time.Hour, end.Sub(start))
	assert.Equal(t, "2024-09-03", DayKey(instant, loc))
}

func TestDayWindow_DSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skip("tzdata not available")
	}

	start, end := DayWindow(time.Date(2024, 3, 31, 12, 0, 0, 0, loc), loc)
	assert.Equal(t, 23*time.Hour, end.Sub(start))

	start, end = DayWindow(time.Date(2024, 10, 27, 12, 0, 0, 0, loc), loc)
	assert.Equal(t, 25*time.Hour, end.Sub(start))
}

func TestParseDayAndLoadLocation(t *testing.T) {
	loc := LoadLocation("")
	assert.Equal(t, time.UTC, loc)
	assert.Equal(t, time.UTC, LoadLocation("Not/AZone"))

	day, err := ParseDay("2024-02-29", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), day)

	_, err = ParseDay("2023-02-29", time.UTC)
	assert.Error(t, err)
	_, err = ParseDay("29/02/2024", time.UTC)
	assert.Error(t, err)
}

func TestFromUnixSeconds(t *testing.T) {
	assert.True(t, FromUnixSeconds(0, time.UTC).IsZero())
	assert.Equal(t, int64(1725235200), FromUnixSeconds(1725235200, time.UTC).Unix())
}
