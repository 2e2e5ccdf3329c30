package utils

import (
	"log"
	"time"
)

const DayLayout = "2006-01-02"

// LoadLocation resolves an IANA zone name. Unknown names fall back to UTC.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Unknown timezone %q, falling back to UTC: %v", name, err)
		return time.UTC
	}
	return loc
}

// StartOfDay returns local midnight of the calendar day containing t.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// DayWindow returns [midnight, next midnight) for the day containing t.
// The next midnight is computed by calendar, so DST days are 23 or 25 hours long.
func DayWindow(t time.Time, loc *time.Location) (time.Time, time.Time) {
	start := StartOfDay(t, loc)
	return start, time.Date(start.Year(), start.Month(), start.Day()+1, 0, 0, 0, 0, loc)
}

func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DayLayout)
}

// ParseDay parses YYYY-MM-DD as a calendar day in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DayLayout, s, loc)
}

func FromUnixSeconds(t int64, loc *time.Location) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).In(loc)
}
