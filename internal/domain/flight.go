package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

type Airline struct {
	Code string
	Name string
}

// Flight is a scheduled catalog entry. Departure and arrival carry no date;
// they are anchored to a calendar day only when a segment is timed.
type Flight struct {
	ID              int64
	AirlineCode     string
	AirlineName     string
	Number          string
	OriginCode      string
	DestinationCode string
	DepartureTime   TimeOfDay
	ArrivalTime     TimeOfDay
	Price           Money
}

// TimeOfDay is a local wall-clock time with minute precision.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay accepts "HH:MM" and "HH:MM:SS"; seconds are dropped.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
}

// TimeOfDayFromDuration converts an offset since midnight, as stored in a
// Postgres TIME column.
func TimeOfDayFromDuration(d time.Duration) TimeOfDay {
	d = d.Truncate(time.Minute)
	return TimeOfDay{Hour: int(d / time.Hour), Minute: int(d % time.Hour / time.Minute)}
}

func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t.Hour)*time.Hour + time.Duration(t.Minute)*time.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// FlightFilter selects flights by origin and destination airport sets and an
// optional airline.
type FlightFilter struct {
	OriginCodes      []string
	DestinationCodes []string
	AirlineCode      string
}

func (f FlightFilter) Matches(fl Flight) bool {
	if f.AirlineCode != "" && !strings.EqualFold(f.AirlineCode, fl.AirlineCode) {
		return false
	}
	return slices.Contains(f.OriginCodes, fl.OriginCode) && slices.Contains(f.DestinationCodes, fl.DestinationCode)
}
