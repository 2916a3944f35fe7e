package itinerary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Domenick1991/tripsearch/internal/domain"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func tod(t *testing.T, s string) domain.TimeOfDay {
	t.Helper()
	v, err := domain.ParseTimeOfDay(s)
	require.NoError(t, err)
	return v
}

func TestResolveTiming_OvernightRollover(t *testing.T) {
	berlin := mustLoad(t, "Europe/Berlin")

	timing, ok := ResolveTiming(berlin, berlin, tod(t, "23:30"), tod(t, "01:00"), date("2030-02-01"), NewWindow(testNow))

	require.True(t, ok)
	assert.Equal(t, date("2030-02-01"), domain.DateOf(timing.DepartureLocal))
	assert.Equal(t, date("2030-02-02"), domain.DateOf(timing.ArrivalLocal))
	assert.Equal(t, time.Date(2030, 2, 1, 22, 30, 0, 0, time.UTC), timing.DepartureUTC)
	assert.Equal(t, time.Date(2030, 2, 2, 0, 0, 0, 0, time.UTC), timing.ArrivalUTC)
	assert.True(t, timing.ArrivalUTC.After(timing.DepartureUTC))
	assert.Equal(t, "Europe/Berlin", timing.DepartureTZ)
	assert.Equal(t, "Europe/Berlin", timing.ArrivalTZ)
}

func TestResolveTiming_CrossTimezone(t *testing.T) {
	newYork := mustLoad(t, "America/New_York")
	london := mustLoad(t, "Europe/London")

	t.Run("eastbound overnight", func(t *testing.T) {
		timing, ok := ResolveTiming(newYork, london, tod(t, "18:00"), tod(t, "06:00"), date("2030-02-01"), NewWindow(testNow))

		require.True(t, ok)
		assert.Equal(t, time.Date(2030, 2, 1, 23, 0, 0, 0, time.UTC), timing.DepartureUTC)
		assert.Equal(t, time.Date(2030, 2, 2, 6, 0, 0, 0, time.UTC), timing.ArrivalUTC)
		assert.Equal(t, "America/New_York", timing.DepartureTZ)
		assert.Equal(t, "Europe/London", timing.ArrivalTZ)
		_, offset := timing.DepartureLocal.Zone()
		assert.Equal(t, -5*3600, offset)
	})

	t.Run("westbound same day", func(t *testing.T) {
		timing, ok := ResolveTiming(london, newYork, tod(t, "09:00"), tod(t, "12:00"), date("2030-02-01"), NewWindow(testNow))

		require.True(t, ok)
		assert.Equal(t, time.Date(2030, 2, 1, 9, 0, 0, 0, time.UTC), timing.DepartureUTC)
		assert.Equal(t, time.Date(2030, 2, 1, 17, 0, 0, 0, time.UTC), timing.ArrivalUTC)
		assert.Equal(t, date("2030-02-01"), domain.DateOf(timing.ArrivalLocal))
	})
}

func TestResolveTiming_SingleRolloverOnly(t *testing.T) {
	pagoPago := mustLoad(t, "Pacific/Pago_Pago")
	kiritimati := mustLoad(t, "Pacific/Kiritimati")

	// 00:00 at UTC-11 is 11:00Z; 00:00 at UTC+14 the next day is only 10:00Z.
	_, ok := ResolveTiming(pagoPago, kiritimati, tod(t, "00:00"), tod(t, "00:00"), date("2030-02-01"), NewWindow(testNow))

	assert.False(t, ok)
}

func TestResolveTiming_WindowBoundaries(t *testing.T) {
	utc := time.UTC
	noon := tod(t, "12:00")
	oneOClock := tod(t, "13:00")

	testCases := []struct {
		name string
		now  time.Time
		date domain.Date
		ok   bool
	}{
		{name: "departure exactly now", now: time.Date(2030, 1, 10, 12, 0, 0, 0, utc), date: date("2030-01-10"), ok: false},
		{name: "departure one second after now", now: time.Date(2030, 1, 10, 11, 59, 59, 0, utc), date: date("2030-01-10"), ok: true},
		{name: "departure before now", now: time.Date(2030, 1, 10, 12, 30, 0, 0, utc), date: date("2030-01-10"), ok: false},
		{name: "departure exactly at horizon", now: time.Date(2030, 1, 10, 12, 0, 0, 0, utc), date: date("2031-01-10"), ok: true},
		{name: "departure one second past horizon", now: time.Date(2030, 1, 10, 11, 59, 59, 0, utc), date: date("2031-01-10"), ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := ResolveTiming(utc, utc, noon, oneOClock, tc.date, NewWindow(tc.now))
			assert.Equal(t, tc.ok, ok)
		})
	}
}

func TestWindow_Contains(t *testing.T) {
	w := NewWindow(testNow)

	assert.False(t, w.Contains(testNow))
	assert.True(t, w.Contains(testNow.Add(time.Second)))
	assert.True(t, w.Contains(testNow.AddDate(0, 0, 365)))
	assert.False(t, w.Contains(testNow.AddDate(0, 0, 365).Add(time.Second)))
}

func TestNewWindow_NormalizesToUTC(t *testing.T) {
	tokyo := mustLoad(t, "Asia/Tokyo")

	w := NewWindow(testNow.In(tokyo))

	assert.Equal(t, time.UTC, w.Now.Location())
	assert.True(t, w.Now.Equal(testNow))
}
