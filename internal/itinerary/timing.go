package itinerary

import (
	"time"

	"github.com/Domenick1991/tripsearch/internal/domain"
)

// BookingHorizonDays bounds how far ahead a segment may depart.
const BookingHorizonDays = 365

// Window is the half-open interval (Now, Max] a departure must fall in. It is
// sampled once per request so every option is judged against the same instant.
type Window struct {
	Now time.Time
	Max time.Time
}

func NewWindow(now time.Time) Window {
	now = now.UTC()
	return Window{Now: now, Max: now.AddDate(0, 0, BookingHorizonDays)}
}

func (w Window) Contains(t time.Time) bool {
	return t.After(w.Now) && !t.After(w.Max)
}

// ResolveTiming anchors a flight's local times to date. The departure is
// taken in depLoc on date; the arrival is first taken in arrLoc on the same
// date and moved one calendar day later if it would not follow the departure.
// The rollover is applied at most once.
//
// ok is false when the departure falls outside w, or when the arrival still
// does not follow the departure after the rollover.
func ResolveTiming(depLoc, arrLoc *time.Location, dep, arr domain.TimeOfDay, date domain.Date, w Window) (t domain.Timing, ok bool) {
	depLocal := date.At(dep, depLoc)
	depUTC := depLocal.UTC()
	if !w.Contains(depUTC) {
		return domain.Timing{}, false
	}

	arrLocal := date.At(arr, arrLoc)
	if !arrLocal.After(depLocal) {
		arrLocal = date.AddDays(1).At(arr, arrLoc)
	}
	arrUTC := arrLocal.UTC()
	if !arrUTC.After(depUTC) {
		return domain.Timing{}, false
	}

	return domain.Timing{
		DepartureTZ:    depLoc.String(),
		ArrivalTZ:      arrLoc.String(),
		DepartureLocal: depLocal,
		ArrivalLocal:   arrLocal,
		DepartureUTC:   depUTC,
		ArrivalUTC:     arrUTC,
	}, true
}
