// Package itinerary computes timed flight segments and composes them into
// one-way, round-trip and multi-city proposals. It also re-validates a chosen
// itinerary before it is committed as a booking.
//
// Everything here is deterministic: the catalog and the evaluation instant
// are passed in by the caller.
package itinerary

import (
	"fmt"
	"slices"
	"strings"
	"time"
	_ "time/tzdata" // airport timezones must resolve on hosts without zoneinfo

	"github.com/Domenick1991/tripsearch/internal/domain"
)

// Directory resolves airport and city codes over a fixed airport list.
// It is read-only after construction and safe for concurrent use.
type Directory struct {
	airports  map[string]domain.Airport
	cities    map[string][]string
	locations map[string]*time.Location
}

func NewDirectory(airports []domain.Airport) (*Directory, error) {
	d := &Directory{
		airports:  make(map[string]domain.Airport, len(airports)),
		cities:    make(map[string][]string),
		locations: make(map[string]*time.Location, len(airports)),
	}
	for _, a := range airports {
		code := strings.ToUpper(a.Code)
		loc, err := time.LoadLocation(a.Timezone)
		if err != nil {
			return nil, fmt.Errorf("airport %s: load timezone %q: %w", code, a.Timezone, err)
		}
		d.airports[code] = a
		d.locations[code] = loc
		city := strings.ToUpper(a.CityCode)
		d.cities[city] = append(d.cities[city], code)
	}
	return d, nil
}

// Resolve maps an airport code to itself, or a city code to every airport of
// that city. Matching is case-insensitive and ignores surrounding spaces.
func (d *Directory) Resolve(token string) ([]string, error) {
	t := strings.ToUpper(strings.TrimSpace(token))
	if _, ok := d.airports[t]; ok {
		return []string{t}, nil
	}
	if codes := d.cities[t]; len(codes) > 0 {
		return slices.Clone(codes), nil
	}
	return nil, &domain.UnknownLocationError{Token: t}
}

// Location returns the timezone of an airport.
func (d *Directory) Location(code string) (*time.Location, error) {
	loc, ok := d.locations[strings.ToUpper(code)]
	if !ok {
		return nil, fmt.Errorf("airport %s is not in the directory", code)
	}
	return loc, nil
}
