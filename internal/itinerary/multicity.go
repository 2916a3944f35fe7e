package itinerary

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Domenick1991/tripsearch/internal/domain"
)

const (
	// LegOptionLimit caps the options kept per leg, cheapest first.
	LegOptionLimit = 20
	// BeamWidth caps the partial paths kept after each leg, cheapest first.
	BeamWidth = 200
)

// Leg is one resolved hop of a multi-city search.
type Leg struct {
	OriginCodes      []string
	DestinationCodes []string
	Date             domain.Date
}

// MultiCity builds end-to-end itineraries across legs with a price-ordered
// beam search. Options outside the cheapest LegOptionLimit of a leg are never
// considered, so the result is not guaranteed to contain the globally
// cheapest itinerary. An empty result means no connected itinerary exists.
func (b *Builder) MultiCity(ctx context.Context, legs []Leg, airline string) ([]domain.Proposal, error) {
	options := make([][]domain.Segment, len(legs))

	g, gctx := errgroup.WithContext(ctx)
	for i, leg := range legs {
		g.Go(func() error {
			props, err := b.OneWay(gctx, leg.OriginCodes, leg.DestinationCodes, leg.Date, airline)
			if err != nil {
				return fmt.Errorf("leg %d: %w", i+1, err)
			}
			options[i] = cheapestSegments(props, LegOptionLimit)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return composeMultiCity(legs, options, BeamWidth), nil
}

// path is a partial itinerary covering a prefix of the legs.
type path struct {
	segments        []domain.Segment
	total           domain.Money
	lastArrivalCode string
	lastArrivalUTC  time.Time
}

func composeMultiCity(legs []Leg, options [][]domain.Segment, width int) []domain.Proposal {
	if len(legs) == 0 {
		return []domain.Proposal{}
	}

	frontier := []path{{}}
	for i, leg := range legs {
		frontier = trimFrontier(expand(frontier, leg, options[i], i), width)
		if len(frontier) == 0 {
			return []domain.Proposal{}
		}
	}

	proposals := make([]domain.Proposal, 0, len(frontier))
	for _, p := range frontier {
		proposals = append(proposals, domain.NewProposal(domain.TripTypeMultiCity, p.segments))
	}
	return proposals
}

// expand appends every admissible option of leg idx to every path. After the
// first leg an option must leave from the airport the path arrived at, that
// airport must be one of the leg's origins, and it must not leave before the
// path arrived.
func expand(frontier []path, leg Leg, options []domain.Segment, idx int) []path {
	next := make([]path, 0, len(frontier)*len(options))
	for _, p := range frontier {
		for _, opt := range options {
			if idx > 0 {
				origin := opt.Flight.OriginCode
				if origin != p.lastArrivalCode || !slices.Contains(leg.OriginCodes, origin) {
					continue
				}
				if opt.DepartureUTC.Before(p.lastArrivalUTC) {
					continue
				}
			}

			seg := opt
			seg.Index = idx + 1
			segments := make([]domain.Segment, len(p.segments), len(p.segments)+1)
			copy(segments, p.segments)

			next = append(next, path{
				segments:        append(segments, seg),
				total:           p.total + opt.Price,
				lastArrivalCode: opt.Flight.DestinationCode,
				lastArrivalUTC:  opt.ArrivalUTC,
			})
		}
	}
	return next
}

// trimFrontier keeps the width cheapest paths. Ties keep expansion order.
func trimFrontier(paths []path, width int) []path {
	slices.SortStableFunc(paths, func(a, b path) int { return cmp.Compare(a.total, b.total) })
	if len(paths) > width {
		paths = paths[:width]
	}
	return paths
}

func cheapestSegments(proposals []domain.Proposal, limit int) []domain.Segment {
	segments := make([]domain.Segment, 0, len(proposals))
	for _, p := range proposals {
		if len(p.Segments) == 1 {
			segments = append(segments, p.Segments[0])
		}
	}
	slices.SortStableFunc(segments, func(a, b domain.Segment) int { return cmp.Compare(a.Price, b.Price) })
	if len(segments) > limit {
		segments = segments[:limit]
	}
	return segments
}
