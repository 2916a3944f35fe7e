package itinerary

import "github.com/Domenick1991/tripsearch/internal/domain"

// ComposeRoundTrip pairs every outbound option with every inbound option that
// flies the mirrored route and leaves no earlier than the outbound arrives.
func ComposeRoundTrip(outbound, inbound []domain.Proposal) []domain.Proposal {
	pairs := make([]domain.Proposal, 0)
	for _, o := range outbound {
		if len(o.Segments) != 1 {
			continue
		}
		out := o.Segments[0]
		for _, in := range inbound {
			if len(in.Segments) != 1 {
				continue
			}
			ret := in.Segments[0]
			if ret.DepartureUTC.Before(out.ArrivalUTC) {
				continue
			}
			if !mirrored(out.Flight, ret.Flight) {
				continue
			}
			pairs = append(pairs, domain.NewProposal(domain.TripTypeRoundTrip, []domain.Segment{out, ret}))
		}
	}
	return pairs
}

// mirrored reports whether ret flies B->A for out flying A->B.
func mirrored(out, ret domain.Flight) bool {
	return ret.OriginCode == out.DestinationCode && ret.DestinationCode == out.OriginCode
}
