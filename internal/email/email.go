package email

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Domenick1991/tripsearch/internal/kafka"
)

// Sender renders trip confirmations. There is no mail transport; the message
// is written to the log.
type Sender struct {
	log *slog.Logger
}

func NewSender(log *slog.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.TripEvent) error {
	s.log.InfoContext(ctx, "send trip confirmation",
		"event", event.Type,
		"reference", event.Reference,
		"trip_id", event.TripID,
		"body", Render(event),
	)
	return nil
}

// Render formats the itinerary as plain text, one line per segment.
func Render(event kafka.TripEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Trip %s (%s), total %s %s\n", event.Reference, event.TripType, event.TotalPrice, event.Currency)
	for _, seg := range event.Segments {
		fmt.Fprintf(&b, "%d. %s %s -> %s, departs %s, arrives %s\n",
			seg.Index, seg.Flight, seg.From, seg.To, seg.DepartureAt, seg.ArrivalAt)
	}
	return b.String()
}
