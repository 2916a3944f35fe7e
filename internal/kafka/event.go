package kafka

import (
	"encoding/json"
	"fmt"
	"time"
)

const EventTripCreated = "trip_created"

// TripEvent is published after a trip is committed.
type TripEvent struct {
	Type       string         `json:"type"`
	TripID     int64          `json:"trip_id"`
	Reference  string         `json:"reference"`
	TripType   string         `json:"trip_type"`
	TotalPrice string         `json:"total_price"`
	Currency   string         `json:"currency"`
	Segments   []SegmentEvent `json:"segments"`
	CreatedAt  time.Time      `json:"created_at"`
}

type SegmentEvent struct {
	Index       int    `json:"segment_index"`
	FlightID    int64  `json:"flight_id"`
	Flight      string `json:"flight"`
	From        string `json:"from"`
	To          string `json:"to"`
	DepartureAt string `json:"departure_at_local"`
	ArrivalAt   string `json:"arrival_at_local"`
}

// DecodeTripEvent parses a message value produced by Publish.
func DecodeTripEvent(data []byte) (TripEvent, error) {
	var event TripEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return TripEvent{}, fmt.Errorf("decode trip event: %w", err)
	}
	if event.Reference == "" {
		return TripEvent{}, fmt.Errorf("decode trip event: missing reference")
	}
	return event, nil
}
