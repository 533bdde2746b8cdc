package demo

import (
	"encoding/json"
	"time"

	"backend-erickshaw/internal/shared/geo"
)

// Topic is the stream topic the store publishes on.
const Topic = "demo"

type EventType string

const (
	EventUserChanged  EventType = "user.changed"
	EventSeeded       EventType = "demo.seeded"
	EventPooled       EventType = "demo.pooled"
	EventAssigned     EventType = "demo.assigned"
	EventPoolVerified EventType = "pool.verified"
	EventVerified     EventType = "demo.verified"
	EventMoving       EventType = "demo.moving"
	EventTripProgress EventType = "trip.progress"
	EventCompleted    EventType = "demo.completed"
	EventReset        EventType = "demo.reset"
	EventStudentOnly  EventType = "demo.student_only"
)

// Event describes one applied change. Events of the same change share Seq,
// and Seq increases in the order changes were applied.
type Event struct {
	Type     EventType    `json:"type"`
	Seq      uint64       `json:"seq"`
	Step     Step         `json:"step"`
	At       time.Time    `json:"at"`
	User     *CurrentUser `json:"user,omitempty"`
	PoolID   string       `json:"pool_id,omitempty"`
	TripID   string       `json:"trip_id,omitempty"`
	Progress *float64     `json:"progress,omitempty"`
	Position *geo.Point   `json:"position,omitempty"`
}

func (s *Store) emit(e Event) {
	if s.pub == nil {
		return
	}
	e.At = time.Now().UTC()
	payload, err := json.Marshal(e)
	if err != nil {
		s.log.WithError(err).WithField("type", e.Type).Error("encode event")
		return
	}
	s.pub.Broadcast(Topic, payload)
}
