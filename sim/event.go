package sim

import (
	"time"

	"github.com/sirupsen/logrus"
)

// EventType identifies the kind of a replay event.
type EventType string

const (
	EventTypeStore    EventType = "Store"
	EventTypeRetrieve EventType = "Retrieve"
)

// EventTypePriority orders events that fall on the same day. Lower values run
// first, so every store of a day is applied before that day's retrievals.
var EventTypePriority = map[EventType]int{
	EventTypeStore:    0,
	EventTypeRetrieve: 1,
}

// Event is one store or retrieve request in the replay stream.
type Event interface {
	Timestamp() int64 // simulated day, see DayOf
	Type() EventType
	EventID() int64 // input order, breaks ties within a day and type
	Execute(*Simulator)
}

// DayOf converts a calendar date into the day number used as event timestamp.
func DayOf(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

// DateOf is the inverse of DayOf.
func DateOf(day int64) time.Time {
	return time.Unix(day*86400, 0).UTC()
}

// StoreEvent asks the policy to place a pallet.
type StoreEvent struct {
	day    int64
	id     int64
	Pallet Pallet
}

// NewStoreEvent creates a store event for the given day.
func NewStoreEvent(day int64, pallet Pallet, id int64) *StoreEvent {
	return &StoreEvent{day: day, id: id, Pallet: pallet}
}

func (e *StoreEvent) Timestamp() int64 { return e.day }
func (e *StoreEvent) Type() EventType  { return EventTypeStore }
func (e *StoreEvent) EventID() int64   { return e.id }

// Execute places the pallet and records the outcome.
func (e *StoreEvent) Execute(s *Simulator) {
	logrus.Debugf("<< Store: %s on day %d", e.Pallet.Category, e.day)
	s.Store(e.Pallet)
}

// RetrieveEvent asks the policy to take out one pallet of a category.
type RetrieveEvent struct {
	day      int64
	id       int64
	Category Category
}

// NewRetrieveEvent creates a retrieve event for the given day.
func NewRetrieveEvent(day int64, c Category, id int64) *RetrieveEvent {
	return &RetrieveEvent{day: day, id: id, Category: c}
}

func (e *RetrieveEvent) Timestamp() int64 { return e.day }
func (e *RetrieveEvent) Type() EventType  { return EventTypeRetrieve }
func (e *RetrieveEvent) EventID() int64   { return e.id }

// Execute retrieves a pallet and records the outcome.
func (e *RetrieveEvent) Execute(s *Simulator) {
	logrus.Debugf("<< Retrieve: %s on day %d", e.Category, e.day)
	s.Retrieve(e.Category)
}
