// Package subscriber is the consumer side of the seat change stream: a local
// seat view that ignores stale or duplicate events, and a client for the
// HTTP snapshot and the WebSocket feed.
package subscriber

import (
	"sort"
	"sync"

	"github.com/srgjo27/seat_reservation/internal/core/domain"
)

// SeatView holds the latest known state of every seat. Events are matched by
// seatId, falling back to seatNumber when the id is missing or unknown.
type SeatView struct {
	mu       sync.RWMutex
	seats    map[int64]domain.SeatEvent
	byNumber map[string]int64
}

func NewSeatView() *SeatView {
	return &SeatView{
		seats:    make(map[int64]domain.SeatEvent),
		byNumber: make(map[string]int64),
	}
}

// Seed replaces the view with a snapshot.
func (v *SeatView) Seed(snapshot []domain.SeatEvent) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.seats = make(map[int64]domain.SeatEvent, len(snapshot))
	v.byNumber = make(map[string]int64, len(snapshot))
	for _, seat := range snapshot {
		v.seats[seat.SeatID] = seat
		if seat.SeatNumber != "" {
			v.byNumber[seat.SeatNumber] = seat.SeatID
		}
	}
}

// Apply merges an event and reports whether it changed the view. Events whose
// version is not newer than the last one seen for that seat are dropped.
func (v *SeatView) Apply(event domain.SeatEvent) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	id, ok := v.resolve(event)
	if !ok {
		return false
	}

	if current, seen := v.seats[id]; seen && event.Version <= current.Version {
		return false
	}

	event.SeatID = id
	v.seats[id] = event
	if event.SeatNumber != "" {
		v.byNumber[event.SeatNumber] = id
	}

	return true
}

// resolve prefers a known seatId, then a known seatNumber. An event matching
// neither is a new seat when it carries an id.
func (v *SeatView) resolve(event domain.SeatEvent) (int64, bool) {
	if _, ok := v.seats[event.SeatID]; ok && event.SeatID > 0 {
		return event.SeatID, true
	}

	if id, ok := v.byNumber[event.SeatNumber]; ok && event.SeatNumber != "" {
		return id, true
	}

	return event.SeatID, event.SeatID > 0
}

func (v *SeatView) Get(seatID int64) (domain.SeatEvent, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	seat, ok := v.seats[seatID]
	return seat, ok
}

// Seats returns the view ordered by seat id.
func (v *SeatView) Seats() []domain.SeatEvent {
	v.mu.RLock()
	seats := make([]domain.SeatEvent, 0, len(v.seats))
	for _, seat := range v.seats {
		seats = append(seats, seat)
	}
	v.mu.RUnlock()

	sort.Slice(seats, func(i, j int) bool { return seats[i].SeatID < seats[j].SeatID })

	return seats
}
