package reservation

import (
	"errors"
	"fmt"

	"wellness-booking/internal/domain/room"

	"github.com/google/uuid"
)

var ErrSlotConflict = errors.New("time slot overlaps an active reservation")

// Occupancy is anything holding a room slot: a persisted booking or a staged draft.
type Occupancy struct {
	RefID    uuid.UUID
	RoomID   room.ID
	Interval TimeInterval
	Status   Status
}

// ConflictError names the window that blocked a selection. RoomName is filled by the caller.
type ConflictError struct {
	RoomID   room.ID
	RoomName string
	Window   TimeInterval
	RefID    uuid.UUID
}

func (e *ConflictError) Error() string {
	name := e.RoomName
	if name == "" {
		name = e.RoomID.String()
	}
	return fmt.Sprintf("%s is already reserved on %s from %s", name, e.Window.Date, e.Window)
}

func (e *ConflictError) Unwrap() error { return ErrSlotConflict }

// CheckConflict scans pool for an active occupancy of roomID that overlaps interval.
// The pool is explicit so callers decide whether staged drafts count.
// When several overlap, the earliest window is reported.
func CheckConflict(roomID room.ID, interval TimeInterval, pool []Occupancy) *ConflictError {
	var hit *Occupancy
	for i := range pool {
		o := &pool[i]
		if o.RoomID != roomID || !o.Status.IsActive() || !o.Interval.Overlaps(interval) {
			continue
		}
		if hit == nil || o.Interval.StartMinute < hit.Interval.StartMinute {
			hit = o
		}
	}
	if hit == nil {
		return nil
	}
	return &ConflictError{RoomID: roomID, Window: hit.Interval, RefID: hit.RefID}
}

func DraftOccupancies(drafts []DraftSelection) []Occupancy {
	out := make([]Occupancy, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, d.Occupancy())
	}
	return out
}
