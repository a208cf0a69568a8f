package movement

import (
	"time"

	"github.com/google/uuid"
)

// Record maps to the movement_record table: exactly one row per user per
// calendar day, updated in place on repeat check-ins.
type Record struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Day         time.Time `db:"day" json:"date"`
	HasMovement bool      `db:"has_movement" json:"has_movement"`
	Count       int       `db:"count" json:"count"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// DayOf truncates a timestamp to its calendar day in the timestamp's
// location.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
