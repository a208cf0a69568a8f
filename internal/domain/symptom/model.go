package symptom

import (
	"time"

	"github.com/google/uuid"

	"github.com/matricare/matricare/internal/domain/risk"
)

// Record maps to the symptom_record table. Records are append-only: one
// row per submission, never updated or deleted, with the verdict the
// classifier produced at write time persisted verbatim.
type Record struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	UserID    uuid.UUID  `db:"user_id" json:"user_id"`
	Symptom   string     `db:"symptom" json:"symptom"`
	Risk      risk.Level `db:"risk" json:"risk"`
	Advice    string     `db:"advice" json:"advice"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}
