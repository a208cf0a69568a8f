package identity

import (
	"time"

	"github.com/google/uuid"
)

// User maps to the app_user table. PasswordHash never leaves the server;
// the json tag keeps it out of every response body.
type User struct {
	ID              uuid.UUID    `db:"id" json:"id"`
	Name            string       `db:"name" json:"name"`
	Age             int          `db:"age" json:"age"`
	Mobile          string       `db:"mobile" json:"mobile"`
	PasswordHash    string       `db:"password_hash" json:"-"`
	PregnancyMonth  int          `db:"pregnancy_month" json:"pregnancy_month"`
	FamilyContact   string       `db:"family_contact" json:"family_contact"`
	DoctorContact   string       `db:"doctor_contact" json:"doctor_contact"`
	NextDoctorVisit *time.Time   `db:"next_doctor_visit" json:"next_doctor_visit,omitempty"`
	Medications     []Medication `db:"medications" json:"medications,omitempty"`
	CreatedAt       time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time    `db:"updated_at" json:"updated_at"`
}

// Medication is a reminder entry on the user's profile, stored as JSONB.
type Medication struct {
	Name  string `json:"name"`
	Time  string `json:"time"`
	Taken bool   `json:"taken"`
}

const (
	defaultAge            = 25
	defaultPregnancyMonth = 1
)
