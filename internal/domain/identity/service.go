package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/matricare/matricare/internal/platform/auth"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrMobileRegistered   = errors.New("mobile number already registered")
	ErrInvalidCredentials = errors.New("invalid mobile or password")
)

type Service struct {
	repo      Repository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewService(repo Repository, jwtSecret []byte, tokenTTL time.Duration) *Service {
	return &Service{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// RegisterInput carries the sign-up fields. Age and pregnancy month get
// client-friendly defaults when omitted.
type RegisterInput struct {
	Name           string `json:"name"`
	Age            int    `json:"age"`
	Mobile         string `json:"mobile"`
	Password       string `json:"password"`
	PregnancyMonth int    `json:"pregnancy_month"`
	FamilyContact  string `json:"family_contact"`
	DoctorContact  string `json:"doctor_contact"`
}

// Register creates a new account and returns the user with a signed token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, string, error) {
	if in.Name == "" || in.Mobile == "" || in.Password == "" {
		return nil, "", fmt.Errorf("name, mobile and password are required")
	}
	if existing, err := s.repo.GetByMobile(ctx, in.Mobile); err == nil && existing != nil {
		return nil, "", ErrMobileRegistered
	} else if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		Name:           in.Name,
		Age:            in.Age,
		Mobile:         in.Mobile,
		PasswordHash:   string(hash),
		PregnancyMonth: in.PregnancyMonth,
		FamilyContact:  in.FamilyContact,
		DoctorContact:  in.DoctorContact,
	}
	if u.Age == 0 {
		u.Age = defaultAge
	}
	if u.PregnancyMonth == 0 {
		u.PregnancyMonth = defaultPregnancyMonth
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := auth.IssueToken(s.jwtSecret, u.ID, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login verifies credentials and returns the user with a fresh token.
// Unknown mobile and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, mobile, password string) (*User, string, error) {
	if mobile == "" || password == "" {
		return nil, "", fmt.Errorf("mobile and password are required")
	}
	u, err := s.repo.GetByMobile(ctx, mobile)
	if errors.Is(err, ErrUserNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := auth.IssueToken(s.jwtSecret, u.ID, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// ProfileUpdate holds the mutable profile fields. Mobile and password are
// deliberately absent: they cannot be changed through the profile path.
type ProfileUpdate struct {
	Name            *string      `json:"name"`
	Age             *int         `json:"age"`
	PregnancyMonth  *int         `json:"pregnancy_month"`
	FamilyContact   *string      `json:"family_contact"`
	DoctorContact   *string      `json:"doctor_contact"`
	NextDoctorVisit *time.Time   `json:"next_doctor_visit"`
	Medications     []Medication `json:"medications"`
}

// UpdateProfile applies the non-nil fields of the update to the user.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, upd ProfileUpdate) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Age != nil {
		u.Age = *upd.Age
	}
	if upd.PregnancyMonth != nil {
		u.PregnancyMonth = *upd.PregnancyMonth
	}
	if upd.FamilyContact != nil {
		u.FamilyContact = *upd.FamilyContact
	}
	if upd.DoctorContact != nil {
		u.DoctorContact = *upd.DoctorContact
	}
	if upd.NextDoctorVisit != nil {
		u.NextDoctorVisit = upd.NextDoctorVisit
	}
	if upd.Medications != nil {
		u.Medications = upd.Medications
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// PregnancyMonth returns the user's current pregnancy month.
func (s *Service) PregnancyMonth(ctx context.Context, id uuid.UUID) (int, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return u.PregnancyMonth, nil
}

// EmergencyContacts returns the user's configured alert recipients,
// skipping empty entries.
func (s *Service) EmergencyContacts(ctx context.Context, id uuid.UUID) ([]string, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var contacts []string
	if u.DoctorContact != "" {
		contacts = append(contacts, u.DoctorContact)
	}
	if u.FamilyContact != "" {
		contacts = append(contacts, u.FamilyContact)
	}
	return contacts, nil
}
