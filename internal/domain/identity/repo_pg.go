package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const userCols = `id, name, age, mobile, password_hash, pregnancy_month,
	family_contact, doctor_contact, next_doctor_visit, medications, created_at, updated_at`

func (r *repoPG) scanUser(row pgx.Row) (*User, error) {
	var u User
	var meds []byte
	err := row.Scan(&u.ID, &u.Name, &u.Age, &u.Mobile, &u.PasswordHash, &u.PregnancyMonth,
		&u.FamilyContact, &u.DoctorContact, &u.NextDoctorVisit, &meds, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(meds) > 0 {
		if err := json.Unmarshal(meds, &u.Medications); err != nil {
			return nil, fmt.Errorf("decode medications: %w", err)
		}
	}
	return &u, nil
}

func (r *repoPG) Create(ctx context.Context, u *User) error {
	u.ID = uuid.New()
	meds, err := json.Marshal(u.Medications)
	if err != nil {
		return fmt.Errorf("encode medications: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO app_user (id, name, age, mobile, password_hash, pregnancy_month,
			family_contact, doctor_contact, next_doctor_visit, medications)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		u.ID, u.Name, u.Age, u.Mobile, u.PasswordHash, u.PregnancyMonth,
		u.FamilyContact, u.DoctorContact, u.NextDoctorVisit, meds)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := r.scanUser(r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM app_user WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return u, err
}

func (r *repoPG) GetByMobile(ctx context.Context, mobile string) (*User, error) {
	u, err := r.scanUser(r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM app_user WHERE mobile = $1`, mobile))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return u, err
}

func (r *repoPG) Update(ctx context.Context, u *User) error {
	meds, err := json.Marshal(u.Medications)
	if err != nil {
		return fmt.Errorf("encode medications: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		UPDATE app_user SET name=$2, age=$3, pregnancy_month=$4, family_contact=$5,
			doctor_contact=$6, next_doctor_visit=$7, medications=$8, updated_at=NOW()
		WHERE id = $1`,
		u.ID, u.Name, u.Age, u.PregnancyMonth, u.FamilyContact,
		u.DoctorContact, u.NextDoctorVisit, meds)
	return err
}
