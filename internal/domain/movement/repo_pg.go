package movement

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const recordCols = `id, user_id, day, has_movement, count, created_at, updated_at`

func (r *repoPG) scanRecord(row pgx.Row) (*Record, error) {
	var rec Record
	err := row.Scan(&rec.ID, &rec.UserID, &rec.Day, &rec.HasMovement, &rec.Count, &rec.CreatedAt, &rec.UpdatedAt)
	return &rec, err
}

// Upsert relies on the (user_id, day) unique constraint so concurrent
// submissions for the same day converge on one row; the last write wins.
func (r *repoPG) Upsert(ctx context.Context, userID uuid.UUID, day time.Time, hasMovement bool, count *int) (*Record, error) {
	explicit := count != nil
	var explicitCount int
	if explicit {
		explicitCount = *count
	}
	return r.scanRecord(r.pool.QueryRow(ctx, `
		INSERT INTO movement_record (id, user_id, day, has_movement, count)
		VALUES ($1, $2, $3, $4,
			CASE WHEN $5 THEN $6 WHEN $4 THEN 1 ELSE 0 END)
		ON CONFLICT (user_id, day) DO UPDATE SET
			has_movement = EXCLUDED.has_movement,
			count = CASE
				WHEN $5 THEN $6
				WHEN EXCLUDED.has_movement THEN movement_record.count + 1
				ELSE movement_record.count
			END,
			updated_at = NOW()
		RETURNING `+recordCols,
		uuid.New(), userID, day, hasMovement, explicit, explicitCount))
}

func (r *repoPG) GetByDay(ctx context.Context, userID uuid.UUID, day time.Time) (*Record, error) {
	rec, err := r.scanRecord(r.pool.QueryRow(ctx, `
		SELECT `+recordCols+` FROM movement_record
		WHERE user_id = $1 AND day = $2`, userID, day))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *repoPG) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Record, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM movement_record WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+recordCols+` FROM movement_record
		WHERE user_id = $1 ORDER BY day DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Record
	for rows.Next() {
		rec, err := r.scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rec)
	}
	return items, total, rows.Err()
}
