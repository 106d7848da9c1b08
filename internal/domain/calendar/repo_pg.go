package calendar

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/g2g/mri/internal/platform/db"
	"github.com/g2g/mri/internal/platform/errs"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const eventCols = `id, title, starts_at, ends_at, notes, created_by, created_at, updated_at`

func scanEvent(row pgx.Row) (*Event, error) {
	var e Event
	err := row.Scan(&e.ID, &e.Title, &e.StartsAt, &e.EndsAt, &e.Notes, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt)
	return &e, err
}

func (r *repoPG) Create(ctx context.Context, e *Event) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO calendar_events (id, title, starts_at, ends_at, notes, created_by)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		e.ID, e.Title, e.StartsAt, e.EndsAt, e.Notes, e.CreatedBy)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	row := r.conn(ctx).QueryRow(ctx,
		`SELECT `+eventCols+` FROM calendar_events WHERE id = $1`, id)
	e, err := scanEvent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.NotFound("calendar event %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *repoPG) ListRange(ctx context.Context, from, to time.Time) ([]*Event, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+eventCols+` FROM calendar_events
		WHERE starts_at <= $2 AND ends_at >= $1
		ORDER BY starts_at`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, e *Event) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE calendar_events SET title=$2, starts_at=$3, ends_at=$4, notes=$5, updated_at=NOW()
		WHERE id=$1`,
		e.ID, e.Title, e.StartsAt, e.EndsAt, e.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("calendar event %s not found", e.ID)
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM calendar_events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("calendar event %s not found", id)
	}
	return nil
}
