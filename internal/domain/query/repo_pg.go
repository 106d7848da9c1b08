package query

import (
	"context"
	"errors"
	"fmt"

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

const queryCols = `id, raised_by, subject, body, status, resolved_by, resolved_at, created_at, updated_at`

func scanQuery(row pgx.Row) (*Query, error) {
	var q Query
	err := row.Scan(&q.ID, &q.RaisedBy, &q.Subject, &q.Body, &q.Status,
		&q.ResolvedBy, &q.ResolvedAt, &q.CreatedAt, &q.UpdatedAt)
	return &q, err
}

func (r *repoPG) Create(ctx context.Context, q *Query) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO queries (id, raised_by, subject, body, status)
		VALUES ($1,$2,$3,$4,$5)`,
		q.ID, q.RaisedBy, q.Subject, q.Body, q.Status)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Query, error) {
	row := r.conn(ctx).QueryRow(ctx,
		`SELECT `+queryCols+` FROM queries WHERE id = $1`, id)
	q, err := scanQuery(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.NotFound("query %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (r *repoPG) List(ctx context.Context, status string, limit, offset int) ([]*Query, int, error) {
	where := ``
	args := []interface{}{}
	if status != "" {
		where = ` WHERE status = $1`
		args = append(args, status)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM queries`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	sql := fmt.Sprintf(`SELECT %s FROM queries%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		queryCols, where, len(args)-1, len(args))
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var queries []*Query
	for rows.Next() {
		q, err := scanQuery(rows)
		if err != nil {
			return nil, 0, err
		}
		queries = append(queries, q)
	}
	return queries, total, rows.Err()
}

func (r *repoPG) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE queries SET status=$2, updated_at=NOW() WHERE id=$1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("query %s not found", id)
	}
	return nil
}

func (r *repoPG) Resolve(ctx context.Context, id uuid.UUID, resolvedBy string) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE queries SET status=$2, resolved_by=$3, resolved_at=NOW(), updated_at=NOW()
		WHERE id=$1`,
		id, StatusResolved, resolvedBy)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("query %s not found", id)
	}
	return nil
}
