package result

import (
	"context"
	"errors"

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

const fileCols = `id, patient_id, original_filename, storage_key, mime_type, size_kb,
	status, uploaded_by, remarks, recipient_name, recipient_phone,
	recipient_relationship, recipient_email, issued_by, issued_at, created_at, updated_at`

func (r *repoPG) scanFile(row pgx.Row) (*File, error) {
	var f File
	err := row.Scan(&f.ID, &f.PatientID, &f.OriginalFilename, &f.StorageKey, &f.MimeType, &f.SizeKB,
		&f.Status, &f.UploadedBy, &f.Remarks, &f.RecipientName, &f.RecipientPhone,
		&f.RecipientRel, &f.RecipientEmail, &f.IssuedBy, &f.IssuedAt, &f.CreatedAt, &f.UpdatedAt)
	return &f, err
}

func (r *repoPG) Create(ctx context.Context, f *File) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO result_files (id, patient_id, original_filename, storage_key, mime_type,
			size_kb, status, uploaded_by, remarks)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		f.ID, f.PatientID, f.OriginalFilename, f.StorageKey, f.MimeType,
		f.SizeKB, f.Status, f.UploadedBy, f.Remarks)
	if db.IsForeignKeyViolation(err) {
		return errs.NotFound("patient %s not found", f.PatientID)
	}
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*File, error) {
	row := r.conn(ctx).QueryRow(ctx,
		`SELECT `+fileCols+` FROM result_files WHERE id = $1`, id)
	f, err := r.scanFile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.NotFound("result file %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*File, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+fileCols+` FROM result_files WHERE patient_id = $1 ORDER BY created_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []*File
	for rows.Next() {
		f, err := r.scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, f *File) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE result_files SET status=$2, remarks=$3, recipient_name=$4, recipient_phone=$5,
			recipient_relationship=$6, recipient_email=$7, issued_by=$8, issued_at=$9,
			updated_at=NOW()
		WHERE id=$1`,
		f.ID, f.Status, f.Remarks, f.RecipientName, f.RecipientPhone,
		f.RecipientRel, f.RecipientEmail, f.IssuedBy, f.IssuedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("result file %s not found", f.ID)
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM result_files WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("result file %s not found", id)
	}
	return nil
}
