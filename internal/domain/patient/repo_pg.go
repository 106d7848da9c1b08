package patient

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

const patientCols = `id, mri_code, serial_number, name, gender, email, phone,
	age, weight_kg, referral_hospital, referring_doctor, radiographer, radiologist,
	remarks, total_amount, receipt_number, payment_type, payment_status,
	approved_by, approved_at, recorded_by, scan_at, created_at, updated_at`

func (r *repoPG) scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.MRICode, &p.SerialNumber, &p.Name, &p.Gender, &p.Email, &p.Phone,
		&p.Age, &p.WeightKG, &p.ReferralHospital, &p.ReferringDoctor, &p.Radiographer, &p.Radiologist,
		&p.Remarks, &p.TotalAmount, &p.ReceiptNumber, &p.PaymentType, &p.PaymentStatus,
		&p.ApprovedBy, &p.ApprovedAt, &p.RecordedBy, &p.ScanAt, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patients (id, mri_code, serial_number, name, gender, email, phone,
			age, weight_kg, referral_hospital, referring_doctor, radiographer, radiologist,
			remarks, total_amount, receipt_number, payment_type, payment_status,
			approved_by, approved_at, recorded_by, scan_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)`,
		p.ID, p.MRICode, p.SerialNumber, p.Name, p.Gender, p.Email, p.Phone,
		p.Age, p.WeightKG, p.ReferralHospital, p.ReferringDoctor, p.Radiographer, p.Radiologist,
		p.Remarks, p.TotalAmount, p.ReceiptNumber, p.PaymentType, p.PaymentStatus,
		p.ApprovedBy, p.ApprovedAt, p.RecordedBy, p.ScanAt)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	row := r.conn(ctx).QueryRow(ctx,
		`SELECT `+patientCols+` FROM patients WHERE id = $1`, id)
	p, err := r.scanPatient(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.NotFound("patient %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patients SET name=$2, gender=$3, email=$4, phone=$5, age=$6, weight_kg=$7,
			referral_hospital=$8, referring_doctor=$9, radiographer=$10, radiologist=$11,
			remarks=$12, total_amount=$13, receipt_number=$14, payment_type=$15,
			scan_at=$16, updated_at=NOW()
		WHERE id=$1`,
		p.ID, p.Name, p.Gender, p.Email, p.Phone, p.Age, p.WeightKG,
		p.ReferralHospital, p.ReferringDoctor, p.Radiographer, p.Radiologist,
		p.Remarks, p.TotalAmount, p.ReceiptNumber, p.PaymentType,
		p.ScanAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("patient %s not found", p.ID)
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return errs.Conflict("patient %s has dependent records; delete them first", id)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("patient %s not found", id)
	}
	return nil
}

// List builds the filter as a parameterized predicate list. Caller input is
// never concatenated into SQL.
func (r *repoPG) List(ctx context.Context, f Filter) ([]*Patient, int, error) {
	where := " WHERE 1=1"
	args := []interface{}{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		switch f.SearchField {
		case "name":
			where += ` AND name ILIKE ` + arg(pattern)
		case "mri_code":
			where += ` AND mri_code ILIKE ` + arg(pattern)
		default:
			p := arg(pattern)
			where += ` AND (name ILIKE ` + p + ` OR mri_code ILIKE ` + p + `)`
		}
	}
	if f.Gender != "" {
		where += ` AND gender = ` + arg(f.Gender)
	}
	if f.RecordedBy != "" {
		where += ` AND recorded_by = ` + arg(f.RecordedBy)
	}
	if f.ScanFrom != nil {
		where += ` AND scan_at >= ` + arg(*f.ScanFrom)
	}
	if f.ScanTo != nil {
		where += ` AND scan_at <= ` + arg(*f.ScanTo)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patients`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + patientCols + ` FROM patients` + where + ` ORDER BY scan_at DESC`
	if f.Limit > 0 {
		query += ` LIMIT ` + arg(f.Limit) + ` OFFSET ` + arg(f.Offset)
	}

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var patients []*Patient
	for rows.Next() {
		p, err := r.scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		patients = append(patients, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if f.WithExaminations {
		for _, p := range patients {
			exams, err := r.ListExaminations(ctx, p.ID)
			if err != nil {
				return nil, 0, err
			}
			p.Examinations = exams
		}
	}

	return patients, total, nil
}

func (r *repoPG) SetPaymentStatus(ctx context.Context, id uuid.UUID, status string, approvedBy *string) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patients SET payment_status=$2,
			approved_by=$3,
			approved_at=CASE WHEN $3::uuid IS NULL THEN NULL ELSE NOW() END,
			updated_at=NOW()
		WHERE id=$1`,
		id, status, approvedBy)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("patient %s not found", id)
	}
	return nil
}

const examCols = `id, patient_id, name, amount, created_at, updated_at`

func (r *repoPG) ListExaminations(ctx context.Context, patientID uuid.UUID) ([]Examination, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+examCols+` FROM examinations WHERE patient_id = $1 ORDER BY created_at`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exams []Examination
	for rows.Next() {
		var e Examination
		if err := rows.Scan(&e.ID, &e.PatientID, &e.Name, &e.Amount, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		exams = append(exams, e)
	}
	return exams, rows.Err()
}

func (r *repoPG) CreateExamination(ctx context.Context, e *Examination) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx,
		`INSERT INTO examinations (id, patient_id, name, amount) VALUES ($1,$2,$3,$4)`,
		e.ID, e.PatientID, e.Name, e.Amount)
	return err
}

func (r *repoPG) UpdateExamination(ctx context.Context, e *Examination) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE examinations SET name=$2, amount=$3, updated_at=NOW() WHERE id=$1`,
		e.ID, e.Name, e.Amount)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("examination %s not found", e.ID)
	}
	return nil
}

func (r *repoPG) DeleteExamination(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM examinations WHERE id = $1`, id)
	return err
}
