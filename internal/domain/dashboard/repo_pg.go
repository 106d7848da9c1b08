package dashboard

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/g2g/mri/internal/domain/patient"
	"github.com/g2g/mri/internal/domain/query"
)

type repoPG struct {
	pool     *pgxpool.Pool
	patients patient.Repository
}

func NewRepoPG(pool *pgxpool.Pool, patients patient.Repository) Repository {
	return &repoPG{pool: pool, patients: patients}
}

func (r *repoPG) PatientCount(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&n)
	return n, err
}

func (r *repoPG) ResultFileCount(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM result_files`).Scan(&n)
	return n, err
}

func (r *repoPG) OpenQueryCount(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM queries WHERE status = $1`, query.StatusOpen).Scan(&n)
	return n, err
}

func (r *repoPG) ApprovedRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_amount), 0) FROM patients WHERE payment_status = $1`,
		patient.PaymentApproved).Scan(&total)
	return total, err
}

func (r *repoPG) PaymentStatusBreakdown(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT payment_status, COUNT(*) FROM patients GROUP BY payment_status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	breakdown := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		breakdown[status] = n
	}
	return breakdown, rows.Err()
}

func (r *repoPG) RecentPatients(ctx context.Context, n int) ([]*patient.Patient, error) {
	patients, _, err := r.patients.List(ctx, patient.Filter{Limit: n})
	return patients, err
}
