package dashboard

import (
	"context"

	"github.com/g2g/mri/internal/domain/patient"
)

// Repository exposes the independent aggregate reads the summary is built
// from. Each method is a single query so the service can fan them out.
type Repository interface {
	PatientCount(ctx context.Context) (int, error)
	ResultFileCount(ctx context.Context) (int, error)
	OpenQueryCount(ctx context.Context) (int, error)
	// ApprovedRevenue sums total_amount over patients with approved payment.
	ApprovedRevenue(ctx context.Context) (float64, error)
	PaymentStatusBreakdown(ctx context.Context) (map[string]int, error)
	RecentPatients(ctx context.Context, n int) ([]*patient.Patient, error)
}
