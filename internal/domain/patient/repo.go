package patient

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists patients and their examinations. Implementations join
// an open transaction carried in the context.
type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f Filter) ([]*Patient, int, error)

	// SetPaymentStatus updates status and approver stamp in one statement.
	SetPaymentStatus(ctx context.Context, id uuid.UUID, status string, approvedBy *string) error

	ListExaminations(ctx context.Context, patientID uuid.UUID) ([]Examination, error)
	CreateExamination(ctx context.Context, e *Examination) error
	UpdateExamination(ctx context.Context, e *Examination) error
	DeleteExamination(ctx context.Context, id uuid.UUID) error
}
