package result

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, f *File) error
	GetByID(ctx context.Context, id uuid.UUID) (*File, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*File, error)
	Update(ctx context.Context, f *File) error
	Delete(ctx context.Context, id uuid.UUID) error
}
