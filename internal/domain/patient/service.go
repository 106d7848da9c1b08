package patient

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/g2g/mri/internal/platform/db"
	"github.com/g2g/mri/internal/platform/errs"
	"github.com/g2g/mri/pkg/money"
)

// maxCodeAttempts bounds the identifier regeneration loop. Exhaustion means
// the code space is pathologically full and the caller gets a conflict.
const maxCodeAttempts = 5

// TxFunc runs fn inside a storage transaction.
type TxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

// ExamInput is one examination line item as submitted by the client. Amount
// arrives as text and is run through the currency sanitizer.
type ExamInput struct {
	ID     *uuid.UUID `json:"id,omitempty"`
	Name   string     `json:"name"`
	Amount string     `json:"amount"`
}

type CreateInput struct {
	Name             string      `json:"name"`
	Gender           string      `json:"gender"`
	Email            string      `json:"email"`
	Phone            string      `json:"phone"`
	Age              int         `json:"age"`
	WeightKG         float64     `json:"weightKg"`
	ReferralHospital string      `json:"referralHospital"`
	ReferringDoctor  string      `json:"referringDoctor"`
	Radiographer     string      `json:"radiographer"`
	Radiologist      string      `json:"radiologist"`
	Remarks          string      `json:"remarks"`
	PaymentType      string      `json:"paymentType"`
	ScanAt           *time.Time  `json:"scanAt"`
	Examinations     []ExamInput `json:"examinations"`
}

// UpdateInput applies only the fields present in the request. A nil pointer
// means "not sent"; a pointer to a zero value clears the field.
type UpdateInput struct {
	Name             *string      `json:"name"`
	Gender           *string      `json:"gender"`
	Email            *string      `json:"email"`
	Phone            *string      `json:"phone"`
	Age              *int         `json:"age"`
	WeightKG         *float64     `json:"weightKg"`
	ReferralHospital *string      `json:"referralHospital"`
	ReferringDoctor  *string      `json:"referringDoctor"`
	Radiographer     *string      `json:"radiographer"`
	Radiologist      *string      `json:"radiologist"`
	Remarks          *string      `json:"remarks"`
	PaymentType      *string      `json:"paymentType"`
	ScanAt           *time.Time   `json:"scanAt"`
	Examinations     *[]ExamInput `json:"examinations"`
}

type Service struct {
	repo   Repository
	tx     TxFunc
	logger zerolog.Logger
}

func NewService(repo Repository, tx TxFunc, logger zerolog.Logger) *Service {
	return &Service{repo: repo, tx: tx, logger: logger}
}

func sanitizeExams(inputs []ExamInput) ([]Examination, float64, error) {
	exams := make([]Examination, 0, len(inputs))
	var total float64
	for i, in := range inputs {
		if strings.TrimSpace(in.Name) == "" {
			return nil, 0, errs.Validation("examination %d: name is required", i+1)
		}
		amount := money.Sanitize(in.Amount)
		if amount <= 0 {
			return nil, 0, errs.Validation("examination %q: amount must be positive", in.Name)
		}
		e := Examination{Name: strings.TrimSpace(in.Name), Amount: amount}
		if in.ID != nil {
			e.ID = *in.ID
		}
		exams = append(exams, e)
		total += amount
	}
	return exams, money.Round(total), nil
}

// Create validates the intake, generates unique identifiers and persists the
// patient with its examinations atomically. A unique-index collision on the
// generated codes regenerates and retries up to maxCodeAttempts.
func (s *Service) Create(ctx context.Context, recordedBy string, in CreateInput) (*Patient, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errs.Validation("patient name is required")
	}
	if len(in.Examinations) == 0 {
		return nil, errs.Validation("at least one examination is required")
	}
	if in.Gender != "" && !ValidGenders[in.Gender] {
		return nil, errs.Validation("invalid gender %q", in.Gender)
	}
	if in.PaymentType != "" && !ValidPaymentTypes[in.PaymentType] {
		return nil, errs.Validation("invalid payment type %q", in.PaymentType)
	}
	if in.Age < 0 {
		return nil, errs.Validation("age must be positive")
	}

	exams, total, err := sanitizeExams(in.Examinations)
	if err != nil {
		return nil, err
	}

	scanAt := time.Now()
	if in.ScanAt != nil {
		scanAt = *in.ScanAt
	}

	receipt := NewReceiptNumber()
	var created *Patient
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		p := &Patient{
			MRICode:          NewMRICode(),
			SerialNumber:     NewSerialNumber(),
			Name:             strings.TrimSpace(in.Name),
			Gender:           in.Gender,
			Email:            in.Email,
			Phone:            in.Phone,
			Age:              in.Age,
			WeightKG:         in.WeightKG,
			ReferralHospital: in.ReferralHospital,
			ReferringDoctor:  in.ReferringDoctor,
			Radiographer:     in.Radiographer,
			Radiologist:      in.Radiologist,
			Remarks:          in.Remarks,
			TotalAmount:      total,
			ReceiptNumber:    receipt,
			PaymentType:      in.PaymentType,
			PaymentStatus:    PaymentNotPaid,
			RecordedBy:       recordedBy,
			ScanAt:           scanAt,
		}

		err = s.tx(ctx, func(ctx context.Context) error {
			if err := s.repo.Create(ctx, p); err != nil {
				return err
			}
			for i := range exams {
				exams[i].ID = uuid.Nil
				exams[i].PatientID = p.ID
				if err := s.repo.CreateExamination(ctx, &exams[i]); err != nil {
					return err
				}
			}
			return nil
		})
		if err == nil {
			created = p
			break
		}
		if !db.IsUniqueViolation(err) {
			return nil, err
		}
		s.logger.Warn().Int("attempt", attempt).Msg("identifier collision, regenerating")
	}
	if created == nil {
		return nil, errs.Conflict("could not generate unique patient identifiers after %d attempts", maxCodeAttempts)
	}

	created.Examinations = exams
	return created, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	exams, err := s.repo.ListExaminations(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Examinations = exams
	return p, nil
}

func (s *Service) List(ctx context.Context, f Filter) ([]*Patient, int, error) {
	return s.repo.List(ctx, f)
}

// Update applies the supplied fields and, when an examinations array is
// present, replaces the examination set by id diff inside one transaction.
// The financial total is recomputed from the final set.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*Patient, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, errs.Validation("patient name cannot be blank")
	}
	if in.Gender != nil && *in.Gender != "" && !ValidGenders[*in.Gender] {
		return nil, errs.Validation("invalid gender %q", *in.Gender)
	}
	if in.PaymentType != nil && *in.PaymentType != "" && !ValidPaymentTypes[*in.PaymentType] {
		return nil, errs.Validation("invalid payment type %q", *in.PaymentType)
	}

	var newExams []Examination
	var newTotal float64
	if in.Examinations != nil {
		var err error
		newExams, newTotal, err = sanitizeExams(*in.Examinations)
		if err != nil {
			return nil, err
		}
	}

	var updated *Patient
	err := s.tx(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if in.Name != nil {
			p.Name = strings.TrimSpace(*in.Name)
		}
		if in.Gender != nil {
			p.Gender = *in.Gender
		}
		if in.Email != nil {
			p.Email = *in.Email
		}
		if in.Phone != nil {
			p.Phone = *in.Phone
		}
		if in.Age != nil {
			p.Age = *in.Age
		}
		if in.WeightKG != nil {
			p.WeightKG = *in.WeightKG
		}
		if in.ReferralHospital != nil {
			p.ReferralHospital = *in.ReferralHospital
		}
		if in.ReferringDoctor != nil {
			p.ReferringDoctor = *in.ReferringDoctor
		}
		if in.Radiographer != nil {
			p.Radiographer = *in.Radiographer
		}
		if in.Radiologist != nil {
			p.Radiologist = *in.Radiologist
		}
		if in.Remarks != nil {
			p.Remarks = *in.Remarks
		}
		if in.PaymentType != nil {
			p.PaymentType = *in.PaymentType
		}
		if in.ScanAt != nil {
			p.ScanAt = *in.ScanAt
		}

		if in.Examinations != nil {
			existing, err := s.repo.ListExaminations(ctx, id)
			if err != nil {
				return err
			}
			current := make(map[uuid.UUID]Examination, len(existing))
			for _, e := range existing {
				current[e.ID] = e
			}

			kept := make(map[uuid.UUID]bool, len(newExams))
			for i := range newExams {
				e := &newExams[i]
				e.PatientID = id
				if e.ID != uuid.Nil {
					if _, ok := current[e.ID]; !ok {
						return errs.Validation("examination %s does not belong to patient %s", e.ID, id)
					}
					if err := s.repo.UpdateExamination(ctx, e); err != nil {
						return err
					}
					kept[e.ID] = true
					continue
				}
				if err := s.repo.CreateExamination(ctx, e); err != nil {
					return err
				}
			}
			for _, e := range existing {
				if !kept[e.ID] {
					if err := s.repo.DeleteExamination(ctx, e.ID); err != nil {
						return err
					}
				}
			}
			p.TotalAmount = newTotal
		}

		if err := s.repo.Update(ctx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	exams, err := s.repo.ListExaminations(ctx, id)
	if err != nil {
		return nil, err
	}
	updated.Examinations = exams
	return updated, nil
}

// Delete removes the patient row. Dependent examinations or result files
// block deletion; the conflict is surfaced, never cascaded.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// SetPaymentStatus moves the payment state. Entering Approved stamps the
// approver, any other target clears the stamp. The write is one statement.
func (s *Service) SetPaymentStatus(ctx context.Context, id uuid.UUID, status, callerID string) error {
	if !ValidPaymentStatuses[status] {
		return errs.Validation("invalid payment status %q", status)
	}
	var approvedBy *string
	if status == PaymentApproved {
		approvedBy = &callerID
	}
	return s.repo.SetPaymentStatus(ctx, id, status, approvedBy)
}
