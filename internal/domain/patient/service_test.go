package patient

import (
	"context"
	"regexp"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/g2g/mri/internal/platform/errs"
)

type mockRepo struct {
	patients map[uuid.UUID]*Patient
	exams    map[uuid.UUID]*Examination

	// failCreates makes the next n Create calls fail with a unique violation.
	failCreates int
	createCalls int
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		patients: make(map[uuid.UUID]*Patient),
		exams:    make(map[uuid.UUID]*Examination),
	}
}

func (m *mockRepo) Create(ctx context.Context, p *Patient) error {
	m.createCalls++
	if m.failCreates > 0 {
		m.failCreates--
		return &pgconn.PgError{Code: "23505", ConstraintName: "patients_mri_code_key"}
	}
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	m.patients[p.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, errs.NotFound("patient %s not found", id)
	}
	cp := *p
	return &cp, nil
}

func (m *mockRepo) Update(ctx context.Context, p *Patient) error {
	if _, ok := m.patients[p.ID]; !ok {
		return errs.NotFound("patient %s not found", p.ID)
	}
	cp := *p
	cp.UpdatedAt = time.Now()
	m.patients[p.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.patients[id]; !ok {
		return errs.NotFound("patient %s not found", id)
	}
	for _, e := range m.exams {
		if e.PatientID == id {
			return errs.Conflict("patient %s has dependent records; delete them first", id)
		}
	}
	delete(m.patients, id)
	return nil
}

func (m *mockRepo) List(ctx context.Context, f Filter) ([]*Patient, int, error) {
	var out []*Patient
	for _, p := range m.patients {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScanAt.After(out[j].ScanAt) })
	return out, len(out), nil
}

func (m *mockRepo) SetPaymentStatus(ctx context.Context, id uuid.UUID, status string, approvedBy *string) error {
	p, ok := m.patients[id]
	if !ok {
		return errs.NotFound("patient %s not found", id)
	}
	p.PaymentStatus = status
	p.ApprovedBy = approvedBy
	if approvedBy != nil {
		now := time.Now()
		p.ApprovedAt = &now
	} else {
		p.ApprovedAt = nil
	}
	return nil
}

func (m *mockRepo) ListExaminations(ctx context.Context, patientID uuid.UUID) ([]Examination, error) {
	var out []Examination
	for _, e := range m.exams {
		if e.PatientID == patientID {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *mockRepo) CreateExamination(ctx context.Context, e *Examination) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CreatedAt = time.Now()
	cp := *e
	m.exams[e.ID] = &cp
	return nil
}

func (m *mockRepo) UpdateExamination(ctx context.Context, e *Examination) error {
	old, ok := m.exams[e.ID]
	if !ok {
		return errs.NotFound("examination %s not found", e.ID)
	}
	e.CreatedAt = old.CreatedAt
	cp := *e
	m.exams[e.ID] = &cp
	return nil
}

func (m *mockRepo) DeleteExamination(ctx context.Context, id uuid.UUID) error {
	delete(m.exams, id)
	return nil
}

func passTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(repo Repository) *Service {
	return NewService(repo, passTx, zerolog.Nop())
}

var mriCodeRe = regexp.MustCompile(`^G2G-MRI-\d{4}$`)

func TestCreateComputesTotalAndCodes(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	p, err := svc.Create(context.Background(), "staff-1", CreateInput{
		Name:   "Amina Yusuf",
		Gender: "Female",
		Examinations: []ExamInput{
			{Name: "MRI Brain", Amount: "50,000"},
			{Name: "Contrast", Amount: "10,000.50"},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.TotalAmount != 60000.50 {
		t.Errorf("expected total 60000.50, got %v", p.TotalAmount)
	}
	if len(p.Examinations) != 2 {
		t.Errorf("expected 2 examinations, got %d", len(p.Examinations))
	}
	if !mriCodeRe.MatchString(p.MRICode) {
		t.Errorf("bad mri code %s", p.MRICode)
	}
	if p.PaymentStatus != PaymentNotPaid {
		t.Errorf("expected initial payment status %q, got %q", PaymentNotPaid, p.PaymentStatus)
	}
	if p.RecordedBy != "staff-1" {
		t.Errorf("expected recorded_by staff-1, got %s", p.RecordedBy)
	}
	exams, _ := repo.ListExaminations(context.Background(), p.ID)
	if len(exams) != 2 {
		t.Errorf("expected 2 persisted examination rows, got %d", len(exams))
	}
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(newMockRepo())
	ctx := context.Background()

	cases := []struct {
		name string
		in   CreateInput
	}{
		{"blank name", CreateInput{Examinations: []ExamInput{{Name: "X", Amount: "10"}}}},
		{"no examinations", CreateInput{Name: "A"}},
		{"zero amount", CreateInput{Name: "A", Examinations: []ExamInput{{Name: "X", Amount: "0"}}}},
		{"unparsable amount", CreateInput{Name: "A", Examinations: []ExamInput{{Name: "X", Amount: "abc"}}}},
		{"blank exam name", CreateInput{Name: "A", Examinations: []ExamInput{{Name: " ", Amount: "10"}}}},
		{"bad gender", CreateInput{Name: "A", Gender: "Unknown", Examinations: []ExamInput{{Name: "X", Amount: "10"}}}},
		{"bad payment type", CreateInput{Name: "A", PaymentType: "Cheque", Examinations: []ExamInput{{Name: "X", Amount: "10"}}}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(ctx, "s", tc.in); !errs.Is(err, errs.KindValidation) {
			t.Errorf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestCreateRetriesOnCollision(t *testing.T) {
	repo := newMockRepo()
	repo.failCreates = 2
	svc := newTestService(repo)

	p, err := svc.Create(context.Background(), "s", CreateInput{
		Name:         "B",
		Examinations: []ExamInput{{Name: "X", Amount: "10"}},
	})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if repo.createCalls != 3 {
		t.Errorf("expected 3 create attempts, got %d", repo.createCalls)
	}
	if p.ID == uuid.Nil {
		t.Error("expected patient persisted")
	}
}

func TestCreateGivesUpAfterBoundedRetries(t *testing.T) {
	repo := newMockRepo()
	repo.failCreates = 100
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), "s", CreateInput{
		Name:         "B",
		Examinations: []ExamInput{{Name: "X", Amount: "10"}},
	})
	if !errs.Is(err, errs.KindConflict) {
		t.Fatalf("expected conflict after exhausted retries, got %v", err)
	}
	if repo.createCalls != maxCodeAttempts {
		t.Errorf("expected %d attempts, got %d", maxCodeAttempts, repo.createCalls)
	}
}

func TestUpdateReplacesExaminationSet(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	p, err := svc.Create(ctx, "s", CreateInput{
		Name: "C",
		Examinations: []ExamInput{
			{Name: "MRI Brain", Amount: "50,000"},
			{Name: "Contrast", Amount: "10,000.50"},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	firstID := p.Examinations[0].ID
	newSet := []ExamInput{{ID: &firstID, Name: "MRI Brain", Amount: "55000"}}
	updated, err := svc.Update(ctx, p.ID, UpdateInput{Examinations: &newSet})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.TotalAmount != 55000.00 {
		t.Errorf("expected total 55000.00, got %v", updated.TotalAmount)
	}
	if len(updated.Examinations) != 1 {
		t.Fatalf("expected 1 remaining examination, got %d", len(updated.Examinations))
	}
	if updated.Examinations[0].ID != firstID {
		t.Error("expected surviving examination to keep its id")
	}
	if updated.Examinations[0].Amount != 55000.00 {
		t.Errorf("expected amount 55000.00, got %v", updated.Examinations[0].Amount)
	}
}

func TestUpdateLeavesOmittedFieldsUntouched(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	p, _ := svc.Create(ctx, "s", CreateInput{
		Name:    "D",
		Remarks: "first visit",
		Examinations: []ExamInput{
			{Name: "X", Amount: "100"},
		},
	})

	phone := "0801234"
	updated, err := svc.Update(ctx, p.ID, UpdateInput{Phone: &phone})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Remarks != "first visit" {
		t.Errorf("omitted field changed: %q", updated.Remarks)
	}
	if updated.Phone != "0801234" {
		t.Errorf("sent field not applied: %q", updated.Phone)
	}
	if updated.TotalAmount != 100 {
		t.Errorf("total changed without examination edit: %v", updated.TotalAmount)
	}

	empty := ""
	cleared, err := svc.Update(ctx, p.ID, UpdateInput{Remarks: &empty})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if cleared.Remarks != "" {
		t.Error("expected remarks cleared by explicit empty string")
	}
}

func TestUpdateRejectsForeignExamination(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	p, _ := svc.Create(ctx, "s", CreateInput{
		Name:         "E",
		Examinations: []ExamInput{{Name: "X", Amount: "100"}},
	})

	foreign := uuid.New()
	set := []ExamInput{{ID: &foreign, Name: "Y", Amount: "10"}}
	if _, err := svc.Update(ctx, p.ID, UpdateInput{Examinations: &set}); !errs.Is(err, errs.KindValidation) {
		t.Errorf("expected validation error for foreign examination id, got %v", err)
	}
}

func TestUpdateMissingPatient(t *testing.T) {
	svc := newTestService(newMockRepo())
	name := "Z"
	if _, err := svc.Update(context.Background(), uuid.New(), UpdateInput{Name: &name}); !errs.Is(err, errs.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestSetPaymentStatusStampsAndClears(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	p, _ := svc.Create(ctx, "s", CreateInput{
		Name:         "F",
		Examinations: []ExamInput{{Name: "X", Amount: "100"}},
	})

	if err := svc.SetPaymentStatus(ctx, p.ID, PaymentApproved, "approver-1"); err != nil {
		t.Fatalf("approve: %v", err)
	}
	got, _ := svc.Get(ctx, p.ID)
	if got.PaymentStatus != PaymentApproved || got.ApprovedBy == nil || *got.ApprovedBy != "approver-1" || got.ApprovedAt == nil {
		t.Errorf("approve did not stamp approver: %+v", got)
	}

	if err := svc.SetPaymentStatus(ctx, p.ID, PaymentPending, "approver-1"); err != nil {
		t.Fatalf("pending: %v", err)
	}
	got, _ = svc.Get(ctx, p.ID)
	if got.PaymentStatus != PaymentPending || got.ApprovedBy != nil || got.ApprovedAt != nil {
		t.Errorf("leaving Approved did not clear approver stamp: %+v", got)
	}
}

func TestSetPaymentStatusRejectsUnknownValue(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	p, _ := svc.Create(context.Background(), "s", CreateInput{
		Name:         "G",
		Examinations: []ExamInput{{Name: "X", Amount: "100"}},
	})
	if err := svc.SetPaymentStatus(context.Background(), p.ID, "Refunded", "s"); !errs.Is(err, errs.KindValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestDeleteBlockedByDependents(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	p, _ := svc.Create(ctx, "s", CreateInput{
		Name:         "H",
		Examinations: []ExamInput{{Name: "X", Amount: "100"}},
	})

	if err := svc.Delete(ctx, p.ID); !errs.Is(err, errs.KindConflict) {
		t.Errorf("expected conflict while dependents exist, got %v", err)
	}
	if _, err := svc.Get(ctx, p.ID); err != nil {
		t.Error("patient must survive a blocked delete")
	}

	for _, e := range p.Examinations {
		repo.DeleteExamination(ctx, e.ID)
	}
	if err := svc.Delete(ctx, p.ID); err != nil {
		t.Errorf("expected delete to succeed once dependents are gone, got %v", err)
	}
}
