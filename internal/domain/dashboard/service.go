package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/g2g/mri/internal/domain/patient"
)

const recentPatientCount = 5

// Summary is the operational snapshot returned to the dashboard page.
type Summary struct {
	PatientCount    int                `json:"patientCount"`
	ResultFileCount int                `json:"resultFileCount"`
	OpenQueryCount  int                `json:"openQueryCount"`
	ApprovedRevenue float64            `json:"approvedRevenue"`
	PaymentStatuses map[string]int     `json:"paymentStatuses"`
	RecentPatients  []*patient.Patient `json:"recentPatients"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Summary fans the independent aggregate reads out concurrently. Any single
// failure fails the whole snapshot.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	var out Summary
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.repo.PatientCount(ctx)
		out.PatientCount = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.ResultFileCount(ctx)
		out.ResultFileCount = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.OpenQueryCount(ctx)
		out.OpenQueryCount = n
		return err
	})
	g.Go(func() error {
		total, err := s.repo.ApprovedRevenue(ctx)
		out.ApprovedRevenue = total
		return err
	})
	g.Go(func() error {
		breakdown, err := s.repo.PaymentStatusBreakdown(ctx)
		out.PaymentStatuses = breakdown
		return err
	})
	g.Go(func() error {
		recent, err := s.repo.RecentPatients(ctx, recentPatientCount)
		out.RecentPatients = recent
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
