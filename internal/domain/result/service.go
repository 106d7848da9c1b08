package result

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/g2g/mri/internal/domain/patient"
	"github.com/g2g/mri/internal/platform/blobstore"
	"github.com/g2g/mri/internal/platform/errs"
	"github.com/g2g/mri/internal/platform/render"
)

// PatientDirectory is the slice of the patient repository this service needs.
type PatientDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
}

// AdminDirectory lists the user ids that receive issuance notifications.
type AdminDirectory interface {
	ListAdminIDs(ctx context.Context) ([]string, error)
}

// Announcer records and pushes a notification to one user. Implementations
// are fire-and-forget; failures never reach this service.
type Announcer interface {
	Announce(ctx context.Context, userID, message, entityKind, entityID string)
}

type UploadInput struct {
	Filename string
	MimeType string
	Data     []byte
	Remarks  string
}

type IssueInput struct {
	RecipientName  string `json:"recipientName"`
	RecipientPhone string `json:"recipientPhone"`
	RecipientRel   string `json:"recipientRelationship"`
	RecipientEmail string `json:"recipientEmail"`
}

type Service struct {
	repo     Repository
	patients PatientDirectory
	admins   AdminDirectory
	store    blobstore.Store
	renderer render.Renderer
	announce Announcer
	logger   zerolog.Logger
}

func NewService(repo Repository, patients PatientDirectory, admins AdminDirectory,
	store blobstore.Store, renderer render.Renderer, announce Announcer, logger zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		patients: patients,
		admins:   admins,
		store:    store,
		renderer: renderer,
		announce: announce,
		logger:   logger,
	}
}

// Upload stores the document bytes and persists the metadata row with status
// pending_review. When no file is supplied, a placeholder document is
// rendered from the patient snapshot instead of failing the request.
func (s *Service) Upload(ctx context.Context, patientID uuid.UUID, uploadedBy string, in UploadInput) (*File, error) {
	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	data := in.Data
	mimeType := in.MimeType
	filename := in.Filename
	if len(data) == 0 {
		rendered, ct, err := s.renderer.Render("result_report", map[string]interface{}{
			"patientName": p.Name,
			"mriCode":     p.MRICode,
		})
		if err != nil {
			return nil, errs.Collaborator(err, "render placeholder document")
		}
		data = rendered
		mimeType = ct
		if filename == "" {
			filename = p.MRICode + "-result.pdf"
		}
	}

	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".pdf"
	}
	key := fmt.Sprintf("results/%s/%s%s", patientID, uuid.New(), ext)

	if err := s.store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), mimeType); err != nil {
		return nil, errs.Collaborator(err, "store result file")
	}

	f := &File{
		PatientID:        patientID,
		OriginalFilename: filename,
		StorageKey:       key,
		MimeType:         mimeType,
		SizeKB:           int(math.Round(float64(len(data)) / 1024)),
		Status:           StatusPendingReview,
		UploadedBy:       uploadedBy,
		Remarks:          in.Remarks,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*File, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*File, error) {
	if _, err := s.patients.GetByID(ctx, patientID); err != nil {
		return nil, err
	}
	return s.repo.ListByPatient(ctx, patientID)
}

// SetStatus moves the file between pending_review and final. An issued file
// is immutable; Issue is the sanctioned path into the issued state.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status string) (*File, error) {
	if !ValidStatuses[status] {
		return nil, errs.Validation("invalid result status %q", status)
	}
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.Status == StatusIssued {
		return nil, errs.Conflict("result file %s is issued and can no longer change", id)
	}
	if status == StatusIssued {
		return nil, errs.Validation("use the issue operation to mark a result issued")
	}
	f.Status = status
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Issue marks the file issued, stamping issuer and recipient data, then
// notifies every admin. Re-issuance is not permitted. Notification failures
// never surface to the caller.
func (s *Service) Issue(ctx context.Context, id uuid.UUID, issuedBy string, in IssueInput) (*File, error) {
	if strings.TrimSpace(in.RecipientName) == "" {
		return nil, errs.Validation("recipient name is required")
	}

	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.Status == StatusIssued {
		return nil, errs.Conflict("result file %s is already issued", id)
	}

	now := time.Now()
	f.Status = StatusIssued
	f.RecipientName = strings.TrimSpace(in.RecipientName)
	f.RecipientPhone = in.RecipientPhone
	f.RecipientRel = in.RecipientRel
	f.RecipientEmail = in.RecipientEmail
	f.IssuedBy = &issuedBy
	f.IssuedAt = &now
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}

	s.notifyAdmins(ctx, f)
	return f, nil
}

func (s *Service) notifyAdmins(ctx context.Context, f *File) {
	adminIDs, err := s.admins.ListAdminIDs(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("result_id", f.ID.String()).Msg("list admins for issuance notice")
		return
	}
	msg := fmt.Sprintf("Result %s issued to %s", f.OriginalFilename, f.RecipientName)
	for _, adminID := range adminIDs {
		s.announce.Announce(ctx, adminID, msg, "result_file", f.ID.String())
	}
}

// Download returns a 5-minute signed URL. The service never proxies bytes.
func (s *Service) Download(ctx context.Context, id uuid.UUID, canDownload bool) (string, error) {
	if !canDownload {
		return "", errs.Forbidden("caller is not permitted to download result files")
	}
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	url, err := s.store.SignedURL(ctx, f.StorageKey)
	if err != nil {
		return "", errs.Collaborator(err, "sign download url")
	}
	return url, nil
}

// Delete removes the blob best-effort, then the metadata row. Metadata
// deletion is authoritative; a blob-side failure is only logged.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, f.StorageKey); err != nil {
		s.logger.Error().Err(err).Str("storage_key", f.StorageKey).Msg("blob delete failed, removing metadata anyway")
	}
	return s.repo.Delete(ctx, id)
}
