package result

import (
	"time"

	"github.com/google/uuid"
)

// Result file statuses. issued is terminal.
const (
	StatusPendingReview = "pending_review"
	StatusFinal         = "final"
	StatusIssued        = "issued"
)

var ValidStatuses = map[string]bool{
	StatusPendingReview: true,
	StatusFinal:         true,
	StatusIssued:        true,
}

// File is the metadata row for one stored result document. The bytes live in
// blob storage under StorageKey.
type File struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	PatientID        uuid.UUID  `db:"patient_id" json:"patientId"`
	OriginalFilename string     `db:"original_filename" json:"originalFilename"`
	StorageKey       string     `db:"storage_key" json:"-"`
	MimeType         string     `db:"mime_type" json:"mimeType"`
	SizeKB           int        `db:"size_kb" json:"sizeKb"`
	Status           string     `db:"status" json:"status"`
	UploadedBy       string     `db:"uploaded_by" json:"uploadedBy"`
	Remarks          string     `db:"remarks" json:"remarks,omitempty"`
	RecipientName    string     `db:"recipient_name" json:"recipientName,omitempty"`
	RecipientPhone   string     `db:"recipient_phone" json:"recipientPhone,omitempty"`
	RecipientRel     string     `db:"recipient_relationship" json:"recipientRelationship,omitempty"`
	RecipientEmail   string     `db:"recipient_email" json:"recipientEmail,omitempty"`
	IssuedBy         *string    `db:"issued_by" json:"issuedBy,omitempty"`
	IssuedAt         *time.Time `db:"issued_at" json:"issuedAt,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updatedAt"`
}
