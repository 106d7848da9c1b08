package patient

import (
	"time"

	"github.com/google/uuid"
)

// Payment statuses.
const (
	PaymentNotPaid  = "Not Paid"
	PaymentPending  = "Pending"
	PaymentApproved = "Approved"
)

// ValidPaymentStatuses is the complete payment status enum. Transitions are
// unrestricted within the set; entering Approved stamps the approver, leaving
// it clears the stamp.
var ValidPaymentStatuses = map[string]bool{
	PaymentNotPaid:  true,
	PaymentPending:  true,
	PaymentApproved: true,
}

var ValidGenders = map[string]bool{
	"Male":              true,
	"Female":            true,
	"Other":             true,
	"Prefer not to say": true,
}

var ValidPaymentTypes = map[string]bool{
	"Cash":     true,
	"Transfer": true,
	"Card":     true,
}

// Patient is one MRI intake record together with its billing state.
type Patient struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	MRICode          string     `db:"mri_code" json:"mriCode"`
	SerialNumber     string     `db:"serial_number" json:"serialNumber"`
	Name             string     `db:"name" json:"name"`
	Gender           string     `db:"gender" json:"gender"`
	Email            string     `db:"email" json:"email,omitempty"`
	Phone            string     `db:"phone" json:"phone,omitempty"`
	Age              int        `db:"age" json:"age"`
	WeightKG         float64    `db:"weight_kg" json:"weightKg"`
	ReferralHospital string     `db:"referral_hospital" json:"referralHospital,omitempty"`
	ReferringDoctor  string     `db:"referring_doctor" json:"referringDoctor,omitempty"`
	Radiographer     string     `db:"radiographer" json:"radiographer,omitempty"`
	Radiologist      string     `db:"radiologist" json:"radiologist,omitempty"`
	Remarks          string     `db:"remarks" json:"remarks,omitempty"`
	TotalAmount      float64    `db:"total_amount" json:"totalAmount"`
	ReceiptNumber    string     `db:"receipt_number" json:"receiptNumber"`
	PaymentType      string     `db:"payment_type" json:"paymentType"`
	PaymentStatus    string     `db:"payment_status" json:"paymentStatus"`
	ApprovedBy       *string    `db:"approved_by" json:"approvedBy,omitempty"`
	ApprovedAt       *time.Time `db:"approved_at" json:"approvedAt,omitempty"`
	RecordedBy       string     `db:"recorded_by" json:"recordedBy"`
	ScanAt           time.Time  `db:"scan_at" json:"scanAt"`
	CreatedAt        time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updatedAt"`

	Examinations []Examination `db:"-" json:"examinations,omitempty"`
}

// Examination is one billed line item belonging to a patient. Rows are only
// ever written inside a patient create or update transaction.
type Examination struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PatientID uuid.UUID `db:"patient_id" json:"patientId"`
	Name      string    `db:"name" json:"name"`
	Amount    float64   `db:"amount" json:"amount"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Filter selects patients for listing. Zero values mean "no constraint".
type Filter struct {
	// Search is matched as a substring against SearchField.
	Search string
	// SearchField is "name", "mri_code" or "" for both.
	SearchField string
	Gender      string
	RecordedBy  string
	// ScanFrom/ScanTo bound scan_at inclusively.
	ScanFrom *time.Time
	ScanTo   *time.Time
	// WithExaminations eager-loads each patient's examination list.
	WithExaminations bool
	Limit            int
	Offset           int
}
