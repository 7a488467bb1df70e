package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type GigStatus string

const (
	GigStatusOpen           GigStatus = "open"
	GigStatusInProgress     GigStatus = "in-progress"
	GigStatusAwaitingPayout GigStatus = "awaiting_payout"
	GigStatusCompleted      GigStatus = "completed"
	GigStatusClosed         GigStatus = "closed"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved_to_apply"
	RequestStatusDenied   RequestStatus = "denied_to_apply"
)

type ApplicantStatus string

const (
	ApplicantStatusPending  ApplicantStatus = "pending"
	ApplicantStatusAccepted ApplicantStatus = "accepted"
	ApplicantStatusRejected ApplicantStatus = "rejected"
)

type ReportStatus string

const (
	ReportStatusNone          ReportStatus = ""
	ReportStatusPendingReview ReportStatus = "pending_review"
	ReportStatusApproved      ReportStatus = "approved"
	ReportStatusRejected      ReportStatus = "rejected"
)

// ApplicationRequest is a pre-application gate entry. It is never deleted,
// only re-statused by the gig's client.
type ApplicationRequest struct {
	StudentID   uuid.UUID     `json:"student_id"`
	Username    string        `json:"username"`
	RequestedAt time.Time     `json:"requested_at"`
	Status      RequestStatus `json:"status"`
}

// Applicant is a student's full application to a gig. At most one applicant
// per gig ever reaches "accepted".
type Applicant struct {
	StudentID uuid.UUID       `json:"student_id"`
	Username  string          `json:"username"`
	Message   string          `json:"message"`
	AppliedAt time.Time       `json:"applied_at"`
	Status    ApplicantStatus `json:"status"`
}

// Attachment is an opaque object-storage reference; the core never inspects
// file contents.
type Attachment struct {
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
	Size int64  `json:"size,omitempty"`
}

type ReportSubmission struct {
	Text        string       `json:"text"`
	Attachments []Attachment `json:"attachments,omitempty"`
	SubmittedAt time.Time    `json:"submitted_at"`
}

// ProgressReport is one of N ordered deliverable checkpoints, created eagerly
// as a placeholder once a student is selected and mutated in place afterwards.
type ProgressReport struct {
	ReportNumber   int               `json:"report_number"`
	Deadline       *time.Time        `json:"deadline,omitempty"`
	Submission     *ReportSubmission `json:"submission,omitempty"`
	ClientStatus   ReportStatus      `json:"client_status"`
	ClientFeedback string            `json:"client_feedback,omitempty"`
	ReviewedAt     *time.Time        `json:"reviewed_at,omitempty"`
}

// Gig is the central aggregate. The array-valued fields live in JSONB columns
// and are read-modify-write at the storage layer; the version column guards
// against lost updates.
type Gig struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;index;not null" json:"client_id"`

	Title       string                     `gorm:"not null" json:"title"`
	Description string                     `gorm:"type:text" json:"description"`
	Skills      datatypes.JSONSlice[string] `json:"skills,omitempty"`
	Budget      int64                      `gorm:"not null" json:"budget"`
	Currency    string                     `gorm:"type:varchar(10);default:'INR'" json:"currency"`
	Deadline    *time.Time                 `json:"deadline,omitempty"`

	Status GigStatus `gorm:"type:varchar(20);default:'open';index" json:"status"`

	ApplicationRequests datatypes.JSONSlice[ApplicationRequest] `json:"application_requests,omitempty"`
	Applicants          datatypes.JSONSlice[Applicant]          `json:"applicants,omitempty"`

	SelectedStudentID *uuid.UUID `gorm:"type:uuid;index" json:"selected_student_id,omitempty"`

	NumberOfReports int                                 `gorm:"default:0" json:"number_of_reports"`
	ProgressReports datatypes.JSONSlice[ProgressReport] `json:"progress_reports,omitempty"`

	SharedResourceLink string `gorm:"type:text" json:"shared_resource_link,omitempty"`

	PaymentRequestsCount         int        `gorm:"default:0" json:"payment_requests_count"`
	StudentPaymentRequestPending bool       `gorm:"default:false" json:"student_payment_request_pending"`
	LastPaymentRequestedAt       *time.Time `json:"last_payment_requested_at,omitempty"`

	// Bumped on every mutation; optimistic-concurrency guard.
	Version int64 `gorm:"default:0" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Client *User `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

// Request returns the application request for a student, or nil.
func (g *Gig) Request(studentID uuid.UUID) *ApplicationRequest {
	for i := range g.ApplicationRequests {
		if g.ApplicationRequests[i].StudentID == studentID {
			return &g.ApplicationRequests[i]
		}
	}
	return nil
}

// Applicant returns the application entry for a student, or nil.
func (g *Gig) Applicant(studentID uuid.UUID) *Applicant {
	for i := range g.Applicants {
		if g.Applicants[i].StudentID == studentID {
			return &g.Applicants[i]
		}
	}
	return nil
}

// Report returns the 1-indexed progress report, or nil if out of range.
func (g *Gig) Report(number int) *ProgressReport {
	if number < 1 || number > len(g.ProgressReports) {
		return nil
	}
	return &g.ProgressReports[number-1]
}

// IsSelected reports whether the given student is the gig's selected student.
func (g *Gig) IsSelected(studentID uuid.UUID) bool {
	return g.SelectedStudentID != nil && *g.SelectedStudentID == studentID
}

// GrossBudget returns the gig's budget as a Money value.
func (g *Gig) GrossBudget() Money {
	return Money{Amount: g.Budget, Currency: g.Currency}
}
