package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationApplicationReceived NotificationType = "application_received"
	NotificationRequestResolved     NotificationType = "request_resolved"
	NotificationApplicantAccepted   NotificationType = "applicant_accepted"
	NotificationApplicantRejected   NotificationType = "applicant_rejected"
	NotificationReportSubmitted     NotificationType = "report_submitted"
	NotificationReportReviewed      NotificationType = "report_reviewed"
	NotificationPaymentRecorded     NotificationType = "payment_recorded"
	NotificationPaymentRequested    NotificationType = "payment_requested"
	NotificationPayoutReleased      NotificationType = "payout_released"
	NotificationGigClosed           NotificationType = "gig_closed"
	NotificationGigReset            NotificationType = "gig_reset"
)

// Notification is a write-once event record; only IsRead is mutated later.
type Notification struct {
	ID          uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RecipientID uuid.UUID        `gorm:"type:uuid;index;not null" json:"recipient_id"`
	Type        NotificationType `gorm:"type:varchar(40);not null" json:"type"`
	Message     string           `gorm:"type:text" json:"message"`

	RelatedGigID *uuid.UUID `gorm:"type:uuid;index" json:"related_gig_id,omitempty"`
	Link         string     `gorm:"type:text" json:"link,omitempty"`

	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
