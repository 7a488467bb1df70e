package models

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionStatus string

const (
	TransactionStatusPendingRelease TransactionStatus = "pending_release_to_student"
	TransactionStatusSucceeded      TransactionStatus = "succeeded"
	TransactionStatusFailed         TransactionStatus = "failed"
)

// Transaction is an append-only ledger entry recording a simulated escrow
// capture. The gross budget is recorded; commission is reconciled at release.
type Transaction struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GigID     uuid.UUID `gorm:"type:uuid;index" json:"gig_id"`
	ClientID  uuid.UUID `gorm:"type:uuid;index" json:"client_id"`
	StudentID uuid.UUID `gorm:"type:uuid;index" json:"student_id"`

	Amount   int64  `gorm:"not null" json:"amount"`
	Currency string `gorm:"type:varchar(10)" json:"currency"`

	Status    TransactionStatus `gorm:"type:varchar(30);default:'pending_release_to_student'" json:"status"`
	PaymentID string            `gorm:"type:varchar(20);uniqueIndex" json:"payment_id"`
	PaidAt    time.Time         `json:"paid_at"`

	CreatedAt time.Time `json:"created_at"`

	Gig *Gig `gorm:"foreignKey:GigID" json:"gig,omitempty"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}

// GeneratePaymentID generates a random alphanumeric payment reference.
func GeneratePaymentID() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, 10)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return "PAY" + string(b)
}
