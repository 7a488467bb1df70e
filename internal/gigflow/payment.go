package gigflow

import (
	"time"

	"github.com/google/uuid"

	"github.com/gignest/gignest_backend/internal/errdefs"
	"github.com/gignest/gignest_backend/internal/models"
)

// RecordClientPayment applies the simulated escrow capture on the gig side:
// in-progress moves to awaiting_payout and any pending payment nag is
// cleared. The caller persists the ledger Transaction in the same database
// transaction. Payment is gated on every report being approved at call time.
func RecordClientPayment(g *models.Gig, actorID uuid.UUID) error {
	if err := ensureOwner(g, actorID); err != nil {
		return err
	}
	if err := ensureMutable(g); err != nil {
		return err
	}
	if g.Status != models.GigStatusInProgress {
		return errdefs.ErrWrongStatus
	}
	if !AllApproved(g) {
		return errdefs.ErrReportsIncomplete
	}
	g.Status = models.GigStatusAwaitingPayout
	g.StudentPaymentRequestPending = false
	return nil
}

// RequestPayment is the student's nudge to the client. It never transitions
// the gig; it only increments the throttled request counter. At most one
// request may be outstanding and at most PaymentRequestCap may ever be made
// per gig.
func RequestPayment(g *models.Gig, p Policy, studentID uuid.UUID, now time.Time) error {
	if err := ensureMutable(g); err != nil {
		return err
	}
	if err := ensureSelected(g, studentID); err != nil {
		return err
	}
	if g.Status != models.GigStatusInProgress {
		return errdefs.ErrWrongStatus
	}
	if !AllApproved(g) {
		return errdefs.ErrReportsIncomplete
	}
	if g.StudentPaymentRequestPending {
		return errdefs.ErrRequestPending
	}
	if g.PaymentRequestsCount >= p.PaymentRequestCap {
		return errdefs.ErrRequestLimitReached
	}
	g.PaymentRequestsCount++
	g.StudentPaymentRequestPending = true
	t := now
	g.LastPaymentRequestedAt = &t
	return nil
}
