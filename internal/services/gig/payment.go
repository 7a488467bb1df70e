package gig

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gignest/gignest_backend/internal/gigflow"
	"github.com/gignest/gignest_backend/internal/models"
)

// RecordClientPayment performs the simulated escrow capture: the gig moves to
// awaiting_payout and a pending-release ledger entry is written in the same
// database transaction. The gross budget is recorded; commission is
// reconciled at release time.
func (s *Service) RecordClientPayment(ctx context.Context, gigID, actorID uuid.UUID) (*models.Gig, *models.Transaction, error) {
	var txn models.Transaction
	g, err := s.updateGig(ctx, gigID, "record_payment", func(tx *gorm.DB, g *models.Gig) error {
		if err := gigflow.RecordClientPayment(g, actorID); err != nil {
			return err
		}
		txn = models.Transaction{
			GigID:     g.ID,
			ClientID:  g.ClientID,
			StudentID: *g.SelectedStudentID,
			Amount:    g.Budget,
			Currency:  g.Currency,
			Status:    models.TransactionStatusPendingRelease,
			PaymentID: models.GeneratePaymentID(),
			PaidAt:    time.Now(),
		}
		return tx.Create(&txn).Error
	})
	if err != nil {
		return nil, nil, err
	}
	if g.SelectedStudentID != nil {
		net := g.GrossBudget().NetPayout()
		s.Notifier.Emit(ctx, *g.SelectedStudentID, models.NotificationPaymentRecorded,
			fmt.Sprintf("Payment for %q was recorded. %s will be released to you after review.", g.Title, net),
			&g.ID, "/gigs/"+g.ID.String())
	}
	s.Notifier.PushGig(ctx, g)
	return g, &txn, nil
}

// RequestPayment is the student's throttled nudge to the client; it never
// transitions the gig itself.
func (s *Service) RequestPayment(ctx context.Context, gigID, studentID uuid.UUID) (*models.Gig, error) {
	g, err := s.updateGig(ctx, gigID, "request_payment", func(tx *gorm.DB, g *models.Gig) error {
		return gigflow.RequestPayment(g, s.Policy, studentID, time.Now())
	})
	if err != nil {
		return nil, err
	}
	s.Notifier.Emit(ctx, g.ClientID, models.NotificationPaymentRequested,
		fmt.Sprintf("The student on %q has requested payment. All reports are approved.", g.Title),
		&g.ID, "/gigs/"+g.ID.String())
	return g, nil
}

// FinalizeRelease applies the external admin release step: the pending ledger
// entry is marked succeeded and the gig completes, unlocking reviews.
func (s *Service) FinalizeRelease(ctx context.Context, gigID uuid.UUID) (*models.Gig, error) {
	g, err := s.updateGig(ctx, gigID, "finalize_release", func(tx *gorm.DB, g *models.Gig) error {
		if err := gigflow.FinalizeRelease(g); err != nil {
			return err
		}
		return tx.Model(&models.Transaction{}).
			Where("gig_id = ? AND status = ?", g.ID, models.TransactionStatusPendingRelease).
			Update("status", models.TransactionStatusSucceeded).Error
	})
	if err != nil {
		return nil, err
	}
	if g.SelectedStudentID != nil {
		net := g.GrossBudget().NetPayout()
		s.Notifier.Emit(ctx, *g.SelectedStudentID, models.NotificationPayoutReleased,
			fmt.Sprintf("Payout of %s for %q has been released.", net, g.Title),
			&g.ID, "/gigs/"+g.ID.String())
	}
	s.Notifier.PushGig(ctx, g)
	return g, nil
}

// ListTransactionsFor returns the ledger entries a user participates in.
func (s *Service) ListTransactionsFor(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := s.DB.WithContext(ctx).
		Where("client_id = ? OR student_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&txns).Error
	return txns, err
}
