package gigflow

import (
	"github.com/google/uuid"

	"github.com/gignest/gignest_backend/internal/errdefs"
	"github.com/gignest/gignest_backend/internal/models"
)

// ensureMutable rejects any mutation on a terminal gig.
func ensureMutable(g *models.Gig) error {
	switch g.Status {
	case models.GigStatusClosed:
		return errdefs.ErrGigClosed
	case models.GigStatusCompleted:
		return errdefs.ErrGigCompleted
	}
	return nil
}

func ensureOwner(g *models.Gig, actorID uuid.UUID) error {
	if g.ClientID != actorID {
		return errdefs.ErrNotGigOwner
	}
	return nil
}

func ensureSelected(g *models.Gig, studentID uuid.UUID) error {
	if !g.IsSelected(studentID) {
		return errdefs.ErrNotSelectedStudent
	}
	return nil
}

// Close moves an open or in-progress gig to closed. Callable by the owning
// client or an admin. Selection is cleared; a closed gig never carries a
// selected student.
func Close(g *models.Gig, actorID uuid.UUID, isAdmin bool) error {
	if !isAdmin {
		if err := ensureOwner(g, actorID); err != nil {
			return err
		}
	}
	if err := ensureMutable(g); err != nil {
		return err
	}
	if g.Status != models.GigStatusOpen && g.Status != models.GigStatusInProgress {
		return errdefs.ErrWrongStatus
	}
	g.Status = models.GigStatusClosed
	g.SelectedStudentID = nil
	return nil
}

// FinalizeRelease applies the external admin release: awaiting_payout becomes
// completed, which unlocks rating/review for the client.
func FinalizeRelease(g *models.Gig) error {
	if g.Status != models.GigStatusAwaitingPayout {
		return errdefs.ErrWrongStatus
	}
	g.Status = models.GigStatusCompleted
	return nil
}

// SetResourceLink stores the client's shared resource link.
func SetResourceLink(g *models.Gig, actorID uuid.UUID, link string) error {
	if err := ensureOwner(g, actorID); err != nil {
		return err
	}
	if err := ensureMutable(g); err != nil {
		return err
	}
	g.SharedResourceLink = link
	return nil
}

// materializeReports eagerly creates the placeholder report list so the
// sequencing check is a plain index lookup.
func materializeReports(g *models.Gig) {
	if g.NumberOfReports <= 0 || len(g.ProgressReports) > 0 {
		return
	}
	reports := make([]models.ProgressReport, g.NumberOfReports)
	for i := range reports {
		reports[i] = models.ProgressReport{ReportNumber: i + 1}
	}
	g.ProgressReports = reports
}

// resetToOpen reverts an in-progress or awaiting_payout gig to open: the
// selection is cleared, reports go back to placeholders and payment-request
// state is wiped. Used when the selected student is banned.
func resetToOpen(g *models.Gig) {
	g.Status = models.GigStatusOpen
	g.SelectedStudentID = nil
	g.ProgressReports = nil
	materializeReports(g)
	g.PaymentRequestsCount = 0
	g.StudentPaymentRequestPending = false
	g.LastPaymentRequestedAt = nil
}
