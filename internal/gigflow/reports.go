package gigflow

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gignest/gignest_backend/internal/errdefs"
	"github.com/gignest/gignest_backend/internal/models"
)

type ReviewDecision string

const (
	ReviewApprove ReviewDecision = "approve"
	ReviewReject  ReviewDecision = "reject"
)

// ApprovedFeedback is the acknowledgement stored when a client approves a
// report without writing feedback of their own.
const ApprovedFeedback = "Approved. Good work!"

// CanSubmit implements the core ordering guarantee: report k can only be
// submitted once report k-1 is approved. Report 1 is always submittable.
func CanSubmit(g *models.Gig, reportNumber int) bool {
	if reportNumber == 1 {
		return true
	}
	prev := g.Report(reportNumber - 1)
	return prev != nil && prev.ClientStatus == models.ReportStatusApproved
}

// SubmitReport records (or re-records) the selected student's submission for
// one report. Resubmission after rejection resets the report to
// pending_review and discards the prior feedback.
func SubmitReport(g *models.Gig, studentID uuid.UUID, reportNumber int, text string, attachments []models.Attachment, now time.Time) error {
	if err := ensureMutable(g); err != nil {
		return err
	}
	if err := ensureSelected(g, studentID); err != nil {
		return err
	}
	if g.Status != models.GigStatusInProgress {
		return errdefs.ErrWrongStatus
	}
	report := g.Report(reportNumber)
	if report == nil {
		return errdefs.ErrReportNotFound
	}
	if !CanSubmit(g, reportNumber) {
		return errdefs.ErrOutOfSequence
	}
	report.Submission = &models.ReportSubmission{
		Text:        text,
		Attachments: attachments,
		SubmittedAt: now,
	}
	report.ClientStatus = models.ReportStatusPendingReview
	report.ClientFeedback = ""
	report.ReviewedAt = nil
	return nil
}

// ReviewReport records the client's approve/reject verdict on a submitted
// report. Rejection without feedback is disallowed; approval without feedback
// falls back to a fixed acknowledgement.
func ReviewReport(g *models.Gig, actorID uuid.UUID, reportNumber int, decision ReviewDecision, feedback string, now time.Time) error {
	if err := ensureOwner(g, actorID); err != nil {
		return err
	}
	if err := ensureMutable(g); err != nil {
		return err
	}
	report := g.Report(reportNumber)
	if report == nil {
		return errdefs.ErrReportNotFound
	}
	if report.Submission == nil {
		return errdefs.ErrNoSubmission
	}

	feedback = strings.TrimSpace(feedback)
	if decision == ReviewReject {
		if feedback == "" {
			return errdefs.ErrFeedbackRequired
		}
		report.ClientStatus = models.ReportStatusRejected
	} else {
		if feedback == "" {
			feedback = ApprovedFeedback
		}
		report.ClientStatus = models.ReportStatusApproved
	}
	report.ClientFeedback = feedback
	t := now
	report.ReviewedAt = &t
	return nil
}

// AllApproved is the completion predicate gating payment. It is recomputed
// from the report list on every call, never cached. Vacuously true for gigs
// with zero reports.
func AllApproved(g *models.Gig) bool {
	if g.NumberOfReports == 0 {
		return true
	}
	if len(g.ProgressReports) != g.NumberOfReports {
		return false
	}
	for i := range g.ProgressReports {
		if g.ProgressReports[i].ClientStatus != models.ReportStatusApproved {
			return false
		}
	}
	return true
}
