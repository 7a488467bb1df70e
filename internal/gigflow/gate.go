package gigflow

import (
	"time"

	"github.com/google/uuid"

	"github.com/gignest/gignest_backend/internal/errdefs"
	"github.com/gignest/gignest_backend/internal/models"
)

type RequestDecision string

const (
	RequestApprove RequestDecision = "approve"
	RequestDeny    RequestDecision = "deny"
)

type ApplicantDecision string

const (
	ApplicantAccept ApplicantDecision = "accept"
	ApplicantReject ApplicantDecision = "reject"
)

// RequestToApply appends a pending application request for the student.
func RequestToApply(g *models.Gig, studentID uuid.UUID, username string, now time.Time) error {
	if err := ensureMutable(g); err != nil {
		return err
	}
	if g.Status != models.GigStatusOpen {
		return errdefs.ErrGigNotOpen
	}
	if g.Request(studentID) != nil {
		return errdefs.ErrAlreadyRequested
	}
	g.ApplicationRequests = append(g.ApplicationRequests, models.ApplicationRequest{
		StudentID:   studentID,
		Username:    username,
		RequestedAt: now,
		Status:      models.RequestStatusPending,
	})
	return nil
}

// ResolveRequest is the client's one-shot approve/deny of a request.
// Resolving an already-resolved request fails with ErrNotPending.
func ResolveRequest(g *models.Gig, actorID, studentID uuid.UUID, decision RequestDecision) error {
	if err := ensureOwner(g, actorID); err != nil {
		return err
	}
	if err := ensureMutable(g); err != nil {
		return err
	}
	req := g.Request(studentID)
	if req == nil {
		return errdefs.ErrRequestNotFound
	}
	if req.Status != models.RequestStatusPending {
		return errdefs.ErrNotPending
	}
	if decision == RequestApprove {
		req.Status = models.RequestStatusApproved
	} else {
		req.Status = models.RequestStatusDenied
	}
	return nil
}

// Apply appends a full application. With GateEnforced off this is permissive:
// a student may apply without ever having requested.
func Apply(g *models.Gig, p Policy, studentID uuid.UUID, username, message string, now time.Time) error {
	if err := ensureMutable(g); err != nil {
		return err
	}
	if g.Status != models.GigStatusOpen {
		return errdefs.ErrGigNotOpen
	}
	if g.Applicant(studentID) != nil {
		return errdefs.ErrDuplicateApplication
	}
	if p.GateEnforced {
		req := g.Request(studentID)
		if req == nil || req.Status != models.RequestStatusApproved {
			return errdefs.ErrGateNotApproved
		}
	}
	g.Applicants = append(g.Applicants, models.Applicant{
		StudentID: studentID,
		Username:  username,
		Message:   message,
		AppliedAt: now,
		Status:    models.ApplicantStatusPending,
	})
	return nil
}

// DecideApplicant accepts or rejects one applicant. Accepting selects the
// student, moves the gig to in-progress and materializes the report
// placeholders; only one applicant can ever be accepted because a second
// accept finds the gig no longer open.
func DecideApplicant(g *models.Gig, p Policy, actorID, studentID uuid.UUID, decision ApplicantDecision) error {
	if err := ensureOwner(g, actorID); err != nil {
		return err
	}
	if err := ensureMutable(g); err != nil {
		return err
	}
	app := g.Applicant(studentID)
	if app == nil {
		return errdefs.ErrApplicantNotFound
	}

	if decision == ApplicantReject {
		app.Status = models.ApplicantStatusRejected
		return nil
	}

	if g.Status != models.GigStatusOpen {
		return errdefs.ErrGigNotOpen
	}
	app.Status = models.ApplicantStatusAccepted
	sid := studentID
	g.SelectedStudentID = &sid
	g.Status = models.GigStatusInProgress
	materializeReports(g)

	if p.AutoRejectApplicants {
		for i := range g.Applicants {
			if g.Applicants[i].StudentID != studentID && g.Applicants[i].Status == models.ApplicantStatusPending {
				g.Applicants[i].Status = models.ApplicantStatusRejected
			}
		}
	}
	return nil
}
