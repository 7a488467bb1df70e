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

// RequestToApply records a student's pre-application permission request and
// notifies the gig owner.
func (s *Service) RequestToApply(ctx context.Context, gigID, studentID uuid.UUID) (*models.Gig, error) {
	student, err := s.lookupUser(ctx, studentID)
	if err != nil {
		return nil, err
	}
	g, err := s.updateGig(ctx, gigID, "request_to_apply", func(tx *gorm.DB, g *models.Gig) error {
		return gigflow.RequestToApply(g, studentID, student.Name, time.Now())
	})
	if err != nil {
		return nil, err
	}
	s.Notifier.Emit(ctx, g.ClientID, models.NotificationApplicationReceived,
		fmt.Sprintf("%s has requested to apply to %q.", student.Name, g.Title),
		&g.ID, "/gigs/"+g.ID.String()+"/requests")
	return g, nil
}

// ResolveRequest is the client's one-shot approve/deny of an application
// request.
func (s *Service) ResolveRequest(ctx context.Context, gigID, actorID, studentID uuid.UUID, decision gigflow.RequestDecision) (*models.Gig, error) {
	g, err := s.updateGig(ctx, gigID, "resolve_request", func(tx *gorm.DB, g *models.Gig) error {
		return gigflow.ResolveRequest(g, actorID, studentID, decision)
	})
	if err != nil {
		return nil, err
	}
	msg := fmt.Sprintf("Your request to apply to %q was approved. You can now apply.", g.Title)
	if decision == gigflow.RequestDeny {
		msg = fmt.Sprintf("Your request to apply to %q was declined.", g.Title)
	}
	s.Notifier.Emit(ctx, studentID, models.NotificationRequestResolved, msg, &g.ID, "/gigs/"+g.ID.String())
	return g, nil
}

// Apply records a full application and notifies the gig owner.
func (s *Service) Apply(ctx context.Context, gigID, studentID uuid.UUID, message string) (*models.Gig, error) {
	student, err := s.lookupUser(ctx, studentID)
	if err != nil {
		return nil, err
	}
	g, err := s.updateGig(ctx, gigID, "apply", func(tx *gorm.DB, g *models.Gig) error {
		return gigflow.Apply(g, s.Policy, studentID, student.Name, message, time.Now())
	})
	if err != nil {
		return nil, err
	}
	s.Notifier.Emit(ctx, g.ClientID, models.NotificationApplicationReceived,
		fmt.Sprintf("%s applied to %q.", student.Name, g.Title),
		&g.ID, "/gigs/"+g.ID.String()+"/applicants")
	return g, nil
}

// DecideApplicant accepts or rejects one applicant. Accepting moves the gig
// to in-progress and eagerly creates the progress-report placeholders.
func (s *Service) DecideApplicant(ctx context.Context, gigID, actorID, studentID uuid.UUID, decision gigflow.ApplicantDecision) (*models.Gig, error) {
	g, err := s.updateGig(ctx, gigID, "decide_applicant", func(tx *gorm.DB, g *models.Gig) error {
		return gigflow.DecideApplicant(g, s.Policy, actorID, studentID, decision)
	})
	if err != nil {
		return nil, err
	}
	if decision == gigflow.ApplicantAccept {
		s.Notifier.Emit(ctx, studentID, models.NotificationApplicantAccepted,
			fmt.Sprintf("You were selected for %q. Work can begin.", g.Title),
			&g.ID, "/gigs/"+g.ID.String())
	} else {
		s.Notifier.Emit(ctx, studentID, models.NotificationApplicantRejected,
			fmt.Sprintf("Your application to %q was not selected.", g.Title),
			&g.ID, "/gigs/"+g.ID.String())
	}
	s.Notifier.PushGig(ctx, g)
	return g, nil
}
