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

// SubmitReport records the selected student's submission for one checkpoint
// and notifies the client that a review is due.
func (s *Service) SubmitReport(ctx context.Context, gigID, studentID uuid.UUID, reportNumber int, text string, attachments []models.Attachment) (*models.Gig, error) {
	g, err := s.updateGig(ctx, gigID, "submit_report", func(tx *gorm.DB, g *models.Gig) error {
		return gigflow.SubmitReport(g, studentID, reportNumber, text, attachments, time.Now())
	})
	if err != nil {
		return nil, err
	}
	s.Notifier.Emit(ctx, g.ClientID, models.NotificationReportSubmitted,
		fmt.Sprintf("Report %d of %d was submitted on %q.", reportNumber, g.NumberOfReports, g.Title),
		&g.ID, "/gigs/"+g.ID.String()+"/reports")
	s.Notifier.PushGig(ctx, g)
	return g, nil
}

// ReviewReport records the client's verdict on a submitted report and
// notifies the student.
func (s *Service) ReviewReport(ctx context.Context, gigID, actorID uuid.UUID, reportNumber int, decision gigflow.ReviewDecision, feedback string) (*models.Gig, error) {
	g, err := s.updateGig(ctx, gigID, "review_report", func(tx *gorm.DB, g *models.Gig) error {
		return gigflow.ReviewReport(g, actorID, reportNumber, decision, feedback, time.Now())
	})
	if err != nil {
		return nil, err
	}
	var msg string
	if decision == gigflow.ReviewApprove {
		msg = fmt.Sprintf("Report %d on %q was approved.", reportNumber, g.Title)
		if gigflow.AllApproved(g) {
			msg += " All reports are approved; payment can be requested."
		}
	} else {
		msg = fmt.Sprintf("Report %d on %q was rejected. Please revise and resubmit.", reportNumber, g.Title)
	}
	if g.SelectedStudentID != nil {
		s.Notifier.Emit(ctx, *g.SelectedStudentID, models.NotificationReportReviewed, msg,
			&g.ID, "/gigs/"+g.ID.String()+"/reports")
	}
	s.Notifier.PushGig(ctx, g)
	return g, nil
}
