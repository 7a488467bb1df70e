// Package notify is the notification sink. Emits are fire-and-forget: a
// failed emit is counted and logged but never rolls back the state change
// that triggered it.
package notify

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gignest/gignest_backend/internal/metrics"
	"github.com/gignest/gignest_backend/internal/models"
	"github.com/gignest/gignest_backend/internal/realtime"
)

type Service struct {
	DB     *gorm.DB
	Bridge *realtime.Bridge
	Log    *zap.Logger
}

func NewService(db *gorm.DB, bridge *realtime.Bridge, log *zap.Logger) *Service {
	return &Service{DB: db, Bridge: bridge, Log: log}
}

// Emit persists a notification record and pushes it to the recipient's live
// connections.
func (s *Service) Emit(ctx context.Context, recipientID uuid.UUID, ntype models.NotificationType, message string, gigID *uuid.UUID, link string) {
	n := models.Notification{
		RecipientID:  recipientID,
		Type:         ntype,
		Message:      message,
		RelatedGigID: gigID,
		Link:         link,
	}
	if err := s.DB.WithContext(ctx).Create(&n).Error; err != nil {
		metrics.NotificationFailures.Inc()
		s.Log.Warn("notification emit failed",
			zap.String("recipient", recipientID.String()),
			zap.String("type", string(ntype)),
			zap.Error(err))
		return
	}
	s.Bridge.Publish(ctx, recipientID, map[string]any{
		"type":         "notification",
		"notification": n,
	})
}

// PushGig reflects the gig's new state to its two principals.
func (s *Service) PushGig(ctx context.Context, g *models.Gig) {
	payload := map[string]any{
		"type": "gig_update",
		"gig":  g,
	}
	s.Bridge.Publish(ctx, g.ClientID, payload)
	if g.SelectedStudentID != nil {
		s.Bridge.Publish(ctx, *g.SelectedStudentID, payload)
	}
}
