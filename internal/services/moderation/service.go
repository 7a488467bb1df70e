// Package moderation executes the ban/unban cascade. Every write belonging
// to one cascade (the profile flag, every affected gig, removed content and
// the cascade notifications) commits in a single database transaction; a
// partial cascade is never observable.
package moderation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gignest/gignest_backend/internal/errdefs"
	"github.com/gignest/gignest_backend/internal/gigflow"
	"github.com/gignest/gignest_backend/internal/metrics"
	"github.com/gignest/gignest_backend/internal/models"
	"github.com/gignest/gignest_backend/internal/notify"
)

type Service struct {
	DB       *gorm.DB
	Notifier *notify.Service
	Log      *zap.Logger
}

func NewService(db *gorm.DB, notifier *notify.Service, log *zap.Logger) *Service {
	return &Service{DB: db, Notifier: notifier, Log: log}
}

// SetBanned flips a user's ban flag and applies the full consistency cascade.
// Unbanning restores nothing: closed gigs stay closed and removed
// applications stay removed.
func (s *Service) SetBanned(ctx context.Context, userID uuid.UUID, banned bool) error {
	var plan *gigflow.BanPlan

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errdefs.ErrUserNotFound
			}
			return err
		}
		if user.IsBanned == banned {
			return nil // idempotent
		}

		if !banned {
			plan = gigflow.PlanUnban(&user)
			return tx.Model(&models.User{}).Where("id = ?", user.ID).
				Update("is_banned", false).Error
		}

		owned, selectedOn, openApplied, err := s.loadAffectedGigs(tx, &user)
		if err != nil {
			return err
		}
		plan = gigflow.PlanBan(&user, owned, selectedOn, openApplied)
		return s.applyPlan(tx, plan)
	})
	if err != nil {
		if errors.Is(err, errdefs.ErrNotFound) {
			return err
		}
		return fmt.Errorf("moderation cascade aborted for user %s: %v: %w", userID, err, errdefs.ErrCascadeFailed)
	}

	if plan != nil && banned {
		metrics.CascadesExecuted.Inc()
		// Post-commit: reflect the new gig states to the survivors.
		for _, g := range plan.ChangedGigs {
			s.Notifier.PushGig(ctx, g)
		}
	}
	return nil
}

func (s *Service) loadAffectedGigs(tx *gorm.DB, user *models.User) (owned, selectedOn, openApplied []*models.Gig, err error) {
	switch user.Role {
	case models.RoleClient:
		err = tx.Where("client_id = ? AND status IN ?", user.ID,
			[]models.GigStatus{models.GigStatusOpen, models.GigStatusInProgress}).
			Find(&owned).Error
		if err != nil {
			return nil, nil, nil, err
		}

	case models.RoleStudent:
		err = tx.Where("selected_student_id = ? AND status IN ?", user.ID,
			[]models.GigStatus{models.GigStatusInProgress, models.GigStatusAwaitingPayout}).
			Find(&selectedOn).Error
		if err != nil {
			return nil, nil, nil, err
		}
		// Applicant membership lives inside a JSON column, so open gigs are
		// filtered here rather than in SQL. Cascades are rare admin actions.
		var open []*models.Gig
		if err = tx.Where("status = ?", models.GigStatusOpen).Find(&open).Error; err != nil {
			return nil, nil, nil, err
		}
		for _, g := range open {
			if g.Applicant(user.ID) != nil {
				openApplied = append(openApplied, g)
			}
		}
	}
	return owned, selectedOn, openApplied, nil
}

// applyPlan commits every write of the plan on the given transaction. Gig
// writes stay version-guarded so a racing single-gig writer aborts the whole
// cascade instead of being silently overwritten.
func (s *Service) applyPlan(tx *gorm.DB, plan *gigflow.BanPlan) error {
	if err := tx.Model(&models.User{}).Where("id = ?", plan.User.ID).
		Update("is_banned", true).Error; err != nil {
		return err
	}

	for _, g := range plan.ChangedGigs {
		prev := g.Version
		g.Version = prev + 1
		res := tx.Model(&models.Gig{}).
			Where("id = ? AND version = ?", g.ID, prev).
			Select("*").Omit("id", "created_at").
			Updates(g)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errdefs.ErrConcurrentModification
		}
	}

	for _, d := range plan.Notifications {
		n := models.Notification{
			RecipientID:  d.RecipientID,
			Type:         d.Type,
			Message:      d.Message,
			RelatedGigID: d.GigID,
			Link:         d.Link,
		}
		if err := tx.Create(&n).Error; err != nil {
			return err
		}
	}

	if plan.RemovePostsOf != nil {
		if err := tx.Model(&models.Post{}).
			Where("author_id = ? AND is_removed = ?", *plan.RemovePostsOf, false).
			Update("is_removed", true).Error; err != nil {
			return err
		}
	}
	return nil
}
