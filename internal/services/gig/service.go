// Package gig applies gigflow mutations through the database: every
// operation is one read-modify-write of a single gig row, version-guarded
// and retried a bounded number of times before surfacing
// ConcurrentModification.
package gig

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gignest/gignest_backend/internal/errdefs"
	"github.com/gignest/gignest_backend/internal/gigflow"
	"github.com/gignest/gignest_backend/internal/metrics"
	"github.com/gignest/gignest_backend/internal/models"
	"github.com/gignest/gignest_backend/internal/notify"
)

const maxConflictRetries = 3

var errVersionConflict = errors.New("gig version conflict")

type Service struct {
	DB       *gorm.DB
	Policy   gigflow.Policy
	Notifier *notify.Service
	Log      *zap.Logger
}

func NewService(db *gorm.DB, policy gigflow.Policy, notifier *notify.Service, log *zap.Logger) *Service {
	return &Service{DB: db, Policy: policy, Notifier: notifier, Log: log}
}

type CreateGigInput struct {
	Title           string
	Description     string
	Skills          []string
	Budget          int64
	Currency        string
	Deadline        *time.Time
	NumberOfReports int
}

func (s *Service) CreateGig(ctx context.Context, clientID uuid.UUID, in CreateGigInput) (*models.Gig, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("title is required: %w", errdefs.ErrValidationFailed)
	}
	if in.Budget <= 0 {
		return nil, fmt.Errorf("budget must be positive: %w", errdefs.ErrValidationFailed)
	}
	if in.NumberOfReports < 0 {
		return nil, fmt.Errorf("number of reports cannot be negative: %w", errdefs.ErrValidationFailed)
	}
	currency := in.Currency
	if currency == "" {
		currency = "INR"
	}

	g := models.Gig{
		ClientID:        clientID,
		Title:           in.Title,
		Description:     in.Description,
		Skills:          in.Skills,
		Budget:          in.Budget,
		Currency:        currency,
		Deadline:        in.Deadline,
		Status:          models.GigStatusOpen,
		NumberOfReports: in.NumberOfReports,
	}
	if err := s.DB.WithContext(ctx).Create(&g).Error; err != nil {
		return nil, err
	}
	metrics.GigOperations.WithLabelValues("create").Inc()
	return &g, nil
}

func (s *Service) GetGig(ctx context.Context, id uuid.UUID) (*models.Gig, error) {
	var g models.Gig
	if err := s.DB.WithContext(ctx).First(&g, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errdefs.ErrGigNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (s *Service) ListOpenGigs(ctx context.Context) ([]models.Gig, error) {
	var gigs []models.Gig
	err := s.DB.WithContext(ctx).
		Where("status = ?", models.GigStatusOpen).
		Order("created_at DESC").
		Find(&gigs).Error
	return gigs, err
}

func (s *Service) ListGigsByClient(ctx context.Context, clientID uuid.UUID) ([]models.Gig, error) {
	var gigs []models.Gig
	err := s.DB.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&gigs).Error
	return gigs, err
}

func (s *Service) ListGigsForStudent(ctx context.Context, studentID uuid.UUID) ([]models.Gig, error) {
	var gigs []models.Gig
	err := s.DB.WithContext(ctx).
		Where("selected_student_id = ?", studentID).
		Order("created_at DESC").
		Find(&gigs).Error
	return gigs, err
}

// updateGig runs one logical gig mutation: load, mutate in memory, write back
// guarded by the version column. A lost race re-runs the whole mutation
// against fresh state; after maxConflictRetries the conflict surfaces to the
// caller.
func (s *Service) updateGig(ctx context.Context, gigID uuid.UUID, op string, mutate func(tx *gorm.DB, g *models.Gig) error) (*models.Gig, error) {
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		var g models.Gig
		err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&g, "id = ?", gigID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errdefs.ErrGigNotFound
				}
				return err
			}
			if err := mutate(tx, &g); err != nil {
				return err
			}
			prev := g.Version
			g.Version = prev + 1
			res := tx.Model(&models.Gig{}).
				Where("id = ? AND version = ?", g.ID, prev).
				Select("*").Omit("id", "created_at").
				Updates(&g)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errVersionConflict
			}
			return nil
		})
		if errors.Is(err, errVersionConflict) {
			metrics.ConflictRetries.Inc()
			s.Log.Debug("gig write conflict, retrying",
				zap.String("gig", gigID.String()), zap.String("op", op), zap.Int("attempt", attempt+1))
			continue
		}
		if err != nil {
			return nil, err
		}
		metrics.GigOperations.WithLabelValues(op).Inc()
		return &g, nil
	}
	return nil, errdefs.ErrConcurrentModification
}

func (s *Service) lookupUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := s.DB.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errdefs.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// CloseGig closes an open or in-progress gig. The previously selected
// student, if any, is told the gig is gone.
func (s *Service) CloseGig(ctx context.Context, gigID, actorID uuid.UUID, isAdmin bool) (*models.Gig, error) {
	var selected *uuid.UUID
	g, err := s.updateGig(ctx, gigID, "close", func(tx *gorm.DB, g *models.Gig) error {
		selected = nil
		if g.SelectedStudentID != nil {
			v := *g.SelectedStudentID
			selected = &v
		}
		return gigflow.Close(g, actorID, isAdmin)
	})
	if err != nil {
		return nil, err
	}
	if selected != nil {
		s.Notifier.Emit(ctx, *selected, models.NotificationGigClosed,
			fmt.Sprintf("The gig %q has been closed.", g.Title), &g.ID, "/gigs/"+g.ID.String())
	}
	s.Notifier.PushGig(ctx, g)
	return g, nil
}

// SetResourceLink stores the client's shared resource link on the gig.
func (s *Service) SetResourceLink(ctx context.Context, gigID, actorID uuid.UUID, link string) (*models.Gig, error) {
	g, err := s.updateGig(ctx, gigID, "resource_link", func(tx *gorm.DB, g *models.Gig) error {
		return gigflow.SetResourceLink(g, actorID, link)
	})
	if err != nil {
		return nil, err
	}
	s.Notifier.PushGig(ctx, g)
	return g, nil
}
