package gig

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gignest/gignest_backend/internal/errdefs"
	"github.com/gignest/gignest_backend/internal/models"
)

// LeaveReview records the client's rating of the student once the gig is
// completed. The student's denormalized rating counters change in the same
// transaction as the review row.
func (s *Service) LeaveReview(ctx context.Context, gigID, clientID uuid.UUID, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, errdefs.ErrInvalidRating
	}

	var review models.Review
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var g models.Gig
		if err := tx.First(&g, "id = ?", gigID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errdefs.ErrGigNotFound
			}
			return err
		}
		if g.ClientID != clientID {
			return errdefs.ErrNotGigOwner
		}
		if g.Status != models.GigStatusCompleted {
			return errdefs.ErrWrongStatus
		}
		if g.SelectedStudentID == nil {
			return errdefs.ErrWrongStatus
		}

		var existing models.Review
		if err := tx.First(&existing, "gig_id = ?", gigID).Error; err == nil {
			return errdefs.ErrReviewExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		review = models.Review{
			GigID:     g.ID,
			ClientID:  clientID,
			StudentID: *g.SelectedStudentID,
			Rating:    rating,
			Comment:   comment,
		}
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		var student models.User
		if err := tx.First(&student, "id = ?", *g.SelectedStudentID).Error; err != nil {
			return err
		}
		total := student.TotalRatings + 1
		avg := (student.AverageRating*float64(student.TotalRatings) + float64(rating)) / float64(total)
		return tx.Model(&models.User{}).Where("id = ?", student.ID).
			Updates(map[string]any{"average_rating": avg, "total_ratings": total}).Error
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ListReviewsForStudent returns all reviews left on a student's work.
func (s *Service) ListReviewsForStudent(ctx context.Context, studentID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := s.DB.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}
