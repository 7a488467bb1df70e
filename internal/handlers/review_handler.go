package handlers

import (
	"github.com/gofiber/fiber/v2"

	gigsvc "github.com/gignest/gignest_backend/internal/services/gig"
)

type ReviewHandler struct {
	Svc *gigsvc.Service
}

func NewReviewHandler(svc *gigsvc.Service) *ReviewHandler {
	return &ReviewHandler{Svc: svc}
}

// LeaveReview lets the client rate the student of a completed gig, once.
func (h *ReviewHandler) LeaveReview(c *fiber.Ctx) error {
	clientID, err := currentUserID(c)
	if err != nil {
		return err
	}
	gigID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	review, err := h.Svc.LeaveReview(c.Context(), gigID, clientID, req.Rating, req.Comment)
	if err != nil {
		return respondErr(c, err)
	}
	return created(c, review)
}

func (h *ReviewHandler) ListForStudent(c *fiber.Ctx) error {
	studentID, err := paramUUID(c, "studentId")
	if err != nil {
		return err
	}
	reviews, err := h.Svc.ListReviewsForStudent(c.Context(), studentID)
	if err != nil {
		return respondErr(c, err)
	}
	return ok(c, reviews)
}
