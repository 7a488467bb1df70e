package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/gignest/gignest_backend/internal/gigflow"
	gigsvc "github.com/gignest/gignest_backend/internal/services/gig"
)

type GigHandler struct {
	Svc *gigsvc.Service
	Log *zap.Logger
}

func NewGigHandler(svc *gigsvc.Service, log *zap.Logger) *GigHandler {
	return &GigHandler{Svc: svc, Log: log}
}

// CreateGigRequest is the request body for posting a new gig.
type CreateGigRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Skills          []string `json:"skills"`
	Budget          int64    `json:"budget"`
	Currency        string   `json:"currency"`
	Deadline        string   `json:"deadline"` // ISO format: 2026-01-03
	NumberOfReports int      `json:"number_of_reports"`
}

func (h *GigHandler) CreateGig(c *fiber.Ctx) error {
	clientID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req CreateGigRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	var deadline *time.Time
	if req.Deadline != "" {
		d, err := time.Parse("2006-01-02", req.Deadline)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "deadline must be formatted as YYYY-MM-DD")
		}
		deadline = &d
	}

	g, err := h.Svc.CreateGig(c.Context(), clientID, gigsvc.CreateGigInput{
		Title:           req.Title,
		Description:     req.Description,
		Skills:          req.Skills,
		Budget:          req.Budget,
		Currency:        req.Currency,
		Deadline:        deadline,
		NumberOfReports: req.NumberOfReports,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return created(c, g)
}

// ListOpen returns all open gigs, newest first.
func (h *GigHandler) ListOpen(c *fiber.Ctx) error {
	gigs, err := h.Svc.ListOpenGigs(c.Context())
	if err != nil {
		return respondErr(c, err)
	}
	return ok(c, gigs)
}

// ListMine returns the client's own gigs.
func (h *GigHandler) ListMine(c *fiber.Ctx) error {
	clientID, err := currentUserID(c)
	if err != nil {
		return err
	}
	gigs, err := h.Svc.ListGigsByClient(c.Context(), clientID)
	if err != nil {
		return respondErr(c, err)
	}
	return ok(c, gigs)
}

// ListAssigned returns gigs where the student is selected.
func (h *GigHandler) ListAssigned(c *fiber.Ctx) error {
	studentID, err := currentUserID(c)
	if err != nil {
		return err
	}
	gigs, err := h.Svc.ListGigsForStudent(c.Context(), studentID)
	if err != nil {
		return respondErr(c, err)
	}
	return ok(c, gigs)
}

func (h *GigHandler) GetGig(c *fiber.Ctx) error {
	gigID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	g, err := h.Svc.GetGig(c.Context(), gigID)
	if err != nil {
		return respondErr(c, err)
	}
	return ok(c, g)
}

func (h *GigHandler) CloseGig(c *fiber.Ctx) error {
	actorID, err := currentUserID(c)
	if err != nil {
		return err
	}
	gigID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	g, err := h.Svc.CloseGig(c.Context(), gigID, actorID, isAdmin(c))
	if err != nil {
		return respondErr(c, err)
	}
	return ok(c, g)
}

func (h *GigHandler) SetResourceLink(c *fiber.Ctx) error {
	actorID, err := currentUserID(c)
	if err != nil {
		return err
	}
	gigID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	var req struct {
		Link string `json:"link"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	g, err := h.Svc.SetResourceLink(c.Context(), gigID, actorID, req.Link)
	if err != nil {
		return respondErr(c, err)
	}
	return ok(c, g)
}

// RequestToApply lets a student ask for permission to apply.
func (h *GigHandler) RequestToApply(c *fiber.Ctx) error {
	studentID, err := currentUserID(c)
	if err != nil {
		return err
	}
	gigID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	g, err := h.Svc.RequestToApply(c.Context(), gigID, studentID)
	if err != nil {
		return respondErr(c, err)
	}
	return created(c, g)
}

// ResolveRequest is the client's one-shot approve/deny of a request.
func (h *GigHandler) ResolveRequest(c *fiber.Ctx) error {
	actorID, err := currentUserID(c)
	if err != nil {
		return err
	}
	gigID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	studentID, err := paramUUID(c, "studentId")
	if err != nil {
		return err
	}
	var req struct {
		Decision string `json:"decision"` // approve / deny
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	decision := gigflow.RequestDecision(req.Decision)
	if decision != gigflow.RequestApprove && decision != gigflow.RequestDeny {
		return fail(c, fiber.StatusBadRequest, "decision must be approve or deny")
	}
	g, err := h.Svc.ResolveRequest(c.Context(), gigID, actorID, studentID, decision)
	if err != nil {
		return respondErr(c, err)
	}
	return ok(c, g)
}

// Apply submits a full application.
func (h *GigHandler) Apply(c *fiber.Ctx) error {
	studentID, err := currentUserID(c)
	if err != nil {
		return err
	}
	gigID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	var req struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	g, err := h.Svc.Apply(c.Context(), gigID, studentID, req.Message)
	if err != nil {
		return respondErr(c, err)
	}
	return created(c, g)
}

// DecideApplicant accepts or rejects one applicant.
func (h *GigHandler) DecideApplicant(c *fiber.Ctx) error {
	actorID, err := currentUserID(c)
	if err != nil {
		return err
	}
	gigID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	studentID, err := paramUUID(c, "studentId")
	if err != nil {
		return err
	}
	var req struct {
		Decision string `json:"decision"` // accept / reject
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	decision := gigflow.ApplicantDecision(req.Decision)
	if decision != gigflow.ApplicantAccept && decision != gigflow.ApplicantReject {
		return fail(c, fiber.StatusBadRequest, "decision must be accept or reject")
	}
	g, err := h.Svc.DecideApplicant(c.Context(), gigID, actorID, studentID, decision)
	if err != nil {
		return respondErr(c, err)
	}
	return ok(c, g)
}
