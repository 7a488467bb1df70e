package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/gignest/gignest_backend/internal/models"
	"github.com/gignest/gignest_backend/internal/services/moderation"
	"gorm.io/gorm"
)

type AdminHandler struct {
	DB  *gorm.DB
	Mod *moderation.Service
	Log *zap.Logger
}

func NewAdminHandler(db *gorm.DB, mod *moderation.Service, log *zap.Logger) *AdminHandler {
	return &AdminHandler{DB: db, Mod: mod, Log: log}
}

// SetBan bans or unbans a user and runs the consistency cascade.
func (h *AdminHandler) SetBan(c *fiber.Ctx) error {
	userID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	var req struct {
		Banned bool `json:"banned"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	if err := h.Mod.SetBanned(c.Context(), userID, req.Banned); err != nil {
		h.Log.Error("moderation cascade",
			zap.String("user_id", userID.String()),
			zap.Bool("banned", req.Banned),
			zap.Error(err))
		return respondErr(c, err)
	}

	action := "unbanned"
	if req.Banned {
		action = "banned"
	}
	return ok(c, fiber.Map{"user_id": userID, "action": action})
}

// ListUsers is the admin user listing with an optional role filter.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	q := h.DB.WithContext(c.Context()).Order("created_at DESC")
	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}
	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		return respondErr(c, err)
	}
	return ok(c, users)
}
