package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/gignest/gignest_backend/internal/models"
)

type NotificationHandler struct {
	DB *gorm.DB
}

func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{DB: db}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var notifications []models.Notification
	if err := h.DB.WithContext(c.Context()).
		Where("recipient_id = ?", userID).
		Order("created_at DESC").
		Limit(100).
		Find(&notifications).Error; err != nil {
		return respondErr(c, err)
	}
	return ok(c, notifications)
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	notifID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	res := h.DB.WithContext(c.Context()).
		Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", notifID, userID).
		Update("is_read", true)
	if res.Error != nil {
		return respondErr(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return fail(c, fiber.StatusNotFound, "not found")
	}
	return ok(c, fiber.Map{"id": notifID, "is_read": true})
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	if err := h.DB.WithContext(c.Context()).
		Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		return respondErr(c, err)
	}
	return ok(c, fiber.Map{"marked": "all"})
}
