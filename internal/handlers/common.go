package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/gignest/gignest_backend/internal/errdefs"
)

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": data})
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}

// statusForError maps an errdefs error to an HTTP status and a user-facing
// message. NotFound and PermissionDenied deliberately render generic text so
// record existence is not leaked to unauthorized callers.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, errdefs.ErrNotFound):
		return fiber.StatusNotFound, "not found"
	case errors.Is(err, errdefs.ErrPermissionDenied):
		return fiber.StatusForbidden, "access denied"
	case errors.Is(err, errdefs.ErrValidationFailed):
		return fiber.StatusBadRequest, cleanMessage(err)
	case errors.Is(err, errdefs.ErrDuplicate):
		return fiber.StatusConflict, cleanMessage(err)
	case errors.Is(err, errdefs.ErrInvalidState):
		return fiber.StatusConflict, cleanMessage(err)
	case errors.Is(err, errdefs.ErrConcurrentModification):
		return fiber.StatusConflict, "the record was modified concurrently, please retry"
	case errors.Is(err, errdefs.ErrCascadeFailed):
		return fiber.StatusInternalServerError, "moderation cascade failed; retry the whole operation"
	default:
		return fiber.StatusInternalServerError, "internal server error"
	}
}

// cleanMessage strips the trailing kind text so the caller sees only the
// actionable part ("previous report must be approved first").
func cleanMessage(err error) string {
	msg := err.Error()
	for _, k := range []error{errdefs.ErrInvalidState, errdefs.ErrDuplicate, errdefs.ErrValidationFailed} {
		msg = strings.TrimSuffix(msg, ": "+k.Error())
	}
	return msg
}

func respondErr(c *fiber.Ctx, err error) error {
	status, msg := statusForError(err)
	return fail(c, status, msg)
}

// currentUserID reads the authenticated actor id set by the JWT middleware.
func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("userId").(string)
	if !ok || raw == "" {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return id, nil
}

func isAdmin(c *fiber.Ctx) bool {
	role, _ := c.Locals("role").(string)
	return role == "admin"
}

func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
