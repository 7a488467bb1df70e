package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/gignest/gignest_backend/internal/models"
)

type PostHandler struct {
	DB *gorm.DB
}

func NewPostHandler(db *gorm.DB) *PostHandler {
	return &PostHandler{DB: db}
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	authorID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	if strings.TrimSpace(req.Title) == "" {
		return fail(c, fiber.StatusBadRequest, "title is required")
	}

	post := models.Post{
		AuthorID: authorID,
		Title:    req.Title,
		Body:     req.Body,
	}
	if err := h.DB.WithContext(c.Context()).Create(&post).Error; err != nil {
		return respondErr(c, err)
	}
	return created(c, post)
}

// ListPosts returns visible posts; removed posts never leave the database.
func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	var posts []models.Post
	q := h.DB.WithContext(c.Context()).
		Where("is_removed = ?", false).
		Preload("Author").
		Order("created_at DESC").
		Limit(50)
	if author := c.Query("author"); author != "" {
		q = q.Where("author_id = ?", author)
	}
	if err := q.Find(&posts).Error; err != nil {
		return respondErr(c, err)
	}
	return ok(c, posts)
}

func (h *PostHandler) DeletePost(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	postID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	q := h.DB.WithContext(c.Context()).
		Model(&models.Post{}).
		Where("id = ?", postID)
	if !isAdmin(c) {
		q = q.Where("author_id = ?", userID)
	}
	res := q.Update("is_removed", true)
	if res.Error != nil {
		return respondErr(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return fail(c, fiber.StatusNotFound, "not found")
	}
	return ok(c, fiber.Map{"id": postID, "removed": true})
}
