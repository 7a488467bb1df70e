package handlers

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gignest/gignest_backend/internal/gigflow"
	"github.com/gignest/gignest_backend/internal/models"
	gigsvc "github.com/gignest/gignest_backend/internal/services/gig"
)

type ReportHandler struct {
	Svc        *gigsvc.Service
	Log        *zap.Logger
	UploadDir  string
	AppBaseURL string
}

func NewReportHandler(svc *gigsvc.Service, log *zap.Logger, uploadDir, appBaseURL string) *ReportHandler {
	return &ReportHandler{Svc: svc, Log: log, UploadDir: uploadDir, AppBaseURL: appBaseURL}
}

func (h *ReportHandler) reportNumber(c *fiber.Ctx) (int, error) {
	n, err := strconv.Atoi(c.Params("number"))
	if err != nil || n < 1 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid report number")
	}
	return n, nil
}

// SubmitReport accepts the student's deliverable for one checkpoint: a text
// body plus uploaded files and/or pre-existing attachment URLs.
func (h *ReportHandler) SubmitReport(c *fiber.Ctx) error {
	studentID, err := currentUserID(c)
	if err != nil {
		return err
	}
	gigID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	number, err := h.reportNumber(c)
	if err != nil {
		return err
	}

	text := c.FormValue("text")
	var attachments []models.Attachment

	if form, err := c.MultipartForm(); err == nil {
		for _, url := range form.Value["attachment_urls"] {
			if url = strings.TrimSpace(url); url != "" {
				attachments = append(attachments, models.Attachment{URL: url})
			}
		}
		if len(form.File["files"]) > 0 {
			dir := filepath.Join(h.UploadDir, "reports")
			if err := os.MkdirAll(dir, 0755); err != nil {
				h.Log.Error("create report upload dir", zap.String("dir", dir), zap.Error(err))
				return fail(c, fiber.StatusInternalServerError, "failed to store attachments")
			}
		}
		for _, file := range form.File["files"] {
			if file.Size > 25*1024*1024 {
				return fail(c, fiber.StatusBadRequest, "file "+file.Filename+" exceeds 25MB limit")
			}

			ext := filepath.Ext(file.Filename)
			filename := uuid.New().String() + ext
			savePath := filepath.Join(h.UploadDir, "reports", filename)
			if err := c.SaveFile(file, savePath); err != nil {
				h.Log.Error("save report attachment", zap.Error(err))
				return fail(c, fiber.StatusInternalServerError, "failed to store attachments")
			}

			publicPath := "/uploads/reports/" + filename
			if h.AppBaseURL != "" {
				publicPath = strings.TrimRight(h.AppBaseURL, "/") + publicPath
			}
			attachments = append(attachments, models.Attachment{
				URL:  publicPath,
				Name: file.Filename,
				Size: file.Size,
			})
		}
	}

	g, err := h.Svc.SubmitReport(c.Context(), gigID, studentID, number, text, attachments)
	if err != nil {
		return respondErr(c, err)
	}
	return ok(c, g)
}

// ReviewReport records the client's approve/reject verdict.
func (h *ReportHandler) ReviewReport(c *fiber.Ctx) error {
	actorID, err := currentUserID(c)
	if err != nil {
		return err
	}
	gigID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	number, err := h.reportNumber(c)
	if err != nil {
		return err
	}

	var req struct {
		Decision string `json:"decision"` // approve / reject
		Feedback string `json:"feedback"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	decision := gigflow.ReviewDecision(req.Decision)
	if decision != gigflow.ReviewApprove && decision != gigflow.ReviewReject {
		return fail(c, fiber.StatusBadRequest, "decision must be approve or reject")
	}

	g, err := h.Svc.ReviewReport(c.Context(), gigID, actorID, number, decision, req.Feedback)
	if err != nil {
		return respondErr(c, err)
	}
	return ok(c, g)
}
