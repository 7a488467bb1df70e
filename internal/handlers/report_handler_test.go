package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSubmitReportFailsWhenUploadDirUnavailable(t *testing.T) {
	// an upload dir nested under a regular file cannot be created
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	uploadDir := filepath.Join(blocker, "uploads")

	h := NewReportHandler(nil, zap.NewNop(), uploadDir, "")
	app := fiber.New()
	app.Post("/gigs/:id/reports/:number", asUser(uuid.New(), "student"), h.SubmitReport)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("text", "first deliverable"))
	fw, err := w.CreateFormFile("files", "report.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("pdf bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/gigs/"+uuid.New().String()+"/reports/1", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
