package gigflow

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gignest/gignest_backend/internal/errdefs"
	"github.com/gignest/gignest_backend/internal/models"
)

func TestClose(t *testing.T) {
	client := uuid.New()
	student := uuid.New()

	t.Run("owner closes an open gig", func(t *testing.T) {
		g := openGig(client, 0)
		require.NoError(t, Close(g, client, false))
		assert.Equal(t, models.GigStatusClosed, g.Status)
	})

	t.Run("closing in-progress clears the selection", func(t *testing.T) {
		g := inProgressGig(client, student, 2)
		require.NoError(t, Close(g, client, false))
		assert.Equal(t, models.GigStatusClosed, g.Status)
		assert.Nil(t, g.SelectedStudentID)
	})

	t.Run("admin may close someone else's gig", func(t *testing.T) {
		g := openGig(client, 0)
		require.NoError(t, Close(g, uuid.New(), true))
		assert.Equal(t, models.GigStatusClosed, g.Status)
	})

	t.Run("non-owner is refused", func(t *testing.T) {
		g := openGig(client, 0)
		err := Close(g, uuid.New(), false)
		assert.ErrorIs(t, err, errdefs.ErrNotGigOwner)
	})

	t.Run("terminal states are final", func(t *testing.T) {
		g := openGig(client, 0)
		g.Status = models.GigStatusClosed
		assert.ErrorIs(t, Close(g, client, false), errdefs.ErrGigClosed)

		g.Status = models.GigStatusCompleted
		assert.ErrorIs(t, Close(g, client, false), errdefs.ErrGigCompleted)

		g.Status = models.GigStatusAwaitingPayout
		assert.ErrorIs(t, Close(g, client, false), errdefs.ErrWrongStatus)
	})
}

func TestFinalizeRelease(t *testing.T) {
	client := uuid.New()
	student := uuid.New()

	g := inProgressGig(client, student, 0)
	err := FinalizeRelease(g)
	assert.ErrorIs(t, err, errdefs.ErrWrongStatus)

	g.Status = models.GigStatusAwaitingPayout
	require.NoError(t, FinalizeRelease(g))
	assert.Equal(t, models.GigStatusCompleted, g.Status)
	// completed keeps the selection for rating and history
	assert.NotNil(t, g.SelectedStudentID)

	err = FinalizeRelease(g)
	assert.ErrorIs(t, err, errdefs.ErrWrongStatus)
}

func TestSetResourceLink(t *testing.T) {
	client := uuid.New()
	g := openGig(client, 0)

	err := SetResourceLink(g, uuid.New(), "https://drive.example/folder")
	assert.ErrorIs(t, err, errdefs.ErrNotGigOwner)

	require.NoError(t, SetResourceLink(g, client, "https://drive.example/folder"))
	assert.Equal(t, "https://drive.example/folder", g.SharedResourceLink)

	g.Status = models.GigStatusClosed
	err = SetResourceLink(g, client, "https://elsewhere.example")
	assert.ErrorIs(t, err, errdefs.ErrGigClosed)
}

func TestResetToOpen(t *testing.T) {
	client := uuid.New()
	student := uuid.New()
	g := inProgressGig(client, student, 3)
	approveAll(t, g, client, student)
	g.PaymentRequestsCount = 2
	g.StudentPaymentRequestPending = true

	resetToOpen(g)

	assert.Equal(t, models.GigStatusOpen, g.Status)
	assert.Nil(t, g.SelectedStudentID)
	require.Len(t, g.ProgressReports, 3)
	for _, r := range g.ProgressReports {
		assert.Equal(t, models.ReportStatusNone, r.ClientStatus)
		assert.Nil(t, r.Submission)
	}
	assert.Zero(t, g.PaymentRequestsCount)
	assert.False(t, g.StudentPaymentRequestPending)
	assert.Nil(t, g.LastPaymentRequestedAt)
}
