package gigflow

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gignest/gignest_backend/internal/errdefs"
	"github.com/gignest/gignest_backend/internal/models"
)

// approveAll walks the happy path through every report.
func approveAll(t *testing.T, g *models.Gig, client, student uuid.UUID) {
	t.Helper()
	now := time.Now()
	for n := 1; n <= g.NumberOfReports; n++ {
		require.NoError(t, SubmitReport(g, student, n, "work", nil, now))
		require.NoError(t, ReviewReport(g, client, n, ReviewApprove, "", now))
	}
}

func TestRecordClientPayment(t *testing.T) {
	client := uuid.New()
	student := uuid.New()

	t.Run("blocked until all reports approved", func(t *testing.T) {
		g := inProgressGig(client, student, 2)
		err := RecordClientPayment(g, client)
		assert.ErrorIs(t, err, errdefs.ErrReportsIncomplete)
	})

	t.Run("moves to awaiting_payout and clears the nag", func(t *testing.T) {
		g := inProgressGig(client, student, 1)
		approveAll(t, g, client, student)
		g.StudentPaymentRequestPending = true

		require.NoError(t, RecordClientPayment(g, client))
		assert.Equal(t, models.GigStatusAwaitingPayout, g.Status)
		assert.False(t, g.StudentPaymentRequestPending)

		// recording again finds the wrong status
		err := RecordClientPayment(g, client)
		assert.ErrorIs(t, err, errdefs.ErrWrongStatus)
	})

	t.Run("only the owner pays", func(t *testing.T) {
		g := inProgressGig(client, student, 0)
		err := RecordClientPayment(g, student)
		assert.ErrorIs(t, err, errdefs.ErrNotGigOwner)
	})
}

func TestRequestPaymentThrottle(t *testing.T) {
	client := uuid.New()
	student := uuid.New()
	p := DefaultPolicy()
	now := time.Now()

	g := inProgressGig(client, student, 1)
	approveAll(t, g, client, student)

	for i := 1; i <= p.PaymentRequestCap; i++ {
		require.NoError(t, RequestPayment(g, p, student, now), "request %d", i)
		assert.Equal(t, i, g.PaymentRequestsCount)
		assert.True(t, g.StudentPaymentRequestPending)

		// a second request while one is outstanding is refused
		err := RequestPayment(g, p, student, now)
		assert.ErrorIs(t, err, errdefs.ErrRequestPending)

		// client acknowledging resets the pending flag
		g.StudentPaymentRequestPending = false
	}

	// the cap itself: request 6 fails even with nothing outstanding
	err := RequestPayment(g, p, student, now)
	assert.ErrorIs(t, err, errdefs.ErrRequestLimitReached)
	assert.Equal(t, p.PaymentRequestCap, g.PaymentRequestsCount)
}

func TestRequestPaymentGuards(t *testing.T) {
	client := uuid.New()
	student := uuid.New()
	p := DefaultPolicy()
	now := time.Now()

	g := inProgressGig(client, student, 1)
	err := RequestPayment(g, p, student, now)
	assert.ErrorIs(t, err, errdefs.ErrReportsIncomplete)

	approveAll(t, g, client, student)
	err = RequestPayment(g, p, uuid.New(), now)
	assert.ErrorIs(t, err, errdefs.ErrNotSelectedStudent)

	g.Status = models.GigStatusAwaitingPayout
	err = RequestPayment(g, p, student, now)
	assert.ErrorIs(t, err, errdefs.ErrWrongStatus)
}
