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

// inProgressGig returns a gig with a selected student and N report
// placeholders, as DecideApplicant leaves it.
func inProgressGig(clientID, studentID uuid.UUID, reports int) *models.Gig {
	g := openGig(clientID, reports)
	g.Status = models.GigStatusInProgress
	sid := studentID
	g.SelectedStudentID = &sid
	materializeReports(g)
	return g
}

func TestSubmitReportSequencing(t *testing.T) {
	client := uuid.New()
	student := uuid.New()
	now := time.Now()
	g := inProgressGig(client, student, 3)

	// report 2 before report 1 is approved
	err := SubmitReport(g, student, 2, "second", nil, now)
	assert.ErrorIs(t, err, errdefs.ErrOutOfSequence)

	require.NoError(t, SubmitReport(g, student, 1, "first", nil, now))
	assert.Equal(t, models.ReportStatusPendingReview, g.Report(1).ClientStatus)

	// still blocked: report 1 is pending, not approved
	err = SubmitReport(g, student, 2, "second", nil, now)
	assert.ErrorIs(t, err, errdefs.ErrOutOfSequence)

	require.NoError(t, ReviewReport(g, client, 1, ReviewApprove, "", now))
	assert.NoError(t, SubmitReport(g, student, 2, "second", nil, now))
}

func TestSubmitReportGuards(t *testing.T) {
	client := uuid.New()
	student := uuid.New()
	now := time.Now()
	g := inProgressGig(client, student, 2)

	err := SubmitReport(g, uuid.New(), 1, "impostor", nil, now)
	assert.ErrorIs(t, err, errdefs.ErrNotSelectedStudent)

	err = SubmitReport(g, student, 5, "ghost", nil, now)
	assert.ErrorIs(t, err, errdefs.ErrReportNotFound)

	g.Status = models.GigStatusAwaitingPayout
	err = SubmitReport(g, student, 1, "late", nil, now)
	assert.ErrorIs(t, err, errdefs.ErrWrongStatus)
}

func TestResubmissionAfterRejection(t *testing.T) {
	client := uuid.New()
	student := uuid.New()
	now := time.Now()
	g := inProgressGig(client, student, 1)

	require.NoError(t, SubmitReport(g, student, 1, "draft", nil, now))
	require.NoError(t, ReviewReport(g, client, 1, ReviewReject, "missing the footer", now))
	assert.Equal(t, models.ReportStatusRejected, g.Report(1).ClientStatus)
	assert.Equal(t, "missing the footer", g.Report(1).ClientFeedback)

	require.NoError(t, SubmitReport(g, student, 1, "fixed", nil, now.Add(time.Hour)))
	r := g.Report(1)
	assert.Equal(t, models.ReportStatusPendingReview, r.ClientStatus)
	assert.Empty(t, r.ClientFeedback)
	assert.Nil(t, r.ReviewedAt)
	assert.Equal(t, "fixed", r.Submission.Text)
}

func TestReviewReport(t *testing.T) {
	client := uuid.New()
	student := uuid.New()
	now := time.Now()
	g := inProgressGig(client, student, 2)

	err := ReviewReport(g, client, 1, ReviewApprove, "", now)
	assert.ErrorIs(t, err, errdefs.ErrNoSubmission)

	require.NoError(t, SubmitReport(g, student, 1, "work", nil, now))

	err = ReviewReport(g, uuid.New(), 1, ReviewApprove, "", now)
	assert.ErrorIs(t, err, errdefs.ErrNotGigOwner)

	err = ReviewReport(g, client, 1, ReviewReject, "   ", now)
	assert.ErrorIs(t, err, errdefs.ErrFeedbackRequired)

	require.NoError(t, ReviewReport(g, client, 1, ReviewApprove, "", now))
	r := g.Report(1)
	assert.Equal(t, models.ReportStatusApproved, r.ClientStatus)
	assert.Equal(t, ApprovedFeedback, r.ClientFeedback)
	require.NotNil(t, r.ReviewedAt)
}

func TestAllApproved(t *testing.T) {
	client := uuid.New()
	student := uuid.New()
	now := time.Now()

	t.Run("vacuously true with zero reports", func(t *testing.T) {
		g := inProgressGig(client, student, 0)
		assert.True(t, AllApproved(g))
	})

	t.Run("false until every report approved", func(t *testing.T) {
		g := inProgressGig(client, student, 2)
		assert.False(t, AllApproved(g))

		require.NoError(t, SubmitReport(g, student, 1, "one", nil, now))
		require.NoError(t, ReviewReport(g, client, 1, ReviewApprove, "", now))
		assert.False(t, AllApproved(g))

		require.NoError(t, SubmitReport(g, student, 2, "two", nil, now))
		require.NoError(t, ReviewReport(g, client, 2, ReviewApprove, "nice", now))
		assert.True(t, AllApproved(g))
	})

	t.Run("unpopulated placeholders count as incomplete", func(t *testing.T) {
		g := &models.Gig{NumberOfReports: 2}
		assert.False(t, AllApproved(g))
	})
}
