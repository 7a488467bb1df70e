package gigflow

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gignest/gignest_backend/internal/models"
)

func TestPlanBanClient(t *testing.T) {
	student := uuid.New()
	badClient := &models.User{ID: uuid.New(), Role: models.RoleClient}

	open := openGig(badClient.ID, 0)
	inProgress := inProgressGig(badClient.ID, student, 2)
	completed := openGig(badClient.ID, 0)
	completed.Status = models.GigStatusCompleted

	plan := PlanBan(badClient, []*models.Gig{open, inProgress, completed}, nil, nil)

	assert.True(t, badClient.IsBanned)
	require.Len(t, plan.ChangedGigs, 2)
	assert.Equal(t, models.GigStatusClosed, open.Status)
	assert.Equal(t, models.GigStatusClosed, inProgress.Status)
	assert.Nil(t, inProgress.SelectedStudentID)
	assert.Equal(t, models.GigStatusCompleted, completed.Status)

	// exactly one notification: the selected student of the in-progress gig
	require.Len(t, plan.Notifications, 1)
	assert.Equal(t, student, plan.Notifications[0].RecipientID)
	assert.Equal(t, models.NotificationGigClosed, plan.Notifications[0].Type)
	assert.Nil(t, plan.RemovePostsOf)
}

func TestPlanBanStudent(t *testing.T) {
	client := uuid.New()
	banned := &models.User{ID: uuid.New(), Role: models.RoleStudent}
	now := time.Now()

	// selected on an in-progress gig with 3 reports, one approved
	active := inProgressGig(client, banned.ID, 3)
	active.Applicants = append(active.Applicants, models.Applicant{StudentID: banned.ID, Status: models.ApplicantStatusAccepted})
	require.NoError(t, SubmitReport(active, banned.ID, 1, "one", nil, now))
	require.NoError(t, ReviewReport(active, client, 1, ReviewApprove, "", now))

	// plus an open gig the student merely applied to
	applied := openGig(client, 0)
	require.NoError(t, Apply(applied, Policy{}, banned.ID, "x", "hi", now))

	plan := PlanBan(banned, nil, []*models.Gig{active}, []*models.Gig{applied})

	assert.True(t, banned.IsBanned)
	require.Len(t, plan.ChangedGigs, 2)

	// the active gig resets fully to open
	assert.Equal(t, models.GigStatusOpen, active.Status)
	assert.Nil(t, active.SelectedStudentID)
	require.Len(t, active.ProgressReports, 3)
	for _, r := range active.ProgressReports {
		assert.Equal(t, models.ReportStatusNone, r.ClientStatus)
		assert.Nil(t, r.Submission)
	}
	assert.Nil(t, active.Applicant(banned.ID))

	// the applied-to gig loses the applicant entry but stays open
	assert.Equal(t, models.GigStatusOpen, applied.Status)
	assert.Nil(t, applied.Applicant(banned.ID))

	// client notified exactly once, posts flagged for removal
	require.Len(t, plan.Notifications, 1)
	assert.Equal(t, client, plan.Notifications[0].RecipientID)
	assert.Equal(t, models.NotificationGigReset, plan.Notifications[0].Type)
	require.NotNil(t, plan.RemovePostsOf)
	assert.Equal(t, banned.ID, *plan.RemovePostsOf)
}

func TestPlanUnbanRestoresNothing(t *testing.T) {
	user := &models.User{ID: uuid.New(), Role: models.RoleClient, IsBanned: true}
	plan := PlanUnban(user)

	assert.False(t, user.IsBanned)
	assert.Empty(t, plan.ChangedGigs)
	assert.Empty(t, plan.Notifications)
	assert.Nil(t, plan.RemovePostsOf)
}
