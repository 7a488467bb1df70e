package gigflow

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/gignest/gignest_backend/internal/models"
)

// NotificationDraft is a cascade-produced notification. Cascade notifications
// are persisted inside the cascade batch, unlike ordinary best-effort emits.
type NotificationDraft struct {
	RecipientID uuid.UUID
	Type        models.NotificationType
	Message     string
	GigID       *uuid.UUID
	Link        string
}

// BanPlan is the full set of writes one ban cascade must apply atomically.
// Gigs in ChangedGigs have already been mutated in memory; the executor's
// only job is to commit everything in a single batch.
type BanPlan struct {
	User          *models.User
	ChangedGigs   []*models.Gig
	Notifications []NotificationDraft
	// RemovePostsOf, when set, soft-removes every post by that author.
	RemovePostsOf *uuid.UUID
}

// PlanBan computes the consistency actions for banning a user.
//
// ownedGigs are the user's gigs when they are a client; selectedOn are gigs
// where the user is the selected student; openApplied are open gigs holding
// the user in their applicant list. Callers pass whatever slices apply to the
// user's role; irrelevant ones are nil.
func PlanBan(user *models.User, ownedGigs, selectedOn, openApplied []*models.Gig) *BanPlan {
	plan := &BanPlan{User: user}
	user.IsBanned = true

	if user.Role == models.RoleClient {
		for _, g := range ownedGigs {
			if g.Status != models.GigStatusOpen && g.Status != models.GigStatusInProgress {
				continue
			}
			selected := g.SelectedStudentID
			g.Status = models.GigStatusClosed
			g.SelectedStudentID = nil
			plan.ChangedGigs = append(plan.ChangedGigs, g)
			if selected != nil {
				gid := g.ID
				plan.Notifications = append(plan.Notifications, NotificationDraft{
					RecipientID: *selected,
					Type:        models.NotificationGigClosed,
					Message:     fmt.Sprintf("The gig %q was closed by moderation.", g.Title),
					GigID:       &gid,
					Link:        "/gigs/" + g.ID.String(),
				})
			}
		}
		return plan
	}

	if user.Role == models.RoleStudent {
		for _, g := range selectedOn {
			if g.Status != models.GigStatusInProgress && g.Status != models.GigStatusAwaitingPayout {
				continue
			}
			resetToOpen(g)
			removeApplicant(g, user.ID)
			plan.ChangedGigs = append(plan.ChangedGigs, g)
			gid := g.ID
			plan.Notifications = append(plan.Notifications, NotificationDraft{
				RecipientID: g.ClientID,
				Type:        models.NotificationGigReset,
				Message:     fmt.Sprintf("The selected student on %q was removed by moderation; the gig is open again.", g.Title),
				GigID:       &gid,
				Link:        "/gigs/" + g.ID.String(),
			})
		}
		for _, g := range openApplied {
			if g.Status != models.GigStatusOpen {
				continue
			}
			if removeApplicant(g, user.ID) && !containsGig(plan.ChangedGigs, g.ID) {
				plan.ChangedGigs = append(plan.ChangedGigs, g)
			}
		}
		uid := user.ID
		plan.RemovePostsOf = &uid
	}

	return plan
}

// PlanUnban only flips the flag. Nothing cascaded by the ban is restored:
// closed gigs stay closed and removed applications stay removed.
func PlanUnban(user *models.User) *BanPlan {
	user.IsBanned = false
	return &BanPlan{User: user}
}

func removeApplicant(g *models.Gig, studentID uuid.UUID) bool {
	for i := range g.Applicants {
		if g.Applicants[i].StudentID == studentID {
			g.Applicants = append(g.Applicants[:i], g.Applicants[i+1:]...)
			return true
		}
	}
	return false
}

func containsGig(gigs []*models.Gig, id uuid.UUID) bool {
	for _, g := range gigs {
		if g.ID == id {
			return true
		}
	}
	return false
}
