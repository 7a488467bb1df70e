package errdefs

import (
	"errors"
	"fmt"
)

// Error kinds. Every specific error below wraps exactly one kind so callers
// can branch with errors.Is on either the kind or the specific error.
var (
	ErrNotFound               = errors.New("not found")
	ErrPermissionDenied       = errors.New("permission denied")
	ErrInvalidState           = errors.New("invalid state")
	ErrDuplicate              = errors.New("duplicate")
	ErrValidationFailed       = errors.New("validation failed")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrCascadeFailed          = errors.New("cascade failed")
)

var (
	ErrGigNotFound       = kind(ErrNotFound, "gig not found")
	ErrUserNotFound      = kind(ErrNotFound, "user not found")
	ErrRequestNotFound   = kind(ErrNotFound, "application request not found")
	ErrApplicantNotFound = kind(ErrNotFound, "applicant not found")
	ErrReportNotFound    = kind(ErrNotFound, "progress report not found")

	ErrNotGigOwner        = kind(ErrPermissionDenied, "only the gig owner can do this")
	ErrNotSelectedStudent = kind(ErrPermissionDenied, "only the selected student can do this")
	ErrGateNotApproved    = kind(ErrPermissionDenied, "application request has not been approved")

	ErrNotPending          = kind(ErrInvalidState, "request already resolved")
	ErrGigNotOpen          = kind(ErrInvalidState, "gig is not open")
	ErrOutOfSequence       = kind(ErrInvalidState, "previous report must be approved first")
	ErrNoSubmission        = kind(ErrInvalidState, "report has no submission to review")
	ErrReportsIncomplete   = kind(ErrInvalidState, "not all progress reports are approved")
	ErrWrongStatus         = kind(ErrInvalidState, "gig is in the wrong status for this operation")
	ErrRequestPending      = kind(ErrInvalidState, "a payment request is already pending")
	ErrRequestLimitReached = kind(ErrInvalidState, "payment request limit reached")
	ErrGigClosed           = kind(ErrInvalidState, "gig is closed")
	ErrGigCompleted        = kind(ErrInvalidState, "gig is completed")

	ErrAlreadyRequested     = kind(ErrDuplicate, "application request already exists")
	ErrDuplicateApplication = kind(ErrDuplicate, "student has already applied")
	ErrReviewExists         = kind(ErrDuplicate, "gig has already been reviewed")

	ErrFeedbackRequired = kind(ErrValidationFailed, "feedback is required when rejecting a report")
	ErrInvalidRating    = kind(ErrValidationFailed, "rating must be between 1 and 5")
)

func kind(k error, msg string) error {
	return fmt.Errorf("%s: %w", msg, k)
}
