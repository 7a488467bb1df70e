// Package gigflow holds the gig lifecycle rules: the application gate, the
// sequential progress-report protocol, payment preconditions and the
// moderation cascade planner. Everything here mutates in-memory Gig records
// and returns errdefs errors; persistence and notifications are the caller's
// job, so the whole package is testable without a database.
package gigflow

// Policy carries the deliberately configurable rules whose defaults mirror
// the platform's original behavior.
type Policy struct {
	// GateEnforced makes Apply require an approved application request.
	GateEnforced bool
	// AutoRejectApplicants rejects all other pending applicants when one
	// is accepted.
	AutoRejectApplicants bool
	// PaymentRequestCap is the per-gig limit on student payment requests.
	PaymentRequestCap int
}

func DefaultPolicy() Policy {
	return Policy{PaymentRequestCap: 5}
}
