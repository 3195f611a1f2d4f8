package events

import "time"

const InterviewLifecycleTopic = "reviews.interview.lifecycle.v1"

const (
	InterviewSubmitted = "interview_submitted"
	InterviewApproved  = "interview_approved"
	InterviewRejected  = "interview_rejected"
	InterviewFlagged   = "interview_flagged"
)

// InterviewLifecycleEvent announces a review status change so
// downstream consumers (page renderers, search indexers) can react.
type InterviewLifecycleEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	InterviewID string    `json:"interview_id"`
	CompanyID   string    `json:"company_id"`
	CompanySlug string    `json:"company_slug,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
