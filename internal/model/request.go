package model

import "time"

// RequestStatus is the lifecycle state of a removal request.
//
// The graph is pending -> submitted -> completed, with failed and
// requires_action reachable from submitted. completed and failed are
// terminal; everything else counts as active for the one-active-
// request-per-exposure guard.
type RequestStatus string

// Removal request statuses.
const (
	RequestPending        RequestStatus = "pending"
	RequestSubmitted      RequestStatus = "submitted"
	RequestRequiresAction RequestStatus = "requires_action"
	RequestCompleted      RequestStatus = "completed"
	RequestFailed         RequestStatus = "failed"
)

// Terminal reports whether the status admits no further transitions.
func (s RequestStatus) Terminal() bool {
	return s == RequestCompleted || s == RequestFailed
}

// requestTransitions enumerates the legal status moves.
var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestPending:        {RequestSubmitted, RequestFailed},
	RequestSubmitted:      {RequestCompleted, RequestFailed, RequestRequiresAction},
	RequestRequiresAction: {RequestCompleted, RequestFailed, RequestSubmitted},
}

// CanTransition reports whether moving from s to next is legal.
// Notably, completed is never reachable directly from pending.
func (s RequestStatus) CanTransition(next RequestStatus) bool {
	for _, t := range requestTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// RequestMethod records how a removal request was actually delivered.
type RequestMethod string

// Delivery methods recorded on requests.
const (
	MethodAutoEmail    RequestMethod = "auto_email"
	MethodAutoForm     RequestMethod = "auto_form"
	MethodManualAction RequestMethod = "manual"
)

// RemovalRequest tracks an opt-out request from creation to completion.
// Requests are never hard-deleted; failed and completed rows remain as
// an audit trail.
type RemovalRequest struct {
	ID          int64  `json:"id"`
	ProfileName string `json:"profile_name"`

	ExposureID int64  `json:"exposure_id"`
	SourceID   int64  `json:"source_id,omitempty"`
	SourceName string `json:"source_name"`

	// RequestType is "opt_out" for everything this engine files today;
	// the column exists so GDPR/CCPA access requests can share the
	// table later.
	RequestType string `json:"request_type"`

	Status     RequestStatus `json:"status"`
	MethodUsed RequestMethod `json:"method_used,omitempty"`

	// Instructions holds rendered manual steps when automation was not
	// possible (or as a record of what was sent).
	Instructions       string `json:"instructions,omitempty"`
	RequiresUserAction bool   `json:"requires_user_action"`

	// Confirmation is a confirmation/reference token reported by the
	// source, when one exists.
	Confirmation string `json:"confirmation,omitempty"`

	Notes string `json:"notes,omitempty"`

	SubmittedAt        *time.Time `json:"submitted_at,omitempty"`
	ExpectedCompletion *time.Time `json:"expected_completion,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
