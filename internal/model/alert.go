package model

import "time"

// AlertType identifies what happened.
type AlertType string

// Alert types raised by the engine.
const (
	AlertNewExposure      AlertType = "new_exposure"
	AlertRelisted         AlertType = "re_listed"
	AlertRemovalConfirmed AlertType = "removal_confirmed"
)

// Alert is a fire-and-forget event for the notification surface.
// The engine only creates alerts; reading and dismissing them belongs
// to the collaborating UI layer.
type Alert struct {
	ID          int64     `json:"id"`
	ProfileName string    `json:"profile_name"`
	Type        AlertType `json:"type"`
	Severity    Severity  `json:"severity"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	SourceURL   string    `json:"source_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
