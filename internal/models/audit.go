package models

import "time"

// Audit actions recorded against admin and auth activity.
const (
	AuditActionLogin        = "LOGIN"
	AuditActionLogout       = "LOGOUT"
	AuditActionRegister     = "REGISTER"
	AuditActionApproveUser  = "APPROVE_USER"
	AuditActionCreateEvent  = "CREATE_EVENT"
	AuditActionPublishStory = "PUBLISH_STORY"
	AuditActionFeatureStory = "FEATURE_STORY"
	AuditActionExportReport = "EXPORT_REPORT"
)

// AuditLog is an append-only record of a notable action.
type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	UserID     *string   `db:"user_id" json:"user_id,omitempty"`
	Action     string    `db:"action" json:"action"`
	Resource   string    `db:"resource" json:"resource"`
	ResourceID *string   `db:"resource_id" json:"resource_id,omitempty"`
	NewValues  []byte    `db:"new_values" json:"new_values,omitempty"`
	IPAddress  string    `db:"ip_address" json:"ip_address,omitempty"`
	UserAgent  string    `db:"user_agent" json:"user_agent,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
