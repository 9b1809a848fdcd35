package dto

import "github.com/pratik0133/alumni-connect-api/internal/models"

// EventsResponse partitions events around the current time.
type EventsResponse struct {
	Upcoming []models.Event `json:"upcoming"`
	Past     []models.Event `json:"past"`
}

// DirectoryResponse carries matched alumni plus the filter facets.
type DirectoryResponse struct {
	Alumni []models.UserInfo      `json:"alumni"`
	Facets models.DirectoryFacets `json:"facets"`
}

// ManageStoriesResponse splits stories by publication state for moderation.
type ManageStoriesResponse struct {
	Pending   []models.Story `json:"pending"`
	Published []models.Story `json:"published"`
}

// BootstrapResult reports the outcome of database initialization.
type BootstrapResult struct {
	Message      string `json:"message"`
	AdminCreated bool   `json:"admin_created"`
}

// PendingApprovalResponse reports the caller's approval state together with
// the destination hint the presentation layer should follow.
type PendingApprovalResponse struct {
	IsApproved  bool   `json:"is_approved"`
	Destination string `json:"destination"`
}
