package dto

import "github.com/pratik0133/alumni-connect-api/internal/models"

// AdminDashboardResponse aggregates the headline admin numbers.
type AdminDashboardResponse struct {
	PendingUsers   int     `json:"pending_users"`
	TotalDonations float64 `json:"total_donations"`
	ActiveJobs     int     `json:"active_jobs"`
	TotalAlumni    int     `json:"total_alumni"`
}

// AlumniDashboardResponse summarises the signed-in member's activity.
type AlumniDashboardResponse struct {
	DonationsCount int            `json:"donations_count"`
	JobsCount      int            `json:"jobs_count"`
	UpcomingEvents []models.Event `json:"upcoming_events"`
}

// HomeResponse is the public landing payload: a handful of featured
// stories and upcoming events.
type HomeResponse struct {
	FeaturedStories []models.Story `json:"featured_stories"`
	UpcomingEvents  []models.Event `json:"upcoming_events"`
}
