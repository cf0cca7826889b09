package dto

import "time"

// DashboardSummary captures the aggregated dashboard payload.
type DashboardSummary struct {
	Students      int64         `json:"students"`
	Faculty       int64         `json:"faculty"`
	Courses       int64         `json:"courses"`
	Attendance    int64         `json:"attendance"`
	PendingLeaves int64         `json:"pendingLeaves"`
	TotalLeaves   int64         `json:"totalLeaves"`
	RecentLeaves  []RecentLeave `json:"recentLeaves"`
	GeneratedAt   time.Time     `json:"generatedAt"`
}

// RecentLeave is one entry of the dashboard activity feed.
type RecentLeave struct {
	ID          string    `json:"id"`
	StudentRoll int       `json:"studentRoll"`
	Status      string    `json:"status"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"createdAt"`
}
