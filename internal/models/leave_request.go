package models

import "time"

// LeaveStatus is the lifecycle state of a leave request.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// CanTransitionTo reports whether a request in status s may move to next.
// Only pending requests are decided, and only into a terminal state.
func (s LeaveStatus) CanTransitionTo(next LeaveStatus) bool {
	return s == LeavePending && (next == LeaveApproved || next == LeaveRejected)
}

// LeaveRequest is a student's application for leave.
type LeaveRequest struct {
	Student     string      `json:"student"`
	StudentRoll int         `json:"studentRoll"`
	StartDate   time.Time   `json:"startDate"`
	EndDate     time.Time   `json:"endDate"`
	Reason      string      `json:"reason"`
	Status      LeaveStatus `json:"status"`
	HandledBy   string      `json:"handledBy,omitempty"`
	HandledAt   *time.Time  `json:"handledAt,omitempty"`
	TotalDays   int         `json:"totalDays"`
	Comments    string      `json:"comments"`
}

// InclusiveDays counts calendar days from start to end, both included.
func InclusiveDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}

// Document returns the stored form of the leave request.
func (l LeaveRequest) Document() Document {
	var handledAt interface{}
	if l.HandledAt != nil {
		handledAt = l.HandledAt.UTC()
	}
	return Document{
		"student":     RefOrNil(l.Student),
		"studentRoll": l.StudentRoll,
		"startDate":   l.StartDate.UTC(),
		"endDate":     l.EndDate.UTC(),
		"reason":      l.Reason,
		"status":      string(l.Status),
		"handledBy":   RefOrNil(l.HandledBy),
		"handledAt":   handledAt,
		"totalDays":   l.TotalDays,
		"comments":    l.Comments,
	}
}
