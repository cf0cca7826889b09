package dto

import "time"

// CreateLeaveRequest holds payload for a new leave application.
type CreateLeaveRequest struct {
	StudentRoll int       `json:"studentRoll" validate:"required,gt=0"`
	StartDate   time.Time `json:"startDate" validate:"required"`
	EndDate     time.Time `json:"endDate" validate:"required"`
	Reason      string    `json:"reason" validate:"required"`
	Comments    string    `json:"comments"`
}

// DecideLeaveRequest approves or rejects a pending leave application.
type DecideLeaveRequest struct {
	Status    string  `json:"status" validate:"required,oneof=approved rejected"`
	HandledBy string  `json:"handledBy" validate:"required"`
	Comments  *string `json:"comments"`
}

// LeaveRequestQuery filters the leave request listing.
type LeaveRequestQuery struct {
	StudentRoll int    `form:"studentRoll"`
	Status      string `form:"status" validate:"omitempty,oneof=pending approved rejected"`
}
