package dto

import "time"

// RecordAttendanceRequest holds one student's monthly attendance sheet.
type RecordAttendanceRequest struct {
	StudentRoll int                      `json:"studentRoll" validate:"required,gt=0"`
	Month       string                   `json:"month" validate:"required"`
	Year        int                      `json:"year" validate:"required,gte=2000,lte=2100"`
	Entries     []AttendanceEntryRequest `json:"attendance" validate:"required,min=1,dive"`
}

// AttendanceEntryRequest is one marked day.
type AttendanceEntryRequest struct {
	Date   time.Time `json:"date" validate:"required"`
	Status string    `json:"status" validate:"required,oneof=P A DNM"`
}

// AttendanceStatsQuery narrows the attendance statistics.
type AttendanceStatsQuery struct {
	StudentRoll int    `form:"studentRoll"`
	Month       string `form:"month"`
	Year        int    `form:"year"`
}

// AttendanceQuery selects the sheets of one student.
type AttendanceQuery struct {
	StudentRoll int    `form:"studentRoll" validate:"required,gt=0"`
	Month       string `form:"month"`
	Year        int    `form:"year"`
}
