package models

import (
	"math"
	"time"
)

// AttendanceStatus is the stored code of a daily mark.
type AttendanceStatus string

const (
	AttendancePresent   AttendanceStatus = "P"
	AttendanceAbsent    AttendanceStatus = "A"
	AttendanceDoNotMark AttendanceStatus = "DNM"
)

// AttendanceEntry is one marked day.
type AttendanceEntry struct {
	Date   time.Time        `json:"date"`
	Status AttendanceStatus `json:"status"`
}

// Attendance is the monthly attendance sheet of one student.
type Attendance struct {
	Student              string            `json:"student"`
	StudentRoll          int               `json:"studentRoll"`
	Month                string            `json:"month"`
	Year                 int               `json:"year"`
	Entries              []AttendanceEntry `json:"attendance"`
	TotalDays            int               `json:"totalDays"`
	PresentDays          int               `json:"presentDays"`
	AbsentDays           int               `json:"absentDays"`
	AttendancePercentage float64           `json:"attendancePercentage"`
}

// Tally derives the day counters and the rounded percentage from the entries.
func (a *Attendance) Tally() {
	a.TotalDays = len(a.Entries)
	a.PresentDays, a.AbsentDays = 0, 0
	for _, entry := range a.Entries {
		switch entry.Status {
		case AttendancePresent:
			a.PresentDays++
		case AttendanceAbsent:
			a.AbsentDays++
		}
	}
	a.AttendancePercentage = 0
	if a.TotalDays > 0 {
		a.AttendancePercentage = RoundTo2(float64(a.PresentDays) / float64(a.TotalDays) * 100)
	}
}

// Document returns the stored form of the attendance sheet.
func (a Attendance) Document() Document {
	entries := make([]interface{}, 0, len(a.Entries))
	for _, entry := range a.Entries {
		entries = append(entries, map[string]interface{}{
			"date":   entry.Date.UTC(),
			"status": string(entry.Status),
		})
	}
	return Document{
		"student":              RefOrNil(a.Student),
		"studentRoll":          a.StudentRoll,
		"month":                a.Month,
		"year":                 a.Year,
		"attendance":           entries,
		"totalDays":            a.TotalDays,
		"presentDays":          a.PresentDays,
		"absentDays":           a.AbsentDays,
		"attendancePercentage": a.AttendancePercentage,
	}
}

// AttendanceStats summarises attendance sheets matching a filter.
type AttendanceStats struct {
	TotalStudents     int                    `json:"totalStudents"`
	TotalDays         int                    `json:"totalDays"`
	TotalPresent      int                    `json:"totalPresent"`
	OverallPercentage float64                `json:"overallPercentage"`
	LowAttendance     []LowAttendanceStudent `json:"lowAttendanceStudents"`
}

// LowAttendanceStudent is one sheet under the configured threshold.
type LowAttendanceStudent struct {
	Roll       int     `json:"roll"`
	Name       string  `json:"name"`
	Month      string  `json:"month"`
	Percentage float64 `json:"percentage"`
}

// RoundTo2 rounds half away from zero to two decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
