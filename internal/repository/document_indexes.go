package repository

import (
	"time"

	"github.com/noah-isme/college-erp-api/internal/models"
)

// uniqueIndex describes a uniqueness constraint over top-level document fields.
type uniqueIndex struct {
	Name   string
	Fields []string
}

// uniqueIndexes are the uniqueness rules every store backend enforces.
var uniqueIndexes = map[string][]uniqueIndex{
	models.CollectionStudents: {
		{Name: "students_roll_key", Fields: []string{"roll"}},
	},
	models.CollectionFaculties: {
		{Name: "faculties_employee_id_key", Fields: []string{"employeeId"}},
		{Name: "faculties_email_key", Fields: []string{"email"}},
	},
	models.CollectionCourses: {
		{Name: "courses_code_key", Fields: []string{"code"}},
	},
	models.CollectionAttendances: {
		{Name: "attendances_roll_month_year_key", Fields: []string{"studentRoll", "month", "year"}},
	},
}

// QueryObserver receives the duration of every store round trip, labelled by operation.
type QueryObserver func(label string, duration time.Duration)

func observe(observer QueryObserver, label string, start time.Time) {
	if observer == nil {
		return
	}
	observer(label, time.Since(start))
}
