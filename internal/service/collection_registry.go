package service

import (
	"github.com/noah-isme/college-erp-api/internal/models"
)

// Formatter reshapes a stored document, after reference expansion, for presentation.
type Formatter func(models.Document) models.Document

// EntityConfig binds one entity kind to its collection, references, formatter and export columns.
type EntityConfig struct {
	Descriptor    models.CollectionDescriptor
	Collection    string
	References    []models.ReferenceField
	Format        Formatter
	ExportColumns []string
}

// CollectionRegistry is the fixed, ordered set of exposed entity kinds.
type CollectionRegistry struct {
	order   []string
	entries map[string]EntityConfig
}

// NewCollectionRegistry returns the registry of the six college collections.
func NewCollectionRegistry() *CollectionRegistry {
	configs := []EntityConfig{
		{
			Descriptor:    models.CollectionDescriptor{Name: models.CollectionStudents, DisplayName: "Students", Description: "Student information and details", Icon: "users"},
			Collection:    models.CollectionStudents,
			ExportColumns: []string{"roll", "fullName", "email", "phone", "isActive"},
		},
		{
			Descriptor:    models.CollectionDescriptor{Name: models.CollectionFaculties, DisplayName: "Faculties", Description: "Faculty and teacher information", Icon: "users"},
			Collection:    models.CollectionFaculties,
			ExportColumns: []string{"employeeId", "fullName", "email", "designation", "subjectsHandled", "isActive"},
		},
		{
			Descriptor: models.CollectionDescriptor{Name: models.CollectionCourses, DisplayName: "Courses", Description: "Course catalog and information", Icon: "book"},
			Collection: models.CollectionCourses,
			References: []models.ReferenceField{
				{Path: "facultyInCharge", Target: models.CollectionFaculties},
			},
			Format:        formatCourse,
			ExportColumns: []string{"code", "title", "credits", "semester", "facultyName", "isActive"},
		},
		{
			Descriptor: models.CollectionDescriptor{Name: models.CollectionAttendances, DisplayName: "Attendance", Description: "Student attendance records", Icon: "calendar"},
			Collection: models.CollectionAttendances,
			References: []models.ReferenceField{
				{Path: "student", Target: models.CollectionStudents},
			},
			Format:        formatAttendance,
			ExportColumns: []string{"studentRoll", "month", "year", "totalDays", "presentDays", "absentDays", "attendancePercentage"},
		},
		{
			Descriptor: models.CollectionDescriptor{Name: models.CollectionLeaveRequests, DisplayName: "Leave Requests", Description: "Student leave applications", Icon: "calendar"},
			Collection: models.CollectionLeaveRequests,
			References: []models.ReferenceField{
				{Path: "student", Target: models.CollectionStudents},
				{Path: "handledBy", Target: models.CollectionFaculties},
			},
			Format:        formatLeaveRequest,
			ExportColumns: []string{"studentRoll", "startDate", "endDate", "totalDays", "reason", "status", "handledAt", "comments"},
		},
		{
			Descriptor: models.CollectionDescriptor{Name: models.CollectionTimetables, DisplayName: "Timetable", Description: "Class schedules and timetables", Icon: "clock"},
			Collection: models.CollectionTimetables,
			References: []models.ReferenceField{
				{Path: "slots.course", Target: models.CollectionCourses},
				{Path: "slots.faculty", Target: models.CollectionFaculties},
			},
			ExportColumns: []string{"dayOfWeek", "semester", "isActive"},
		},
	}

	registry := &CollectionRegistry{entries: make(map[string]EntityConfig, len(configs))}
	for _, cfg := range configs {
		registry.order = append(registry.order, cfg.Descriptor.Name)
		registry.entries[cfg.Descriptor.Name] = cfg
	}
	return registry
}

// Descriptors returns the discovery entries in registry order.
func (r *CollectionRegistry) Descriptors() []models.CollectionDescriptor {
	out := make([]models.CollectionDescriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.entries[name].Descriptor)
	}
	return out
}

// Lookup returns the configuration registered under name. Matching is case-sensitive.
func (r *CollectionRegistry) Lookup(name string) (EntityConfig, bool) {
	cfg, ok := r.entries[name]
	return cfg, ok
}
