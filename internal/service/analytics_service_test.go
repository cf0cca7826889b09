package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/college-erp-api/internal/dto"
	"github.com/noah-isme/college-erp-api/internal/models"
	appErrors "github.com/noah-isme/college-erp-api/pkg/errors"
)

type analyticsFixture struct {
	store   *memoryStore
	faculty []string
}

func newAnalyticsFixture() analyticsFixture {
	store := newMemoryStore()
	store.seed(models.CollectionStudents,
		models.Student{Roll: 1, FullName: "Asha", IsActive: true}.Document(),
		models.Student{Roll: 15, FullName: "Kiran", IsActive: true}.Document(),
		models.Student{Roll: 43, FullName: "Ravi", IsActive: false}.Document(),
	)
	faculty := store.seed(models.CollectionFaculties,
		models.Document{"fullName": "Dr. Meena", "isActive": true},
		models.Document{"fullName": "Prof. Arun", "isActive": true},
	)
	store.seed(models.CollectionCourses,
		models.Course{Code: "CS1", Title: "Networks", Credits: 4, Semester: 7, FacultyInCharge: faculty[0], IsActive: true}.Document(),
		models.Course{Code: "CS2", Title: "Compilers", Credits: 3, Semester: 7, FacultyInCharge: faculty[1], IsActive: true}.Document(),
		models.Course{Code: "CS3", Title: "Cloud", Credits: 3, Semester: 7, FacultyInCharge: faculty[0], IsActive: true}.Document(),
		models.Course{Code: "CS4", Title: "Archived", Credits: 2, Semester: 5, FacultyInCharge: faculty[1], IsActive: false}.Document(),
		models.Course{Code: "CS5", Title: "Elective", Credits: 2, Semester: 7, IsActive: true}.Document(),
	)
	store.seed(models.CollectionAttendances,
		models.Document{"studentRoll": 1, "month": "May 2025", "year": 2025, "attendancePercentage": 95.0},
		models.Document{"studentRoll": 15, "month": "May 2025", "year": 2025, "attendancePercentage": 60.456},
		models.Document{"studentRoll": 43, "month": "May 2025", "year": 2025, "attendancePercentage": 75.0},
		models.Document{"studentRoll": 99, "month": "May 2025", "year": 2025, "attendancePercentage": 10.0},
	)
	store.seed(models.CollectionLeaveRequests,
		models.Document{"studentRoll": 1, "status": "approved", "startDate": time.Date(2024, time.August, 15, 0, 0, 0, 0, time.UTC)},
		models.Document{"studentRoll": 15, "status": "pending", "startDate": time.Date(2024, time.August, 28, 0, 0, 0, 0, time.UTC)},
		models.Document{"studentRoll": 43, "status": "rejected", "startDate": "2024-09-02T00:00:00Z"},
	)
	store.seed(models.CollectionTimetables,
		models.Timetable{DayOfWeek: "Monday", Semester: 7, IsActive: true, Slots: []models.TimeSlot{
			{Period: 1, Type: models.SlotLecture, CourseCode: "CS1", Faculty: faculty[0], Room: "A101"},
			{Period: 1, Type: models.SlotLab, CourseCode: "CS2", Faculty: faculty[0], Room: "A101"},
			{Period: 2, Type: models.SlotBreak},
		}}.Document(),
		models.Timetable{DayOfWeek: "Tuesday", Semester: 7, IsActive: false, Slots: []models.TimeSlot{
			{Period: 1, Type: models.SlotLecture, CourseCode: "CS1", Room: "B2"},
			{Period: 1, Type: models.SlotLecture, CourseCode: "CS2", Room: "B2"},
		}}.Document(),
	)
	return analyticsFixture{store: store, faculty: faculty}
}

func TestAnalyticsOverview(t *testing.T) {
	svc := NewAnalyticsService(newAnalyticsFixture().store, nil, 0, nil)

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dto.EntityBreakdown{Total: 3, Active: 2, Inactive: 1}, overview.Students)
	assert.Equal(t, dto.EntityBreakdown{Total: 2, Active: 2, Inactive: 0}, overview.Faculty)
	assert.Equal(t, dto.EntityBreakdown{Total: 5, Active: 4, Inactive: 1}, overview.Courses)
	assert.Equal(t, int64(4), overview.AttendanceRecords)
	assert.Equal(t, dto.LeaveBreakdown{Total: 3, Pending: 1, Approved: 1, Rejected: 1}, overview.LeaveRequests)
	assert.Equal(t, int64(1), overview.ActiveTimetables)
}

func TestAnalyticsOverviewSurfacesStoreFailure(t *testing.T) {
	fixture := newAnalyticsFixture()
	fixture.store.countErr[models.CollectionCourses] = errors.New("connection reset")

	_, err := NewAnalyticsService(fixture.store, nil, 0, nil).Overview(context.Background())

	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Contains(t, appErr.Error(), "connection reset")
}

func TestAnalyticsLowAttendance(t *testing.T) {
	svc := NewAnalyticsService(newAnalyticsFixture().store, nil, 75, nil)
	ctx := context.Background()

	low, err := svc.LowAttendance(ctx, dto.LowAttendanceQuery{})
	require.NoError(t, err)
	assert.Equal(t, []dto.LowAttendanceRecord{{Roll: 15, Name: "Kiran", Percentage: 60.46, Month: "May 2025", Year: 2025}}, low)

	raised, err := svc.LowAttendance(ctx, dto.LowAttendanceQuery{Threshold: 80})
	require.NoError(t, err)
	require.Len(t, raised, 2)
	assert.Equal(t, 43, raised[0].Roll)

	_, err = svc.LowAttendance(ctx, dto.LowAttendanceQuery{Threshold: 120})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestAnalyticsFacultyWorkload(t *testing.T) {
	fixture := newAnalyticsFixture()
	svc := NewAnalyticsService(fixture.store, nil, 0, nil)

	workload, err := svc.FacultyWorkload(context.Background())
	require.NoError(t, err)
	require.Len(t, workload, 2)
	assert.Equal(t, fixture.faculty[0], workload[0].FacultyID)
	assert.Equal(t, "Dr. Meena", workload[0].Name)
	assert.Equal(t, 2, workload[0].CoursesCount)
	assert.ElementsMatch(t, []dto.CourseRef{{Code: "CS1", Title: "Networks"}, {Code: "CS3", Title: "Cloud"}}, workload[0].Courses)
	assert.Equal(t, "Prof. Arun", workload[1].Name)
	assert.Equal(t, []dto.CourseRef{{Code: "CS2", Title: "Compilers"}}, workload[1].Courses)
}

func TestAnalyticsCourseEnrollment(t *testing.T) {
	svc := NewAnalyticsService(newAnalyticsFixture().store, nil, 0, nil)

	courses, err := svc.CourseEnrollment(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 4)
	assert.Equal(t, dto.CourseEnrollment{Code: "CS5", Title: "Elective", Semester: 7, Credits: 2, FacultyName: models.FacultyNotAssigned}, courses[0])
	assert.Equal(t, "Dr. Meena", courses[1].FacultyName)
	for _, course := range courses {
		assert.NotEqual(t, "CS4", course.Code)
	}
}

func TestAnalyticsLeaveTrends(t *testing.T) {
	svc := NewAnalyticsService(newAnalyticsFixture().store, nil, 0, nil)

	trends, err := svc.LeaveTrends(context.Background())
	require.NoError(t, err)
	require.Len(t, trends, 2)
	assert.Equal(t, dto.LeaveTrend{Total: 2, Pending: 1, Approved: 1}, *trends["2024-08"])
	assert.Equal(t, dto.LeaveTrend{Total: 1, Rejected: 1}, *trends["2024-09"])
}

func TestAnalyticsTimetableConflicts(t *testing.T) {
	fixture := newAnalyticsFixture()
	svc := NewAnalyticsService(fixture.store, nil, 0, nil)

	conflicts, err := svc.TimetableConflicts(context.Background())
	require.NoError(t, err)
	require.Len(t, conflicts, 2)
	assert.Equal(t, dto.TimetableConflict{
		Day: "Monday", Semester: 7, Period: 1, Room: "A101",
		Conflict: "Room A101 used in multiple slots at period 1",
	}, conflicts[0])
	assert.Equal(t, fixture.faculty[0], conflicts[1].Faculty)
	assert.Equal(t, "Faculty "+fixture.faculty[0]+" assigned to multiple slots at period 1", conflicts[1].Conflict)
}
