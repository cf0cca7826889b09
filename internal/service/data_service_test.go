package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/college-erp-api/internal/models"
	appErrors "github.com/noah-isme/college-erp-api/pkg/errors"
)

func newDataService(store *memoryStore) *DataService {
	return NewDataService(store, NewCollectionRegistry(), 100, 1000, zap.NewNop())
}

func TestCollectionRegistryDescriptorsOrder(t *testing.T) {
	descriptors := NewCollectionRegistry().Descriptors()

	require.Len(t, descriptors, 6)
	names := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		names = append(names, d.Name)
	}
	assert.Equal(t, models.CollectionNames, names)
	assert.Equal(t, models.CollectionDescriptor{Name: "leaverequests", DisplayName: "Leave Requests", Description: "Student leave applications", Icon: "calendar"}, descriptors[4])
	assert.Equal(t, "clock", descriptors[5].Icon)
}

func TestCollectionRegistryLookupIsCaseSensitive(t *testing.T) {
	registry := NewCollectionRegistry()

	_, ok := registry.Lookup("Students")
	assert.False(t, ok)
	cfg, ok := registry.Lookup("timetables")
	require.True(t, ok)
	assert.Len(t, cfg.References, 2)
}

func TestDataServiceCollectionsFailsWhenStoreUnreachable(t *testing.T) {
	store := newMemoryStore()
	store.pingErr = errors.New("server selection timeout")

	_, err := newDataService(store).Collections(context.Background())

	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Contains(t, appErr.Error(), "server selection timeout")
}

func TestDataServiceWindow(t *testing.T) {
	svc := NewDataService(newMemoryStore(), nil, 100, 1000, nil)

	cases := []struct {
		limit, skip         string
		wantLimit, wantSkip int
	}{
		{"", "", 100, 0},
		{"abc", "xyz", 100, 0},
		{"0", "-4", 100, 0},
		{"-3", "7", 100, 7},
		{"25", "50", 25, 50},
		{"5000", "0", 1000, 0},
	}
	for _, tc := range cases {
		limit, skip := svc.Window(tc.limit, tc.skip)
		assert.Equal(t, tc.wantLimit, limit, "limit %q", tc.limit)
		assert.Equal(t, tc.wantSkip, skip, "skip %q", tc.skip)
	}
}

func TestDataServicePageUnknownCollection(t *testing.T) {
	page, err := newDataService(newMemoryStore()).Page(context.Background(), "grades", 10, 0)

	assert.Nil(t, page)
	assert.True(t, errors.Is(err, appErrors.ErrCollectionNotFound))
	assert.Equal(t, "Collection grades not found", err.Error())
}

func TestDataServicePageCoursesLimitAndCount(t *testing.T) {
	store := newMemoryStore()
	facultyIDs := store.seed(models.CollectionFaculties, models.Document{"fullName": "Dr. Meena", "employeeId": "FAC-01"})
	store.seed(models.CollectionCourses,
		models.Course{Code: "191CAC701T", FacultyInCharge: facultyIDs[0]}.Document(),
		models.Course{Code: "191CAC702T"}.Document(),
		models.Course{Code: "191CAC703T", FacultyInCharge: "deleted-faculty"}.Document(),
		models.Course{Code: "191CAC704T", FacultyInCharge: facultyIDs[0]}.Document(),
		models.Course{Code: "191CAC705T"}.Document(),
	)
	svc := newDataService(store)

	page, err := svc.Page(context.Background(), models.CollectionCourses, 2, 0)
	require.NoError(t, err)
	require.Len(t, page.Records, 2)
	assert.Equal(t, int64(5), page.TotalCount)
	assert.Equal(t, 2, page.Limit)
	assert.Equal(t, 0, page.Skip)

	// newest first
	assert.Equal(t, "191CAC705T", page.Records[0]["code"])
	assert.Equal(t, models.FacultyNotAssigned, page.Records[0]["facultyName"])
	assert.Equal(t, "191CAC704T", page.Records[1]["code"])
	assert.Equal(t, "Dr. Meena", page.Records[1]["facultyName"])
	faculty, ok := page.Records[1]["facultyInCharge"].(models.Document)
	require.True(t, ok)
	assert.Equal(t, "FAC-01", faculty["employeeId"])

	next, err := svc.Page(context.Background(), models.CollectionCourses, 2, 2)
	require.NoError(t, err)
	require.Len(t, next.Records, 2)
	assert.Equal(t, "191CAC703T", next.Records[0]["code"])
	assert.Nil(t, next.Records[0]["facultyInCharge"])
	assert.Equal(t, models.FacultyNotAssigned, next.Records[0]["facultyName"])

	seen := map[string]bool{}
	for _, doc := range append(page.Records, next.Records...) {
		assert.False(t, seen[doc.ID()], "pages overlap on %s", doc.ID())
		seen[doc.ID()] = true
	}
}

func TestDataServicePageFormatsAttendanceAndLeaves(t *testing.T) {
	store := newMemoryStore()
	studentIDs := store.seed(models.CollectionStudents, models.Student{Roll: 43, FullName: "Ravi"}.Document())
	store.seed(models.CollectionAttendances, models.Document{
		"student":              models.Ref(studentIDs[0]),
		"studentRoll":          43,
		"attendancePercentage": 66.666666,
	})
	handled := time.Date(2024, time.August, 12, 9, 30, 0, 0, time.FixedZone("IST", 19800))
	store.seed(models.CollectionLeaveRequests, models.Document{
		"student":     models.Ref(studentIDs[0]),
		"studentRoll": 43,
		"startDate":   time.Date(2024, time.August, 15, 0, 0, 0, 0, time.UTC),
		"endDate":     "2024-08-17T00:00:00Z",
		"handledAt":   handled,
		"handledBy":   nil,
		"status":      "approved",
	})
	svc := newDataService(store)

	attendance, err := svc.Page(context.Background(), models.CollectionAttendances, 10, 0)
	require.NoError(t, err)
	require.Len(t, attendance.Records, 1)
	assert.Equal(t, 66.67, attendance.Records[0]["attendancePercentage"])
	student := attendance.Records[0]["student"].(models.Document)
	assert.Equal(t, "Ravi", student["fullName"])

	leaves, err := svc.Page(context.Background(), models.CollectionLeaveRequests, 10, 0)
	require.NoError(t, err)
	leave := leaves.Records[0]
	assert.Equal(t, "2024-08-15T00:00:00.000Z", leave["startDate"])
	assert.Equal(t, "2024-08-17T00:00:00.000Z", leave["endDate"])
	assert.Equal(t, "2024-08-12T04:00:00.000Z", leave["handledAt"])
	assert.Nil(t, leave["handledBy"])
}

func TestDataServicePageSurfacesStoreFailure(t *testing.T) {
	store := newMemoryStore()
	store.findErr[models.CollectionStudents] = errors.New("connection reset by peer")

	_, err := newDataService(store).Page(context.Background(), models.CollectionStudents, 10, 0)

	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Contains(t, appErr.Error(), "connection reset by peer")
}

func TestReferenceExpanderTimetableSlots(t *testing.T) {
	store := newMemoryStore()
	courseIDs := store.seed(models.CollectionCourses, models.Document{"code": "191CAC701T", "title": "Cloud Computing"})
	facultyIDs := store.seed(models.CollectionFaculties, models.Document{"fullName": "Dr. Meena"})
	timetable := models.Timetable{DayOfWeek: "Monday", Semester: 7, IsActive: true, Slots: []models.TimeSlot{
		{Period: 1, Type: models.SlotLecture, CourseCode: "191CAC701T", Course: courseIDs[0], Faculty: facultyIDs[0]},
		{Period: 2, Type: models.SlotBreak},
		{Period: 3, Type: models.SlotLab, CourseCode: "191CAC701T", Course: courseIDs[0], Faculty: "gone"},
	}}.Document()
	docs := []models.Document{timetable}
	cfg, _ := NewCollectionRegistry().Lookup(models.CollectionTimetables)

	err := NewReferenceExpander(store).Expand(context.Background(), docs, cfg.References)
	require.NoError(t, err)

	slots := docs[0]["slots"].([]interface{})
	first := slots[0].(map[string]interface{})
	assert.Equal(t, "Cloud Computing", first["course"].(models.Document)["title"])
	assert.Equal(t, "Dr. Meena", first["faculty"].(models.Document)["fullName"])
	_, hasCourse := slots[1].(map[string]interface{})["course"]
	assert.False(t, hasCourse)
	third := slots[2].(map[string]interface{})
	assert.NotNil(t, third["course"])
	assert.Nil(t, third["faculty"])
	assert.Equal(t, 2, store.findByIDsN, "one batched lookup per reference field")
}

func TestFormatCourseKeepsNotAssignedForEmptyName(t *testing.T) {
	doc := formatCourse(models.Document{"facultyInCharge": map[string]interface{}{"fullName": ""}})
	assert.Equal(t, models.FacultyNotAssigned, doc["facultyName"])
}
