package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/college-erp-api/internal/dto"
	"github.com/noah-isme/college-erp-api/internal/models"
	appErrors "github.com/noah-isme/college-erp-api/pkg/errors"
)

func newTimetableFixture() (*memoryStore, *TimetableService, string, string) {
	store := newMemoryStore()
	courseIDs := store.seed(models.CollectionCourses, models.Document{"code": "191CAC701T", "title": "Cloud Computing"})
	facultyIDs := store.seed(models.CollectionFaculties, models.Document{"fullName": "Dr. Meena"})
	svc := NewTimetableService(store, newDataService(store), nil, nil, nil)
	return store, svc, courseIDs[0], facultyIDs[0]
}

func TestTimetableCreateValidatesSlots(t *testing.T) {
	_, svc, courseID, facultyID := newTimetableFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateTimetableRequest{DayOfWeek: "Funday", Semester: 7, Slots: []dto.TimeSlotRequest{{Period: 1, Type: "break"}}})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	_, err = svc.Create(ctx, dto.CreateTimetableRequest{DayOfWeek: "Monday", Semester: 7, Slots: []dto.TimeSlotRequest{{Period: 1, Type: "lecture"}}})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
	assert.Contains(t, err.Error(), "period 1 requires a courseCode")

	_, err = svc.Create(ctx, dto.CreateTimetableRequest{DayOfWeek: "Monday", Semester: 7, Slots: []dto.TimeSlotRequest{
		{Period: 1, Type: "lecture", CourseCode: "191CAC701T", Course: courseID, Faculty: "ghost"},
	}})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	created, err := svc.Create(ctx, dto.CreateTimetableRequest{DayOfWeek: "Monday", Semester: 7, Slots: []dto.TimeSlotRequest{
		{Period: 1, Type: "lecture", CourseCode: "191CAC701T", Course: courseID, Faculty: facultyID, Room: "A-101"},
		{Period: 2, Type: "break"},
	}})
	require.NoError(t, err)
	assert.Equal(t, true, created["isActive"])
	assert.Len(t, created["slots"], 2)
}

func TestTimetableDayExpandsSlots(t *testing.T) {
	_, svc, courseID, facultyID := newTimetableFixture()
	ctx := context.Background()

	_, err := svc.Day(ctx, dto.TimetableQuery{DayOfWeek: "Tuesday", Semester: 7})
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))

	_, err = svc.Create(ctx, dto.CreateTimetableRequest{DayOfWeek: "Tuesday", Semester: 7, Slots: []dto.TimeSlotRequest{
		{Period: 1, Type: "lab", CourseCode: "191CAC701T", Course: courseID, Faculty: facultyID},
	}})
	require.NoError(t, err)

	day, err := svc.Day(ctx, dto.TimetableQuery{DayOfWeek: "Tuesday", Semester: 7})
	require.NoError(t, err)
	slots := day["slots"].([]interface{})
	require.Len(t, slots, 1)
	slot := slots[0].(map[string]interface{})
	assert.Equal(t, "Cloud Computing", slot["course"].(models.Document)["title"])
	assert.Equal(t, "Dr. Meena", slot["faculty"].(models.Document)["fullName"])
}

func TestTimetableWeeklyKeepsNewestPerDay(t *testing.T) {
	store, svc, _, _ := newTimetableFixture()
	store.seed(models.CollectionTimetables,
		models.Timetable{DayOfWeek: "Monday", Semester: 7, IsActive: true, Slots: []models.TimeSlot{{Period: 1, Type: models.SlotBreak, Room: "old"}}}.Document(),
		models.Timetable{DayOfWeek: "Monday", Semester: 7, IsActive: true, Slots: []models.TimeSlot{{Period: 1, Type: models.SlotBreak, Room: "new"}}}.Document(),
		models.Timetable{DayOfWeek: "Friday", Semester: 7, IsActive: true}.Document(),
		models.Timetable{DayOfWeek: "Friday", Semester: 5, IsActive: true}.Document(),
		models.Timetable{DayOfWeek: "Saturday", Semester: 7, IsActive: false}.Document(),
	)

	weekly, err := svc.Weekly(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, weekly, 2)
	monday := weekly["Monday"]["slots"].([]interface{})
	assert.Equal(t, "new", monday[0].(map[string]interface{})["room"])
	assert.Contains(t, weekly, "Friday")

	_, err = svc.Weekly(context.Background(), 0)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}
