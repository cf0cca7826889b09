package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/college-erp-api/internal/dto"
	"github.com/noah-isme/college-erp-api/internal/models"
	appErrors "github.com/noah-isme/college-erp-api/pkg/errors"
)

func entries(statuses ...string) []dto.AttendanceEntryRequest {
	out := make([]dto.AttendanceEntryRequest, 0, len(statuses))
	for i, status := range statuses {
		out = append(out, dto.AttendanceEntryRequest{
			Date:   time.Date(2025, time.June, i+1, 0, 0, 0, 0, time.UTC),
			Status: status,
		})
	}
	return out
}

func TestAttendanceServiceRecordDerivesCounters(t *testing.T) {
	store := newMemoryStore()
	studentIDs := store.seed(models.CollectionStudents, models.Student{Roll: 43, FullName: "Ravi"}.Document())
	listener := &countingListener{}
	svc := NewAttendanceService(store, nil, nil, listener, 0, nil)

	doc, err := svc.Record(context.Background(), dto.RecordAttendanceRequest{
		StudentRoll: 43, Month: "June 2025", Year: 2025,
		Entries: entries("P", "A", "P", "DNM", "P", "P"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.Ref(studentIDs[0]), doc["student"])
	assert.Equal(t, 6, doc["totalDays"])
	assert.Equal(t, 4, doc["presentDays"])
	assert.Equal(t, 1, doc["absentDays"])
	assert.Equal(t, 66.67, doc["attendancePercentage"])
	assert.Equal(t, 1, listener.calls)
}

func TestAttendanceServiceRecordReplacesExistingMonth(t *testing.T) {
	store := newMemoryStore()
	store.seed(models.CollectionStudents, models.Student{Roll: 43}.Document())
	svc := NewAttendanceService(store, nil, nil, nil, 0, nil)
	ctx := context.Background()
	req := dto.RecordAttendanceRequest{StudentRoll: 43, Month: "June 2025", Year: 2025, Entries: entries("A", "A")}

	first, err := svc.Record(ctx, req)
	require.NoError(t, err)
	req.Entries = entries("P", "P")
	second, err := svc.Record(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first.ID(), second.ID())
	assert.Equal(t, 100.0, second["attendancePercentage"])
	total, _ := store.Count(ctx, models.CollectionAttendances, nil)
	assert.Equal(t, int64(1), total)
}

func TestAttendanceServiceRecordUnknownStudent(t *testing.T) {
	svc := NewAttendanceService(newMemoryStore(), nil, nil, nil, 0, nil)

	_, err := svc.Record(context.Background(), dto.RecordAttendanceRequest{
		StudentRoll: 7, Month: "June 2025", Year: 2025, Entries: entries("P"),
	})
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestAttendanceServiceRecordRejectsUnknownStatus(t *testing.T) {
	svc := NewAttendanceService(newMemoryStore(), nil, nil, nil, 0, nil)

	_, err := svc.Record(context.Background(), dto.RecordAttendanceRequest{
		StudentRoll: 7, Month: "June 2025", Year: 2025, Entries: entries("Late"),
	})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestAttendanceServiceStats(t *testing.T) {
	store := newMemoryStore()
	store.seed(models.CollectionStudents,
		models.Student{Roll: 1, FullName: "Asha"}.Document(),
		models.Student{Roll: 43, FullName: "Ravi"}.Document(),
	)
	store.seed(models.CollectionAttendances,
		models.Document{"studentRoll": 1, "month": "May 2025", "year": 2025, "totalDays": 20, "presentDays": 19, "attendancePercentage": 95.0},
		models.Document{"studentRoll": 43, "month": "May 2025", "year": 2025, "totalDays": 20, "presentDays": 12, "attendancePercentage": 60.0},
		models.Document{"studentRoll": 43, "month": "June 2025", "year": 2025, "totalDays": 10, "presentDays": 9, "attendancePercentage": 90.0},
	)
	svc := NewAttendanceService(store, nil, nil, nil, 75, nil)

	stats, err := svc.Stats(context.Background(), dto.AttendanceStatsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalStudents)
	assert.Equal(t, 50, stats.TotalDays)
	assert.Equal(t, 40, stats.TotalPresent)
	assert.Equal(t, 80.0, stats.OverallPercentage)
	require.Len(t, stats.LowAttendance, 1)
	assert.Equal(t, models.LowAttendanceStudent{Roll: 43, Name: "Ravi", Month: "May 2025", Percentage: 60}, stats.LowAttendance[0])

	assert.Equal(t, attendanceSheetLimit, store.lastFind[models.CollectionAttendances].Limit)

	filtered, err := svc.Stats(context.Background(), dto.AttendanceStatsQuery{Month: "June 2025"})
	require.NoError(t, err)
	assert.Equal(t, 1, filtered.TotalStudents)
	assert.Empty(t, filtered.LowAttendance)
}

func TestAttendanceServiceListsSheetsOfOneStudent(t *testing.T) {
	store := newMemoryStore()
	studentIDs := store.seed(models.CollectionStudents, models.Student{Roll: 43, FullName: "Ravi"}.Document())
	store.seed(models.CollectionAttendances,
		models.Document{"student": models.Ref(studentIDs[0]), "studentRoll": 43, "month": "May 2025", "year": 2025, "attendancePercentage": 66.666666},
		models.Document{"student": models.Ref(studentIDs[0]), "studentRoll": 43, "month": "June 2025", "year": 2025, "attendancePercentage": 90.0},
		models.Document{"studentRoll": 1, "month": "June 2025", "year": 2025, "attendancePercentage": 50.0},
	)
	svc := NewAttendanceService(store, newDataService(store), nil, nil, 0, nil)
	ctx := context.Background()

	sheets, err := svc.List(ctx, dto.AttendanceQuery{StudentRoll: 43})
	require.NoError(t, err)
	require.Len(t, sheets, 2)
	assert.Equal(t, "June 2025", sheets[0]["month"])
	assert.Equal(t, 66.67, sheets[1]["attendancePercentage"])
	assert.Equal(t, "Ravi", sheets[1]["student"].(models.Document)["fullName"])
	assert.Equal(t, attendanceSheetLimit, store.lastFind[models.CollectionAttendances].Limit)

	may, err := svc.List(ctx, dto.AttendanceQuery{StudentRoll: 43, Month: "May 2025", Year: 2025})
	require.NoError(t, err)
	require.Len(t, may, 1)

	_, err = svc.List(ctx, dto.AttendanceQuery{})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}
