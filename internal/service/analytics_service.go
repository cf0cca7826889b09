package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/college-erp-api/internal/dto"
	"github.com/noah-isme/college-erp-api/internal/models"
	appErrors "github.com/noah-isme/college-erp-api/pkg/errors"
)

const analyticsScanLimit = 1000

// AnalyticsService answers the cross-collection reports of the administration panel.
type AnalyticsService struct {
	store        documentLookup
	validator    *validator.Validate
	lowThreshold float64
	logger       *zap.Logger
}

// NewAnalyticsService constructs AnalyticsService.
func NewAnalyticsService(store documentLookup, validate *validator.Validate, lowThreshold float64, logger *zap.Logger) *AnalyticsService {
	if validate == nil {
		validate = validator.New()
	}
	if lowThreshold <= 0 {
		lowThreshold = defaultLowAttendanceThreshold
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsService{store: store, validator: validate, lowThreshold: lowThreshold, logger: logger}
}

// Overview counts every collection, split by active flag or leave status.
func (s *AnalyticsService) Overview(ctx context.Context) (*dto.ERPAnalytics, error) {
	var out dto.ERPAnalytics
	var err error
	if out.Students, err = s.breakdown(ctx, models.CollectionStudents); err != nil {
		return nil, err
	}
	if out.Faculty, err = s.breakdown(ctx, models.CollectionFaculties); err != nil {
		return nil, err
	}
	if out.Courses, err = s.breakdown(ctx, models.CollectionCourses); err != nil {
		return nil, err
	}
	if out.AttendanceRecords, err = s.count(ctx, models.CollectionAttendances, nil); err != nil {
		return nil, err
	}
	if out.LeaveRequests.Pending, err = s.count(ctx, models.CollectionLeaveRequests, models.Filter{"status": string(models.LeavePending)}); err != nil {
		return nil, err
	}
	if out.LeaveRequests.Approved, err = s.count(ctx, models.CollectionLeaveRequests, models.Filter{"status": string(models.LeaveApproved)}); err != nil {
		return nil, err
	}
	if out.LeaveRequests.Rejected, err = s.count(ctx, models.CollectionLeaveRequests, models.Filter{"status": string(models.LeaveRejected)}); err != nil {
		return nil, err
	}
	out.LeaveRequests.Total = out.LeaveRequests.Pending + out.LeaveRequests.Approved + out.LeaveRequests.Rejected
	if out.ActiveTimetables, err = s.count(ctx, models.CollectionTimetables, models.Filter{"isActive": true}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AnalyticsService) breakdown(ctx context.Context, collection string) (dto.EntityBreakdown, error) {
	active, err := s.count(ctx, collection, models.Filter{"isActive": true})
	if err != nil {
		return dto.EntityBreakdown{}, err
	}
	inactive, err := s.count(ctx, collection, models.Filter{"isActive": false})
	if err != nil {
		return dto.EntityBreakdown{}, err
	}
	return dto.EntityBreakdown{Total: active + inactive, Active: active, Inactive: inactive}, nil
}

func (s *AnalyticsService) count(ctx context.Context, collection string, filter models.Filter) (int64, error) {
	n, err := s.store.Count(ctx, collection, filter)
	if err != nil {
		s.logger.Error("analytics count failed", zap.String("collection", collection), zap.Error(err))
		return 0, appErrors.Internal(err, "failed to count "+collection)
	}
	return n, nil
}

func (s *AnalyticsService) find(ctx context.Context, collection string, filter models.Filter) ([]models.Document, error) {
	docs, err := s.store.Find(ctx, collection, models.FindOptions{Filter: filter, Limit: analyticsScanLimit})
	if err != nil {
		s.logger.Error("analytics scan failed", zap.String("collection", collection), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to load "+collection)
	}
	return docs, nil
}

// LowAttendance lists the sheets strictly under the threshold whose student still exists.
func (s *AnalyticsService) LowAttendance(ctx context.Context, query dto.LowAttendanceQuery) ([]dto.LowAttendanceRecord, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid threshold")
	}
	threshold := query.Threshold
	if threshold == 0 {
		threshold = s.lowThreshold
	}

	sheets, err := s.find(ctx, models.CollectionAttendances, models.Filter{"attendancePercentage": models.Range{Max: &threshold}})
	if err != nil {
		return nil, err
	}
	students, err := s.find(ctx, models.CollectionStudents, nil)
	if err != nil {
		return nil, err
	}
	names := make(map[int]string, len(students))
	for _, student := range students {
		if roll, ok := student.Number("roll"); ok {
			names[int(roll)] = student.String("fullName")
		}
	}

	out := []dto.LowAttendanceRecord{}
	for _, sheet := range sheets {
		pct, _ := sheet.Number("attendancePercentage")
		if pct >= threshold {
			continue
		}
		roll, _ := sheet.Number("studentRoll")
		name, ok := names[int(roll)]
		if !ok {
			continue
		}
		year, _ := sheet.Number("year")
		out = append(out, dto.LowAttendanceRecord{
			Roll:       int(roll),
			Name:       name,
			Percentage: models.RoundTo2(pct),
			Month:      sheet.String("month"),
			Year:       int(year),
		})
	}
	return out, nil
}

// FacultyWorkload groups the active courses by faculty in charge.
func (s *AnalyticsService) FacultyWorkload(ctx context.Context) ([]dto.FacultyWorkload, error) {
	courses, err := s.find(ctx, models.CollectionCourses, models.Filter{"isActive": true})
	if err != nil {
		return nil, err
	}
	byFaculty := map[string][]dto.CourseRef{}
	ids := []string{}
	for _, course := range courses {
		id, ok := referenceID(course["facultyInCharge"])
		if !ok {
			continue
		}
		if _, seen := byFaculty[id]; !seen {
			ids = append(ids, id)
		}
		byFaculty[id] = append(byFaculty[id], dto.CourseRef{Code: course.String("code"), Title: course.String("title")})
	}

	names, err := s.facultyNames(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := []dto.FacultyWorkload{}
	for _, id := range ids {
		name, ok := names[id]
		if !ok {
			continue
		}
		out = append(out, dto.FacultyWorkload{FacultyID: id, Name: name, CoursesCount: len(byFaculty[id]), Courses: byFaculty[id]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CoursesCount != out[j].CoursesCount {
			return out[i].CoursesCount > out[j].CoursesCount
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// CourseEnrollment lists the active courses with credits, semester and faculty name.
func (s *AnalyticsService) CourseEnrollment(ctx context.Context) ([]dto.CourseEnrollment, error) {
	courses, err := s.find(ctx, models.CollectionCourses, models.Filter{"isActive": true})
	if err != nil {
		return nil, err
	}
	ids := []string{}
	for _, course := range courses {
		if id, ok := referenceID(course["facultyInCharge"]); ok {
			ids = append(ids, id)
		}
	}
	names, err := s.facultyNames(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CourseEnrollment, 0, len(courses))
	for _, course := range courses {
		semester, _ := course.Number("semester")
		credits, _ := course.Number("credits")
		facultyName := models.FacultyNotAssigned
		if id, ok := referenceID(course["facultyInCharge"]); ok && names[id] != "" {
			facultyName = names[id]
		}
		out = append(out, dto.CourseEnrollment{
			Code:        course.String("code"),
			Title:       course.String("title"),
			Semester:    int(semester),
			Credits:     int(credits),
			FacultyName: facultyName,
		})
	}
	return out, nil
}

func (s *AnalyticsService) facultyNames(ctx context.Context, ids []string) (map[string]string, error) {
	names := map[string]string{}
	if len(ids) == 0 {
		return names, nil
	}
	faculty, err := s.store.FindByIDs(ctx, models.CollectionFaculties, ids)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load faculty")
	}
	for _, member := range faculty {
		names[member.ID()] = member.String("fullName")
	}
	return names, nil
}

// LeaveTrends counts leave requests per start month (YYYY-MM) and status.
func (s *AnalyticsService) LeaveTrends(ctx context.Context) (map[string]*dto.LeaveTrend, error) {
	leaves, err := s.find(ctx, models.CollectionLeaveRequests, nil)
	if err != nil {
		return nil, err
	}
	trends := map[string]*dto.LeaveTrend{}
	for _, leave := range leaves {
		start, ok := models.ToTime(leave["startDate"])
		if !ok {
			continue
		}
		key := start.Format("2006-01")
		trend, ok := trends[key]
		if !ok {
			trend = &dto.LeaveTrend{}
			trends[key] = trend
		}
		trend.Total++
		switch models.LeaveStatus(leave.String("status")) {
		case models.LeavePending:
			trend.Pending++
		case models.LeaveApproved:
			trend.Approved++
		case models.LeaveRejected:
			trend.Rejected++
		}
	}
	return trends, nil
}

// TimetableConflicts reports rooms and faculty members booked twice in the same period of an active timetable.
func (s *AnalyticsService) TimetableConflicts(ctx context.Context) ([]dto.TimetableConflict, error) {
	timetables, err := s.find(ctx, models.CollectionTimetables, models.Filter{"isActive": true})
	if err != nil {
		return nil, err
	}
	out := []dto.TimetableConflict{}
	for _, timetable := range timetables {
		day := timetable.String("dayOfWeek")
		semester, _ := timetable.Number("semester")
		slots := slotMaps(timetable["slots"])

		rooms := map[string]bool{}
		for _, slot := range slots {
			room, _ := slot["room"].(string)
			period, ok := slotPeriod(slot)
			if room == "" || !ok {
				continue
			}
			key := fmt.Sprintf("%s-%d", room, period)
			if rooms[key] {
				out = append(out, dto.TimetableConflict{
					Day: day, Semester: int(semester), Period: period, Room: room,
					Conflict: fmt.Sprintf("Room %s used in multiple slots at period %d", room, period),
				})
			}
			rooms[key] = true
		}

		faculty := map[string]bool{}
		for _, slot := range slots {
			id, hasFaculty := referenceID(slot["faculty"])
			period, ok := slotPeriod(slot)
			if !hasFaculty || !ok {
				continue
			}
			key := fmt.Sprintf("%s-%d", id, period)
			if faculty[key] {
				out = append(out, dto.TimetableConflict{
					Day: day, Semester: int(semester), Period: period, Faculty: id,
					Conflict: fmt.Sprintf("Faculty %s assigned to multiple slots at period %d", id, period),
				})
			}
			faculty[key] = true
		}
	}
	return out, nil
}

func slotMaps(value interface{}) []map[string]interface{} {
	out := []map[string]interface{}{}
	switch v := value.(type) {
	case []interface{}:
		for _, item := range v {
			switch slot := item.(type) {
			case map[string]interface{}:
				out = append(out, slot)
			case models.Document:
				out = append(out, map[string]interface{}(slot))
			}
		}
	case []map[string]interface{}:
		out = append(out, v...)
	}
	return out
}

func slotPeriod(slot map[string]interface{}) (int, bool) {
	period, ok := models.ToFloat(slot["period"])
	if !ok || period <= 0 {
		return 0, false
	}
	return int(period), true
}
