package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/college-erp-api/internal/dto"
	"github.com/noah-isme/college-erp-api/internal/models"
	appErrors "github.com/noah-isme/college-erp-api/pkg/errors"
)

const (
	defaultLowAttendanceThreshold = 75
	attendanceSheetLimit          = 1000
)

// AttendanceService records monthly attendance sheets and reports statistics over them.
type AttendanceService struct {
	writer       entityWriter
	presenter    documentPresenter
	lowThreshold float64
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(store documentStore, presenter documentPresenter, validate *validator.Validate, listener changeListener, lowThreshold float64, logger *zap.Logger) *AttendanceService {
	if lowThreshold <= 0 {
		lowThreshold = defaultLowAttendanceThreshold
	}
	return &AttendanceService{
		writer:       newEntityWriter(store, models.CollectionAttendances, "attendance", validate, listener, logger),
		presenter:    presenter,
		lowThreshold: lowThreshold,
	}
}

// Record creates or replaces the sheet of a student for one month. Day counters and the
// percentage are derived from the entries.
func (s *AttendanceService) Record(ctx context.Context, req dto.RecordAttendanceRequest) (models.Document, error) {
	if err := s.writer.validate(req); err != nil {
		return nil, err
	}
	student, err := s.writer.store.FindOne(ctx, models.CollectionStudents, models.Filter{"roll": req.StudentRoll})
	if err != nil {
		return nil, storeError(err, "student", "load")
	}

	sheet := models.Attendance{
		Student:     student.ID(),
		StudentRoll: req.StudentRoll,
		Month:       req.Month,
		Year:        req.Year,
	}
	for _, entry := range req.Entries {
		sheet.Entries = append(sheet.Entries, models.AttendanceEntry{Date: entry.Date.UTC(), Status: models.AttendanceStatus(entry.Status)})
	}
	sheet.Tally()

	filter := models.Filter{"studentRoll": req.StudentRoll, "month": req.Month, "year": req.Year}
	stored, err := s.writer.store.Upsert(ctx, models.CollectionAttendances, filter, sheet.Document())
	if err != nil {
		s.writer.logFailure("upsert", "", err)
		return nil, storeError(err, "attendance", "record")
	}
	s.writer.changed(ctx)
	s.writer.logger.Info("attendance recorded",
		zap.Int("student_roll", req.StudentRoll),
		zap.String("month", req.Month),
		zap.Float64("percentage", sheet.AttendancePercentage))
	return stored, nil
}

// List returns the formatted sheets of one student, optionally narrowed to a month and year.
func (s *AttendanceService) List(ctx context.Context, query dto.AttendanceQuery) ([]models.Document, error) {
	if err := s.writer.validate(query); err != nil {
		return nil, err
	}
	filter := sheetFilter(query.StudentRoll, query.Month, query.Year)
	docs, err := s.writer.store.Find(ctx, models.CollectionAttendances, models.FindOptions{Filter: filter, Limit: attendanceSheetLimit})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load attendance")
	}
	cfg, _ := s.presenter.Registry().Lookup(models.CollectionAttendances)
	if err := s.presenter.Present(ctx, cfg, docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func sheetFilter(roll int, month string, year int) models.Filter {
	filter := models.Filter{}
	if roll > 0 {
		filter["studentRoll"] = roll
	}
	if month != "" {
		filter["month"] = month
	}
	if year > 0 {
		filter["year"] = year
	}
	return filter
}

// Stats aggregates the sheets matching the query and lists those under the low-attendance threshold.
func (s *AttendanceService) Stats(ctx context.Context, query dto.AttendanceStatsQuery) (*models.AttendanceStats, error) {
	filter := sheetFilter(query.StudentRoll, query.Month, query.Year)
	sheets, err := s.writer.store.Find(ctx, models.CollectionAttendances, models.FindOptions{Filter: filter, Limit: attendanceSheetLimit})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load attendance")
	}

	stats := &models.AttendanceStats{LowAttendance: []models.LowAttendanceStudent{}}
	rolls := map[int]struct{}{}
	lowRolls := []int{}
	type lowSheet struct {
		roll       int
		month      string
		percentage float64
	}
	var low []lowSheet
	for _, sheet := range sheets {
		roll, _ := sheet.Number("studentRoll")
		total, _ := sheet.Number("totalDays")
		present, _ := sheet.Number("presentDays")
		pct, _ := sheet.Number("attendancePercentage")

		rolls[int(roll)] = struct{}{}
		stats.TotalDays += int(total)
		stats.TotalPresent += int(present)
		if pct < s.lowThreshold {
			low = append(low, lowSheet{roll: int(roll), month: sheet.String("month"), percentage: models.RoundTo2(pct)})
			lowRolls = append(lowRolls, int(roll))
		}
	}
	stats.TotalStudents = len(rolls)
	if stats.TotalDays > 0 {
		stats.OverallPercentage = models.RoundTo2(float64(stats.TotalPresent) / float64(stats.TotalDays) * 100)
	}

	names, err := s.studentNames(ctx, lowRolls)
	if err != nil {
		return nil, err
	}
	for _, entry := range low {
		name, ok := names[entry.roll]
		if !ok {
			continue
		}
		stats.LowAttendance = append(stats.LowAttendance, models.LowAttendanceStudent{
			Roll:       entry.roll,
			Name:       name,
			Month:      entry.month,
			Percentage: entry.percentage,
		})
	}
	return stats, nil
}

func (s *AttendanceService) studentNames(ctx context.Context, rolls []int) (map[int]string, error) {
	names := make(map[int]string, len(rolls))
	for _, roll := range rolls {
		if _, done := names[roll]; done {
			continue
		}
		student, err := s.writer.store.FindOne(ctx, models.CollectionStudents, models.Filter{"roll": roll})
		if err != nil {
			if errors.Is(err, models.ErrDocumentNotFound) {
				continue
			}
			return nil, appErrors.Internal(err, "failed to load student")
		}
		names[roll] = student.String("fullName")
	}
	return names, nil
}
