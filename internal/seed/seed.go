package seed

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/college-erp-api/internal/models"
)

// Store is the part of a document store the seeder writes through.
type Store interface {
	DeleteAll(ctx context.Context, collection string) error
	Insert(ctx context.Context, collection string, doc models.Document) (models.Document, error)
}

// Summary reports how many documents were created per collection.
type Summary map[string]int

const attendanceYear = 2025

var (
	attendanceMonths   = []string{"January", "February", "March", "April", "May", "June"}
	attendancePattern  = "PAPPPAPPPAPAPPPAPPPAAPAPPPAPPP"
	dnmMonth           = "June"
	dnmMarkedDays      = 20
	timetableSemester  = 7
	timetableDayOfWeek = "Monday"
)

// Seeder clears every collection and loads the reference data set.
type Seeder struct {
	store  Store
	logger *zap.Logger
}

// New constructs a Seeder.
func New(store Store, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{store: store, logger: logger}
}

// Run replaces the contents of all collections.
func (s *Seeder) Run(ctx context.Context) (Summary, error) {
	for _, collection := range models.CollectionNames {
		if err := s.store.DeleteAll(ctx, collection); err != nil {
			return nil, fmt.Errorf("clear %s: %w", collection, err)
		}
	}
	s.logger.Info("collections cleared")

	summary := Summary{}

	students, err := s.insertAll(ctx, models.CollectionStudents, studentDocuments())
	if err != nil {
		return nil, err
	}
	summary[models.CollectionStudents] = len(students)

	faculties, err := s.insertAll(ctx, models.CollectionFaculties, facultyDocuments())
	if err != nil {
		return nil, err
	}
	summary[models.CollectionFaculties] = len(faculties)

	courses, err := s.insertAll(ctx, models.CollectionCourses, courseDocuments(faculties))
	if err != nil {
		return nil, err
	}
	summary[models.CollectionCourses] = len(courses)

	attendance, err := s.insertAll(ctx, models.CollectionAttendances, attendanceDocuments(students))
	if err != nil {
		return nil, err
	}
	summary[models.CollectionAttendances] = len(attendance)

	leaves, err := s.insertAll(ctx, models.CollectionLeaveRequests, leaveDocuments(students, faculties))
	if err != nil {
		return nil, err
	}
	summary[models.CollectionLeaveRequests] = len(leaves)

	timetables, err := s.insertAll(ctx, models.CollectionTimetables, []models.Document{timetableDocument(courses, faculties)})
	if err != nil {
		return nil, err
	}
	summary[models.CollectionTimetables] = len(timetables)

	for _, collection := range models.CollectionNames {
		s.logger.Info("collection seeded", zap.String("collection", collection), zap.Int("count", summary[collection]))
	}
	return summary, nil
}

func (s *Seeder) insertAll(ctx context.Context, collection string, docs []models.Document) ([]models.Document, error) {
	created := make([]models.Document, 0, len(docs))
	for _, doc := range docs {
		stored, err := s.store.Insert(ctx, collection, doc)
		if err != nil {
			return nil, fmt.Errorf("seed %s: %w", collection, err)
		}
		created = append(created, stored)
	}
	return created, nil
}

func studentDocuments() []models.Document {
	students := []models.Student{
		{Roll: 1, FullName: "Aisha Khan", Email: "aisha@college.edu", Phone: "+91-9876543210", IsActive: true},
		{Roll: 43, FullName: "Tanush", Email: "tanush@college.edu", Phone: "+91-240394798", IsActive: true},
		{Roll: 15, FullName: "Priya Sharma", Email: "priya@college.edu", Phone: "+91-9876543211", IsActive: true},
		{Roll: 28, FullName: "Rajesh Kumar", Email: "rajesh@college.edu", Phone: "+91-9876543212", IsActive: true},
	}
	docs := make([]models.Document, 0, len(students))
	for _, student := range students {
		docs = append(docs, student.Document())
	}
	return docs
}

func facultyDocuments() []models.Document {
	faculties := []models.Faculty{
		{EmployeeID: "FAC-01", FullName: "Dr.S.Vanaja", Email: "s.vanaja@college.edu", Designation: "Associate Professor", SubjectsHandled: []string{"DL", "NOSQL", "SCM", "COU", "EAI"}, IsActive: true},
		{EmployeeID: "FAC-02", FullName: "Dr.R.Kumar", Email: "r.kumar@college.edu", Designation: "Professor", SubjectsHandled: []string{"AI", "ML", "DL", "NLP"}, IsActive: true},
		{EmployeeID: "FAC-03", FullName: "Prof.S.Rajesh", Email: "s.rajesh@college.edu", Designation: "Assistant Professor", SubjectsHandled: []string{"DBMS", "NOSQL", "SCM"}, IsActive: true},
	}
	docs := make([]models.Document, 0, len(faculties))
	for _, faculty := range faculties {
		docs = append(docs, faculty.Document())
	}
	return docs
}

func courseDocuments(faculties []models.Document) []models.Document {
	vanaja, rajesh := faculties[0].ID(), faculties[2].ID()
	courses := []models.Course{
		{Code: "191CAC701T", Title: "Deep Learning (PE-III)", Credits: 3, Semester: 7, Description: "Deep Learning concepts and applications", FacultyInCharge: vanaja},
		{Code: "191CAC702T", Title: "NoSQL Databases", Credits: 3, Semester: 7, Description: "NoSQL database systems and applications", FacultyInCharge: vanaja},
		{Code: "191CAC703T", Title: "Supply Chain Management", Credits: 3, Semester: 7, Description: "Supply chain optimization and management", FacultyInCharge: rajesh},
		{Code: "191CAC704T", Title: "Computer Organization & Architecture", Credits: 4, Semester: 7, Description: "Computer system organization and architecture", FacultyInCharge: vanaja},
		{Code: "191CAC705T", Title: "Enterprise Application Integration", Credits: 3, Semester: 7, Description: "EAI concepts and implementation", FacultyInCharge: vanaja},
	}
	docs := make([]models.Document, 0, len(courses))
	for _, course := range courses {
		course.IsActive = true
		docs = append(docs, course.Document())
	}
	return docs
}

// attendanceEntries marks one day per pattern letter. The DNM month keeps only the first
// marked days and pads the rest with DNM.
func attendanceEntries(month string, monthIndex int) []models.AttendanceEntry {
	entries := make([]models.AttendanceEntry, 0, len(attendancePattern))
	for day, mark := range attendancePattern {
		status := models.AttendanceStatus(string(mark))
		if month == dnmMonth && day >= dnmMarkedDays {
			status = models.AttendanceDoNotMark
		}
		entries = append(entries, models.AttendanceEntry{
			Date:   time.Date(attendanceYear, time.Month(monthIndex+1), day+1, 0, 0, 0, 0, time.UTC),
			Status: status,
		})
	}
	return entries
}

func attendanceDocuments(students []models.Document) []models.Document {
	docs := make([]models.Document, 0, len(students)*len(attendanceMonths))
	for _, student := range students {
		roll, _ := student.Number("roll")
		for monthIndex, month := range attendanceMonths {
			sheet := models.Attendance{
				Student:     student.ID(),
				StudentRoll: int(roll),
				Month:       fmt.Sprintf("%s %d", month, attendanceYear),
				Year:        attendanceYear,
				Entries:     attendanceEntries(month, monthIndex),
			}
			sheet.Tally()
			docs = append(docs, sheet.Document())
		}
	}
	return docs
}

func leaveDocuments(students, faculties []models.Document) []models.Document {
	date := func(year int, month time.Month, day int) time.Time {
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	}
	roll := func(doc models.Document) int {
		n, _ := doc.Number("roll")
		return int(n)
	}
	handledAt := date(2024, time.September, 9)

	leaves := []models.LeaveRequest{
		{Student: students[1].ID(), StudentRoll: roll(students[1]), StartDate: date(2024, time.August, 15), EndDate: date(2024, time.August, 17), Reason: "Medical - fever", Status: models.LeavePending},
		{Student: students[0].ID(), StudentRoll: roll(students[0]), StartDate: date(2024, time.September, 10), EndDate: date(2024, time.September, 12), Reason: "Family emergency", Status: models.LeaveApproved, HandledBy: faculties[0].ID(), HandledAt: &handledAt},
		{Student: students[2].ID(), StudentRoll: roll(students[2]), StartDate: date(2024, time.October, 5), EndDate: date(2024, time.October, 7), Reason: "Personal work", Status: models.LeavePending},
	}
	docs := make([]models.Document, 0, len(leaves))
	for _, leave := range leaves {
		leave.TotalDays = models.InclusiveDays(leave.StartDate, leave.EndDate)
		docs = append(docs, leave.Document())
	}
	return docs
}

func timetableDocument(courses, faculties []models.Document) models.Document {
	vanaja, rajesh := faculties[0].ID(), faculties[2].ID()
	lecture := func(period int, code string, course models.Document, faculty, room string) models.TimeSlot {
		return models.TimeSlot{Period: period, Type: models.SlotLecture, CourseCode: code, Course: course.ID(), Faculty: faculty, Room: room}
	}
	pause := func(period int, code string) models.TimeSlot {
		return models.TimeSlot{Period: period, Type: models.SlotBreak, CourseCode: code, Room: "Cafeteria"}
	}

	timetable := models.Timetable{
		DayOfWeek: timetableDayOfWeek,
		Semester:  timetableSemester,
		IsActive:  true,
		Slots: []models.TimeSlot{
			lecture(1, "DL", courses[0], vanaja, "A101"),
			lecture(2, "NOSQL", courses[1], vanaja, "A102"),
			pause(3, "BREAK"),
			lecture(4, "DL", courses[0], vanaja, "A101"),
			lecture(5, "SCM", courses[2], rajesh, "A103"),
			lecture(6, "SCM", courses[2], rajesh, "A103"),
			pause(7, "LUNCH"),
			lecture(8, "COU", courses[3], vanaja, "A104"),
			lecture(9, "COU", courses[3], vanaja, "A104"),
			lecture(10, "EAI", courses[4], vanaja, "A105"),
		},
	}
	return timetable.Document()
}
