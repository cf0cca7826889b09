package dto

// EntityBreakdown splits a collection by its active flag.
type EntityBreakdown struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}

// LeaveBreakdown counts leave requests per status.
type LeaveBreakdown struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// ERPAnalytics is the institution-wide overview.
type ERPAnalytics struct {
	Students          EntityBreakdown `json:"students"`
	Faculty           EntityBreakdown `json:"faculty"`
	Courses           EntityBreakdown `json:"courses"`
	AttendanceRecords int64           `json:"attendanceRecords"`
	LeaveRequests     LeaveBreakdown  `json:"leaveRequests"`
	ActiveTimetables  int64           `json:"activeTimetables"`
}

// LowAttendanceQuery sets the percentage under which a sheet is reported.
type LowAttendanceQuery struct {
	Threshold float64 `form:"threshold" validate:"omitempty,gt=0,lte=100"`
}

// LowAttendanceRecord is one sheet under the threshold with the student's name.
type LowAttendanceRecord struct {
	Roll       int     `json:"roll"`
	Name       string  `json:"name"`
	Percentage float64 `json:"attendancePercentage"`
	Month      string  `json:"month"`
	Year       int     `json:"year"`
}

// CourseRef names a course.
type CourseRef struct {
	Code  string `json:"code"`
	Title string `json:"title"`
}

// FacultyWorkload lists the active courses a faculty member is in charge of.
type FacultyWorkload struct {
	FacultyID    string      `json:"facultyId"`
	Name         string      `json:"name"`
	CoursesCount int         `json:"coursesCount"`
	Courses      []CourseRef `json:"courses"`
}

// CourseEnrollment describes one active course of the catalogue.
type CourseEnrollment struct {
	Code        string `json:"courseCode"`
	Title       string `json:"courseTitle"`
	Semester    int    `json:"semester"`
	Credits     int    `json:"credits"`
	FacultyName string `json:"facultyName"`
}

// LeaveTrend counts the leave requests starting in one month.
type LeaveTrend struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// TimetableConflict reports a room or faculty member booked twice in one period.
type TimetableConflict struct {
	Day      string `json:"day"`
	Semester int    `json:"semester"`
	Period   int    `json:"period"`
	Room     string `json:"room,omitempty"`
	Faculty  string `json:"faculty,omitempty"`
	Conflict string `json:"conflict"`
}
