package dto

// CreateTimetableRequest holds the schedule of one weekday.
type CreateTimetableRequest struct {
	DayOfWeek string            `json:"dayOfWeek" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	Semester  int               `json:"semester" validate:"required,gte=1,lte=12"`
	Slots     []TimeSlotRequest `json:"slots" validate:"required,min=1,dive"`
}

// TimeSlotRequest is one period of a timetable.
type TimeSlotRequest struct {
	Period     int    `json:"period" validate:"required,gte=1"`
	Type       string `json:"type" validate:"required,oneof=lecture lab tutorial break"`
	CourseCode string `json:"courseCode"`
	Course     string `json:"course"`
	Faculty    string `json:"faculty"`
	Room       string `json:"room"`
}

// TimetableQuery selects the active timetable of a day.
type TimetableQuery struct {
	DayOfWeek string `form:"dayOfWeek" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	Semester  int    `form:"semester" validate:"required,gte=1"`
}
