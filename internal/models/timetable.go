package models

// SlotType classifies a timetable period.
type SlotType string

const (
	SlotLecture  SlotType = "lecture"
	SlotLab      SlotType = "lab"
	SlotTutorial SlotType = "tutorial"
	SlotBreak    SlotType = "break"
)

// Weekdays in timetable order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// TimeSlot is one scheduled period within a day.
type TimeSlot struct {
	Period     int      `json:"period"`
	Type       SlotType `json:"type"`
	CourseCode string   `json:"courseCode"`
	Course     string   `json:"course,omitempty"`
	Faculty    string   `json:"faculty,omitempty"`
	Room       string   `json:"room,omitempty"`
}

// Timetable is the schedule of one weekday for a semester.
type Timetable struct {
	DayOfWeek string     `json:"dayOfWeek"`
	Semester  int        `json:"semester"`
	IsActive  bool       `json:"isActive"`
	Slots     []TimeSlot `json:"slots"`
}

// Document returns the stored form of the timetable.
func (t Timetable) Document() Document {
	slots := make([]interface{}, 0, len(t.Slots))
	for _, slot := range t.Slots {
		stored := map[string]interface{}{
			"period":     slot.Period,
			"type":       string(slot.Type),
			"courseCode": slot.CourseCode,
			"room":       slot.Room,
		}
		if slot.Course != "" {
			stored["course"] = Ref(slot.Course)
		}
		if slot.Faculty != "" {
			stored["faculty"] = Ref(slot.Faculty)
		}
		slots = append(slots, stored)
	}
	return Document{
		"dayOfWeek": t.DayOfWeek,
		"semester":  t.Semester,
		"isActive":  t.IsActive,
		"slots":     slots,
	}
}
