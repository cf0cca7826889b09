package models

// Faculty represents a teaching staff member.
type Faculty struct {
	EmployeeID      string   `json:"employeeId"`
	FullName        string   `json:"fullName"`
	Email           string   `json:"email"`
	Designation     string   `json:"designation"`
	SubjectsHandled []string `json:"subjectsHandled"`
	IsActive        bool     `json:"isActive"`
}

// Document returns the stored form of the faculty member.
func (f Faculty) Document() Document {
	subjects := f.SubjectsHandled
	if subjects == nil {
		subjects = []string{}
	}
	return Document{
		"employeeId":      f.EmployeeID,
		"fullName":        f.FullName,
		"email":           f.Email,
		"designation":     f.Designation,
		"subjectsHandled": subjects,
		"isActive":        f.IsActive,
	}
}
