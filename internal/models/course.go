package models

// FacultyNotAssigned is the display name used for courses without a faculty in charge.
const FacultyNotAssigned = "Not Assigned"

// Course is an entry of the course catalogue.
type Course struct {
	Code            string `json:"code"`
	Title           string `json:"title"`
	Credits         int    `json:"credits"`
	Semester        int    `json:"semester"`
	Description     string `json:"description"`
	FacultyInCharge string `json:"facultyInCharge,omitempty"`
	IsActive        bool   `json:"isActive"`
}

// Document returns the stored form of the course.
func (c Course) Document() Document {
	return Document{
		"code":            c.Code,
		"title":           c.Title,
		"credits":         c.Credits,
		"semester":        c.Semester,
		"description":     c.Description,
		"facultyInCharge": RefOrNil(c.FacultyInCharge),
		"isActive":        c.IsActive,
	}
}
