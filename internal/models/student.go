package models

// Student represents a learner registered with the college.
type Student struct {
	Roll     int    `json:"roll"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	IsActive bool   `json:"isActive"`
}

// Document returns the stored form of the student.
func (s Student) Document() Document {
	return Document{
		"roll":     s.Roll,
		"fullName": s.FullName,
		"email":    s.Email,
		"phone":    s.Phone,
		"isActive": s.IsActive,
	}
}
