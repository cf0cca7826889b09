package dto

// CreateStudentRequest holds payload for registering a student.
type CreateStudentRequest struct {
	Roll     int    `json:"roll" validate:"required,gt=0"`
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	IsActive *bool  `json:"isActive"`
}

// UpdateStudentRequest holds a partial update; omitted fields keep their stored values.
type UpdateStudentRequest struct {
	Roll     *int    `json:"roll" validate:"omitempty,gt=0"`
	FullName *string `json:"fullName" validate:"omitempty,min=1"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"isActive"`
}

// SetActiveRequest toggles the active flag of a student, faculty member or course.
type SetActiveRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// StudentSearchQuery narrows the student search. Name matches case-insensitively.
type StudentSearchQuery struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	MinRoll  *int   `form:"minRoll" validate:"omitempty,gt=0"`
	MaxRoll  *int   `form:"maxRoll" validate:"omitempty,gt=0"`
	IsActive *bool  `form:"isActive"`
}
