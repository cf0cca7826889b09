package dto

// CreateFacultyRequest holds payload for registering a faculty member.
type CreateFacultyRequest struct {
	EmployeeID      string   `json:"employeeId" validate:"required"`
	FullName        string   `json:"fullName" validate:"required"`
	Email           string   `json:"email" validate:"required,email"`
	Designation     string   `json:"designation" validate:"required"`
	SubjectsHandled []string `json:"subjectsHandled" validate:"omitempty,dive,required"`
	IsActive        *bool    `json:"isActive"`
}

// UpdateFacultyRequest holds a partial update; omitted fields keep their stored values.
type UpdateFacultyRequest struct {
	EmployeeID      *string   `json:"employeeId" validate:"omitempty,min=1"`
	FullName        *string   `json:"fullName" validate:"omitempty,min=1"`
	Email           *string   `json:"email" validate:"omitempty,email"`
	Designation     *string   `json:"designation" validate:"omitempty,min=1"`
	SubjectsHandled *[]string `json:"subjectsHandled" validate:"omitempty,dive,required"`
	IsActive        *bool     `json:"isActive"`
}
