package dto

// CreateCourseRequest holds payload for adding a course to the catalogue.
type CreateCourseRequest struct {
	Code            string `json:"code" validate:"required"`
	Title           string `json:"title" validate:"required"`
	Credits         int    `json:"credits" validate:"gte=0,lte=30"`
	Semester        int    `json:"semester" validate:"required,gte=1,lte=12"`
	Description     string `json:"description"`
	FacultyInCharge string `json:"facultyInCharge"`
	IsActive        *bool  `json:"isActive"`
}

// UpdateCourseRequest holds a partial update; omitted fields keep their stored values.
// An empty facultyInCharge unassigns the course.
type UpdateCourseRequest struct {
	Code            *string `json:"code" validate:"omitempty,min=1"`
	Title           *string `json:"title" validate:"omitempty,min=1"`
	Credits         *int    `json:"credits" validate:"omitempty,gte=0,lte=30"`
	Semester        *int    `json:"semester" validate:"omitempty,gte=1,lte=12"`
	Description     *string `json:"description"`
	FacultyInCharge *string `json:"facultyInCharge"`
	IsActive        *bool   `json:"isActive"`
}
