package models

// HealthProgram is a program clients can be enrolled in (TB, malaria, ...).
type HealthProgram struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at,omitempty"`
	CreatedBy   string `json:"created_by_username,omitempty"`
}

// Enrollment links a client to a program.
type Enrollment struct {
	ID             int64  `json:"id"`
	ProgramID      int64  `json:"program"`
	ProgramName    string `json:"program_name"`
	ProgramCode    string `json:"program_code"`
	EnrollmentDate string `json:"enrollment_date"`
	IsActive       bool   `json:"is_active"`
	Notes          string `json:"notes,omitempty"`
	EnrolledBy     string `json:"enrolled_by_username,omitempty"`
}
