package models

// Gender codes used by the API.
const (
	GenderMale   = "M"
	GenderFemale = "F"
	GenderOther  = "O"
)

// Client is a person registered in the health system. The ID is a
// server-assigned UUID.
type Client struct {
	ID                string `json:"id,omitempty"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	DateOfBirth       string `json:"date_of_birth"`
	Gender            string `json:"gender"`
	Email             string `json:"email"`
	PhoneNumber       string `json:"phone_number"`
	Address           string `json:"address"`
	NationalID        string `json:"national_id,omitempty"`
	BloodType         string `json:"blood_type,omitempty"`
	Allergies         string `json:"allergies,omitempty"`
	ChronicConditions string `json:"chronic_conditions,omitempty"`
	RegisteredAt      string `json:"registered_at,omitempty"`
	UpdatedAt         string `json:"updated_at,omitempty"`
	RegisteredBy      string `json:"registered_by_username,omitempty"`
}

// FullName joins first and last name for display.
func (c Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

// ClientProfile is a client together with their program enrollments.
type ClientProfile struct {
	Client
	Enrollments []Enrollment `json:"enrollments"`
}
