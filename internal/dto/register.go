package dto

type RegisterRequest struct {
	Email                 string `json:"email"`
	Username              string `json:"username"`
	Password              string `json:"password"`
	Password2             string `json:"password2"`
	FirstName             string `json:"first_name,omitempty"`
	LastName              string `json:"last_name,omitempty"`
	DateOfBirth           string `json:"date_of_birth,omitempty"` // YYYY-MM-DD
	Address               string `json:"address,omitempty"`
	PhoneNumber           string `json:"phone_number,omitempty"`
	ChurchBranchID        string `json:"church_branch,omitempty"`
	EmergencyContactName  string `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string `json:"emergency_contact_phone_number,omitempty"`
}

type RegisterResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type VerifyEmailRequest struct {
	Email   string `json:"email"`
	OTPCode string `json:"otp_code"`
}
