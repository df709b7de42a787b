package dto

type PasswordResetRequest struct {
	Email string `json:"email"`
}

type PasswordResetConfirm struct {
	Email        string `json:"email"`
	OTPCode      string `json:"otp_code"`
	NewPassword  string `json:"new_password"`
	NewPassword2 string `json:"new_password2"`
}

type Message struct {
	Message string `json:"message"`
}

type Error struct {
	Error string `json:"error"`
}
