package dto

// ProfileUpdate carries partial updates; nil fields are left untouched
// so PATCH and PUT share one shape.
type ProfileUpdate struct {
	FirstName             *string `json:"first_name,omitempty"`
	LastName              *string `json:"last_name,omitempty"`
	DateOfBirth           *string `json:"date_of_birth,omitempty"`
	Address               *string `json:"address,omitempty"`
	PhoneNumber           *string `json:"phone_number,omitempty"`
	MembershipStatus      *string `json:"membership_status,omitempty"`
	MembershipStartDate   *string `json:"membership_start_date,omitempty"`
	Role                  *string `json:"role,omitempty"`
	ChurchBranchID        *string `json:"church_branch,omitempty"`
	EmergencyContactName  *string `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone *string `json:"emergency_contact_phone_number,omitempty"`
	TitheAmountCents      *int64  `json:"tithe_amount_cents,omitempty"`
}
