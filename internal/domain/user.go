package domain

import "time"

// Membership lifecycle states for a church member.
const (
	MembershipPending   = "pending"
	MembershipActive    = "active"
	MembershipInactive  = "inactive"
	MembershipSuspended = "suspended"
)

const (
	RoleMember = "member"
	RoleStaff  = "staff"
	RolePastor = "pastor"
	RoleAdmin  = "admin"
)

func ValidMembershipStatus(s string) bool {
	switch s {
	case MembershipPending, MembershipActive, MembershipInactive, MembershipSuspended:
		return true
	}
	return false
}

func ValidRole(r string) bool {
	switch r {
	case RoleMember, RoleStaff, RolePastor, RoleAdmin:
		return true
	}
	return false
}

type UserProfile struct {
	ID            UserID `gorm:"type:uuid;primaryKey" json:"id"`
	Email         string `gorm:"uniqueIndex:ux_users_email;not null" json:"email"`
	Username      string `gorm:"uniqueIndex:ux_users_username;not null" json:"username"`
	EmailVerified bool   `gorm:"not null;default:false" json:"emailVerified"`

	// Encoded argon2id hash (PHC string). Never serialized.
	PasswordHash string `gorm:"type:text;not null" json:"-"`

	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Address     string     `gorm:"type:text" json:"address"`
	PhoneNumber string     `json:"phoneNumber"`

	MembershipStatus    string     `gorm:"not null;default:pending" json:"membershipStatus"`
	MembershipStartDate *time.Time `json:"membershipStartDate,omitempty"`
	Role                string     `gorm:"not null;default:member" json:"role"`
	ChurchBranchID      *BranchID  `gorm:"type:uuid" json:"churchBranchId,omitempty"`

	// OTP state: both fields set or both nil, mutated only by the auth
	// service under the per-account lock.
	OTPCode   *string    `gorm:"column:otp_code" json:"-"`
	OTPExpiry *time.Time `gorm:"column:otp_code_expiry" json:"-"`

	EmergencyContactName  string `json:"emergencyContactName"`
	EmergencyContactPhone string `json:"emergencyContactPhone"`
	TitheAmountCents      int64  `gorm:"not null;default:0" json:"titheAmountCents"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (UserProfile) TableName() string { return "users" }

// OTPValid reports whether the stored OTP is present and unexpired at t.
func (u *UserProfile) OTPValid(t time.Time) bool {
	return u.OTPCode != nil && u.OTPExpiry != nil && u.OTPExpiry.After(t)
}
