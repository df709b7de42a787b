package store

import (
	"context"
	"errors"
	"time"

	"churchapp/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserStore struct{ db *gorm.DB }

func (s *Store) Users() *UserStore { return &UserStore{db: s.DB} }

func (u *UserStore) Create(ctx context.Context, usr *domain.UserProfile) error {
	if usr.ID == uuid.Nil {
		usr.ID = uuid.New()
	}
	return u.db.WithContext(ctx).Create(usr).Error
}

func (u *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error) {
	var user domain.UserProfile
	if err := u.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (u *UserStore) GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	var user domain.UserProfile
	if err := u.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (u *UserStore) GetByUsername(ctx context.Context, username string) (*domain.UserProfile, error) {
	var user domain.UserProfile
	if err := u.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

// SetOTP writes the code and expiry as a unit.
func (u *UserStore) SetOTP(ctx context.Context, userID uuid.UUID, code string, expiry time.Time) error {
	return u.db.WithContext(ctx).Model(&domain.UserProfile{}).
		Where("id = ?", userID).
		Updates(map[string]any{"otp_code": code, "otp_code_expiry": expiry}).Error
}

// ClearOTP invalidates a consumed or superseded code.
func (u *UserStore) ClearOTP(ctx context.Context, userID uuid.UUID) error {
	return u.db.WithContext(ctx).Model(&domain.UserProfile{}).
		Where("id = ?", userID).
		Updates(map[string]any{"otp_code": nil, "otp_code_expiry": nil}).Error
}

func (u *UserStore) SetEmailVerified(ctx context.Context, userID uuid.UUID) error {
	return u.db.WithContext(ctx).Model(&domain.UserProfile{}).
		Where("id = ?", userID).
		Update("email_verified", true).Error
}

func (u *UserStore) SetPasswordHash(ctx context.Context, userID uuid.UUID, encoded string) error {
	return u.db.WithContext(ctx).Model(&domain.UserProfile{}).
		Where("id = ?", userID).
		Update("password_hash", encoded).Error
}

// UpdateProfile persists the mutable profile columns of usr.
func (u *UserStore) UpdateProfile(ctx context.Context, usr *domain.UserProfile) error {
	return u.db.WithContext(ctx).Model(&domain.UserProfile{}).
		Where("id = ?", usr.ID).
		Updates(map[string]any{
			"first_name":              usr.FirstName,
			"last_name":               usr.LastName,
			"date_of_birth":           usr.DateOfBirth,
			"address":                 usr.Address,
			"phone_number":            usr.PhoneNumber,
			"membership_status":       usr.MembershipStatus,
			"membership_start_date":   usr.MembershipStartDate,
			"role":                    usr.Role,
			"church_branch_id":        usr.ChurchBranchID,
			"emergency_contact_name":  usr.EmergencyContactName,
			"emergency_contact_phone": usr.EmergencyContactPhone,
			"tithe_amount_cents":      usr.TitheAmountCents,
		}).Error
}

func (u *UserStore) Delete(ctx context.Context, userID uuid.UUID) (int64, error) {
	tx := u.db.WithContext(ctx).Where("id = ?", userID).Delete(&domain.UserProfile{})
	return tx.RowsAffected, tx.Error
}
