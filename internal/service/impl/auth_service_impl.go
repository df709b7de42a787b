package impl

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"
	"time"

	"churchapp/internal/domain"
	"churchapp/internal/dto"
	"churchapp/internal/observability/metrics"
	"churchapp/internal/observability/middleware"
	"churchapp/internal/otp"
	"churchapp/internal/service"
	"churchapp/internal/store"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type AuthServiceImpl struct {
	store  *store.Store
	pw     service.PasswordService
	tokens service.TokenService
	mail   service.EmailService
	links  *ResetLinkSigner
	otpLen int
	locks  keyedMutex

	// OnMembershipChange runs after a profile update flips the
	// membership status. Replaces the save-signal the legacy app used.
	OnMembershipChange func(user *domain.UserProfile, oldStatus, newStatus string)
}

func NewAuthServiceImpl(st *store.Store, pw service.PasswordService, tokens service.TokenService, mail service.EmailService, links *ResetLinkSigner, otpLen int) *AuthServiceImpl {
	if otpLen <= 0 {
		otpLen = otp.DefaultLength
	}
	a := &AuthServiceImpl{
		store:  st,
		pw:     pw,
		tokens: tokens,
		mail:   mail,
		links:  links,
		otpLen: otpLen,
	}
	a.OnMembershipChange = func(user *domain.UserProfile, oldStatus, newStatus string) {
		slog.Info("membership status changed",
			"user_id", user.ID, "username", user.Username,
			"from", oldStatus, "to", newStatus)
	}
	return a
}

func (a *AuthServiceImpl) Register(ctx context.Context, r dto.RegisterRequest) (*dto.RegisterResponse, error) {
	result := "success"
	defer func() {
		metrics.RegistrationsTotal.WithLabelValues(result).Inc()
	}()

	email := strings.ToLower(strings.TrimSpace(r.Email))
	username := strings.TrimSpace(r.Username)
	if email == "" || username == "" || r.Password == "" {
		result = "failure"
		return nil, domain.ErrInvalidInput
	}
	if r.Password != r.Password2 {
		result = "failure"
		return nil, domain.ErrPasswordMismatch
	}
	if len(r.Password) < 8 {
		result = "failure"
		return nil, domain.ErrPasswordTooShort
	}

	dob, err := parseOptionalDate(r.DateOfBirth)
	if err != nil {
		result = "failure"
		return nil, domain.ErrInvalidInput
	}
	branchID, err := parseOptionalUUID(r.ChurchBranchID)
	if err != nil {
		result = "failure"
		return nil, domain.ErrInvalidInput
	}

	var user *domain.UserProfile
	var code string

	err = a.store.WithTx(ctx, func(tx *store.Store) error {
		if _, err := tx.Users().GetByEmail(ctx, email); err == nil {
			return domain.ErrEmailExists
		} else if !errors.Is(err, store.ErrRecordNotFound) {
			return err
		}
		if _, err := tx.Users().GetByUsername(ctx, username); err == nil {
			return domain.ErrUsernameExists
		} else if !errors.Is(err, store.ErrRecordNotFound) {
			return err
		}

		encoded, err := a.pw.Hash(r.Password)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		user = &domain.UserProfile{
			ID:                    uuid.New(),
			Email:                 email,
			Username:              username,
			PasswordHash:          encoded,
			FirstName:             strings.TrimSpace(r.FirstName),
			LastName:              strings.TrimSpace(r.LastName),
			DateOfBirth:           dob,
			Address:               r.Address,
			PhoneNumber:           strings.TrimSpace(r.PhoneNumber),
			MembershipStatus:      domain.MembershipPending,
			Role:                  domain.RoleMember,
			ChurchBranchID:        branchID,
			EmergencyContactName:  r.EmergencyContactName,
			EmergencyContactPhone: r.EmergencyContactPhone,
			CreatedAt:             now,
			UpdatedAt:             now,
		}
		if err := tx.Users().Create(ctx, user); err != nil {
			return err
		}

		code, err = otp.Generate(a.otpLen)
		if err != nil {
			return err
		}
		expiry := now.Add(otp.ExpiryWindow)
		if err := tx.Users().SetOTP(ctx, user.ID, code, expiry); err != nil {
			return err
		}
		user.OTPCode = &code
		user.OTPExpiry = &expiry
		return nil
	})
	if err != nil {
		result = "failure"
		return nil, err
	}

	// Explicit dispatch after commit; never implicit save hooks, and
	// never a reason to fail the registration.
	a.dispatch(ctx, "otp", func() error {
		return a.mail.SendOTP(ctx, user.Email, user.FirstName, code)
	})
	a.dispatch(ctx, "welcome", func() error {
		return a.mail.SendWelcome(ctx, user.Email, user.FirstName)
	})

	return &dto.RegisterResponse{
		ID:      user.ID.String(),
		Email:   user.Email,
		Message: "registration successful",
	}, nil
}

func (a *AuthServiceImpl) VerifyEmail(ctx context.Context, r dto.VerifyEmailRequest) error {
	result := "success"
	defer func() {
		metrics.OTPVerificationsTotal.WithLabelValues("verify_email", result).Inc()
	}()

	email := strings.ToLower(strings.TrimSpace(r.Email))
	if email == "" || r.OTPCode == "" {
		result = "failure"
		return domain.ErrInvalidInput
	}

	unlock := a.locks.lock(email)
	defer unlock()

	user, err := a.store.Users().GetByEmail(ctx, email)
	if err != nil {
		result = "failure"
		if errors.Is(err, store.ErrRecordNotFound) {
			return domain.ErrNoSuchUser
		}
		return err
	}
	if err := checkOTP(user, r.OTPCode); err != nil {
		result = "failure"
		return err
	}

	err = a.store.WithTx(ctx, func(tx *store.Store) error {
		if err := tx.Users().SetEmailVerified(ctx, user.ID); err != nil {
			return err
		}
		return tx.Users().ClearOTP(ctx, user.ID)
	})
	if err != nil {
		result = "failure"
		return err
	}
	return nil
}

func (a *AuthServiceImpl) Login(ctx context.Context, r dto.LoginRequest) (*dto.LoginResponse, error) {
	result := "success"
	defer func() {
		metrics.LoginsTotal.WithLabelValues(result).Inc()
	}()

	email := strings.ToLower(strings.TrimSpace(r.Email))
	if email == "" || r.Password == "" {
		result = "failure"
		return nil, domain.ErrUnauthenticated
	}

	user, err := a.store.Users().GetByEmail(ctx, email)
	if err != nil {
		// Same answer for unknown accounts and bad passwords.
		result = "failure"
		return nil, domain.ErrUnauthenticated
	}
	ok, err := a.pw.Verify(r.Password, user.PasswordHash)
	if err != nil || !ok {
		result = "failure"
		return nil, domain.ErrUnauthenticated
	}

	tok, err := a.tokens.IssueOrFetch(ctx, user.ID)
	if err != nil {
		result = "failure"
		return nil, err
	}

	slog.Info("login", "user_id", user.ID,
		"request_id", middleware.RequestIDFromContext(ctx))

	return &dto.LoginResponse{
		Token:  tok.Key,
		UserID: user.ID.String(),
		Email:  user.Email,
	}, nil
}

func (a *AuthServiceImpl) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return domain.ErrInvalidInput
	}

	unlock := a.locks.lock(email)
	defer unlock()

	user, err := a.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return domain.ErrNoSuchUser
		}
		return err
	}

	code, err := otp.Generate(a.otpLen)
	if err != nil {
		return err
	}
	expiry := time.Now().UTC().Add(otp.ExpiryWindow)
	if err := a.store.Users().SetOTP(ctx, user.ID, code, expiry); err != nil {
		return err
	}

	token, err := a.links.Sign(user.Email)
	if err != nil {
		return err
	}
	link := a.links.Link(token)

	a.dispatch(ctx, "password_reset", func() error {
		return a.mail.SendPasswordReset(ctx, user.Email, user.FirstName, link, code)
	})
	return nil
}

func (a *AuthServiceImpl) ConfirmPasswordReset(ctx context.Context, r dto.PasswordResetConfirm) error {
	result := "success"
	defer func() {
		metrics.OTPVerificationsTotal.WithLabelValues("password_reset", result).Inc()
	}()

	email := strings.ToLower(strings.TrimSpace(r.Email))
	if email == "" || r.OTPCode == "" || r.NewPassword == "" {
		result = "failure"
		return domain.ErrInvalidInput
	}
	if r.NewPassword != r.NewPassword2 {
		result = "failure"
		return domain.ErrPasswordMismatch
	}

	unlock := a.locks.lock(email)
	defer unlock()

	user, err := a.store.Users().GetByEmail(ctx, email)
	if err != nil {
		result = "failure"
		if errors.Is(err, store.ErrRecordNotFound) {
			return domain.ErrNoSuchUser
		}
		return err
	}
	if err := checkOTP(user, r.OTPCode); err != nil {
		result = "failure"
		return err
	}
	if len(r.NewPassword) < 8 {
		result = "failure"
		return domain.ErrPasswordTooShort
	}

	encoded, err := a.pw.Hash(r.NewPassword)
	if err != nil {
		result = "failure"
		return err
	}

	err = a.store.WithTx(ctx, func(tx *store.Store) error {
		if err := tx.Users().SetPasswordHash(ctx, user.ID, encoded); err != nil {
			return err
		}
		// A consumed OTP is dead; stale sessions go with it.
		if err := tx.Users().ClearOTP(ctx, user.ID); err != nil {
			return err
		}
		_, err := tx.Tokens().DeleteByUserID(ctx, user.ID)
		return err
	})
	if err != nil {
		result = "failure"
		return err
	}

	slog.Info("password reset", "user_id", user.ID,
		"request_id", middleware.RequestIDFromContext(ctx))
	return nil
}

func (a *AuthServiceImpl) UpdateProfile(ctx context.Context, userID domain.UserID, r dto.ProfileUpdate) (*domain.UserProfile, error) {
	user, err := a.store.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, domain.ErrNoSuchUser
		}
		return nil, err
	}

	// Role and membership status are administrative fields. Members may
	// echo their current values back (PUT semantics) but never change
	// them, or a self-service update would mint admins.
	if r.Role != nil && *r.Role != user.Role && !staffRole(user.Role) {
		return nil, domain.ErrForbidden
	}
	if r.MembershipStatus != nil && *r.MembershipStatus != user.MembershipStatus && !staffRole(user.Role) {
		return nil, domain.ErrForbidden
	}

	// Snapshot, apply, diff: the explicit version of dirty-field
	// tracking.
	oldStatus := user.MembershipStatus

	if r.FirstName != nil {
		user.FirstName = strings.TrimSpace(*r.FirstName)
	}
	if r.LastName != nil {
		user.LastName = strings.TrimSpace(*r.LastName)
	}
	if r.DateOfBirth != nil {
		dob, err := parseOptionalDate(*r.DateOfBirth)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		user.DateOfBirth = dob
	}
	if r.Address != nil {
		user.Address = *r.Address
	}
	if r.PhoneNumber != nil {
		user.PhoneNumber = strings.TrimSpace(*r.PhoneNumber)
	}
	if r.MembershipStatus != nil {
		if !domain.ValidMembershipStatus(*r.MembershipStatus) {
			return nil, domain.ErrInvalidInput
		}
		user.MembershipStatus = *r.MembershipStatus
	}
	if r.MembershipStartDate != nil {
		d, err := parseOptionalDate(*r.MembershipStartDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		user.MembershipStartDate = d
	}
	if r.Role != nil {
		if !domain.ValidRole(*r.Role) {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *r.Role
	}
	if r.ChurchBranchID != nil {
		id, err := parseOptionalUUID(*r.ChurchBranchID)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		user.ChurchBranchID = id
	}
	if r.EmergencyContactName != nil {
		user.EmergencyContactName = *r.EmergencyContactName
	}
	if r.EmergencyContactPhone != nil {
		user.EmergencyContactPhone = *r.EmergencyContactPhone
	}
	if r.TitheAmountCents != nil {
		if *r.TitheAmountCents < 0 {
			return nil, domain.ErrInvalidInput
		}
		user.TitheAmountCents = *r.TitheAmountCents
	}

	if err := a.store.Users().UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	if user.MembershipStatus != oldStatus && a.OnMembershipChange != nil {
		a.OnMembershipChange(user, oldStatus, user.MembershipStatus)
	}
	return user, nil
}

func (a *AuthServiceImpl) DeleteAccount(ctx context.Context, userID domain.UserID) error {
	return a.store.WithTx(ctx, func(tx *store.Store) error {
		// Token first so no credential outlives the account.
		if _, err := tx.Tokens().DeleteByUserID(ctx, userID); err != nil {
			return err
		}
		rows, err := tx.Users().Delete(ctx, userID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrNoSuchUser
		}
		return nil
	})
}

// checkOTP applies the match-then-expiry order the API promises.
func checkOTP(user *domain.UserProfile, submitted string) error {
	if user.OTPCode == nil || user.OTPExpiry == nil {
		return domain.ErrInvalidOTP
	}
	if subtle.ConstantTimeCompare([]byte(*user.OTPCode), []byte(submitted)) != 1 {
		return domain.ErrInvalidOTP
	}
	if !user.OTPValid(time.Now().UTC()) {
		return domain.ErrOTPExpired
	}
	return nil
}

func (a *AuthServiceImpl) dispatch(ctx context.Context, kind string, send func() error) {
	if err := send(); err != nil {
		metrics.EmailsSentTotal.WithLabelValues(kind, "failure").Inc()
		slog.Warn("email dispatch failed", "kind", kind, "error", err,
			"request_id", middleware.RequestIDFromContext(ctx))
		return
	}
	metrics.EmailsSentTotal.WithLabelValues(kind, "success").Inc()
}

func parseOptionalDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseOptionalUUID(s string) (*uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
