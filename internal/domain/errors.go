package domain

import "errors"

// Error taxonomy: validation -> 400, not found -> 404, authorization -> 401.
var (
	ErrPasswordMismatch = errors.New("passwords did not match")
	ErrPasswordTooShort = errors.New("password too short")
	ErrEmailExists      = errors.New("email exists")
	ErrUsernameExists   = errors.New("username exists")
	ErrInvalidOTP       = errors.New("invalid OTP")
	ErrOTPExpired       = errors.New("OTP expired")
	ErrNoSuchUser       = errors.New("no such user")
	ErrUnauthenticated  = errors.New("unable to authenticate")
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrForbidden        = errors.New("forbidden")
)
