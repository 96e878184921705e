package domain

import "errors"

var (
	ErrMissingFields      = errors.New("please fill in all required fields")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters long")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNegativePrice      = errors.New("price must not be negative")
	ErrTourUnavailable    = errors.New("tour not found or unavailable")
	ErrNotFound           = errors.New("not found")
	ErrNotOwner           = errors.New("booking does not belong to this user")
	ErrSelfDelete         = errors.New("you cannot delete your own account")
)
