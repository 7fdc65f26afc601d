package service

import "errors"

// Sentinel errors returned by the services. Handlers map these to HTTP
// statuses; anything else is treated as an internal error.
var (
	ErrUnauthenticated     = errors.New("user not authenticated")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("validation failed")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAlreadyInvited      = errors.New("user already invited")
	ErrInviteExpired       = errors.New("invite expired")
	ErrPathTaken           = errors.New("tenant path already taken")
	ErrEmailTaken          = errors.New("email already registered")
	ErrItemNotFound        = errors.New("payment item not found or inactive")
	ErrNoHouseAssigned     = errors.New("no house assigned")
	ErrPaymentRecordFailed = errors.New("failed to create payment record")
)
