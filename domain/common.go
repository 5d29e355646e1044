package domain

import (
	"errors"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	MessageUserNotAllowed       = "user not allowed"
	MessageFailedBodyRequest    = "failed to process request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	ErrParseUUID      = errors.New("failed to parse UUID")
	ErrUserNotAllowed = errors.New("user not allowed")
	ErrTokenNotFound  = errors.New("failed to token not found")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
)
