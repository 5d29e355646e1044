package domain

import (
	"errors"
)

var (
	MessageSuccessRegister       = "user registered successfully"
	MessageSuccessLogin          = "login successful"
	MessageSuccessGetProfile     = "profile retrieved successfully"
	MessageSuccessUpdateProfile  = "profile updated successfully"
	MessageSuccessForgotPassword = "password reset email sent"
	MessageSuccessResetPassword  = "password reset successfully"

	MessageFailedRegister       = "failed to register user"
	MessageFailedLogin          = "failed to login"
	MessageFailedGetProfile     = "failed to retrieve profile"
	MessageFailedUpdateProfile  = "failed to update profile"
	MessageFailedForgotPassword = "failed to send password reset email"
	MessageFailedResetPassword  = "failed to reset password"

	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrCredentialsInvalid = errors.New("invalid email or password")
	ErrProfileNotFound    = errors.New("user profile not found")
)

type (
	RegisterRequest struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	RegisterResponse struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	UpdateProfileRequest struct {
		Name                string   `json:"name" validate:"omitempty"`
		PhoneNumber         string   `json:"phone_number" validate:"omitempty"`
		PreferredCategories []string `json:"preferred_categories" validate:"omitempty"`
	}

	ProfileResponse struct {
		ID                  string   `json:"id"`
		Name                string   `json:"name"`
		Email               string   `json:"email"`
		PhoneNumber         string   `json:"phone_number,omitempty"`
		CoinBalance         int      `json:"coin_balance"`
		FreeContentConsumed int      `json:"free_content_consumed"`
		FreeContentLimit    int      `json:"free_content_limit"`
		ProfileComplete     bool     `json:"profile_complete"`
		PreferredCategories []string `json:"preferred_categories,omitempty"`
		IsAdmin             bool     `json:"is_admin"`
	}

	ForgotPasswordRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	ResetPasswordRequest struct {
		Token    string `json:"token" validate:"required"`
		Password string `json:"password" validate:"required,min=8"`
	}
)
