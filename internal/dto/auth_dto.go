package dto

import "time"

// AdminLoginRequest carries admin sign-in credentials.
type AdminLoginRequest struct {
	Mobile   string `json:"mobile" validate:"required,min=10,max=15"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthUser is the principal projection included in login responses.
type AuthUser struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// LoginResponse pairs a freshly signed token with its user.
type LoginResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

// ChangePasswordRequest carries a password change for an authenticated caller.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,max=72"`
}

// ForgotPasswordRequest starts the OTP flow for the given mobile number.
type ForgotPasswordRequest struct {
	Mobile string `json:"mobile" validate:"required,min=10,max=15"`
}

// VerifyOTPRequest exchanges a one-time password for a reset token.
type VerifyOTPRequest struct {
	Mobile string `json:"mobile" validate:"required,min=10,max=15"`
	OTP    string `json:"otp" validate:"required,len=6,numeric"`
}

// ResetPasswordRequest consumes a reset token to set a new password.
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=72"`
}
