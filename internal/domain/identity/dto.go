// internal/domain/identity/dto.go
package identity

import "time"

// SignUpRequest for account creation
type SignUpRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100,notblank"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=100,strongpassword"`
}

// LoginRequest for credential login. Password is only checked for presence
// here; strength is enforced against the stored hash, not the schema.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest for password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=100,strongpassword"`
}

// VerifyEmailRequest completes email verification
type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

// ChangeRoleRequest for admin role assignment
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin user viewer"`
}

// UserInfo is the client-visible projection of an identity.
type UserInfo struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	Role          Role       `json:"role"`
	EmailVerified *time.Time `json:"email_verified"`
}

// Info strips an identity down to its client-visible fields.
func (i *Identity) Info() UserInfo {
	return UserInfo{
		ID:            i.ID,
		Email:         i.Email,
		Name:          i.Name,
		Role:          i.Role,
		EmailVerified: i.EmailVerified,
	}
}

// LoginResponse successful login response
type LoginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserInfo  `json:"user"`
}
