package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CreateAdminRequest struct {
	Email    string `json:"email"    validate:"required,email,max=150"`
	Name     string `json:"name"     validate:"required,min=2,max=100"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"required,oneof=admin superadmin"`
}

type UpdateAdminRequest struct {
	Name     string `json:"name"     validate:"omitempty,min=2,max=100"`
	Password string `json:"password" validate:"omitempty,min=8"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin superadmin"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type AdminResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	Name        string  `json:"name"`
	Role        string  `json:"role"`
	Active      bool    `json:"active"`
	LastLoginAt *string `json:"last_login_at"`
}

type LoginResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    int           `json:"expires_in"` // seconds
	User         AdminResponse `json:"user"`
}
