package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// LoginRequest identifies the admin by email; "username" is accepted as an
// alias for older clients.
type LoginRequest struct {
	Email    string `json:"email"    validate:"omitempty,email"`
	Username string `json:"username" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=4"`
}

// Login returns whichever identifier was sent.
func (r LoginRequest) Login() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Username
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type AdminResponse struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Rol    string `json:"rol"`
	Branch string `json:"branch,omitempty"`
}

type LoginResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    int           `json:"expires_in"` // seconds
	Admin        AdminResponse `json:"admin"`
}
