package models

// User is the identity published by the auth endpoints. The client
// never mutates it; login, register and logout replace it wholesale.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
}

// AuthResponse is the shared response shape of login and register.
type AuthResponse struct {
	Token   string `json:"token"`
	Type    string `json:"type"`
	User    User   `json:"user"`
	Message string `json:"message"`
}

// ValidateResponse is the token validation payload. When Valid is
// false the remaining fields carry no meaning.
type ValidateResponse struct {
	Valid  bool   `json:"valid"`
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}
