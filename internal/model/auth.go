package model

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Registration is the payload for both user and admin registration.
type Registration struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginResult is what the remote returns on successful login.
type LoginResult struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
	Email string `json:"email,omitempty"`
}

// Account is the registered user or admin echoed back by the remote.
type Account struct {
	ID       int64  `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	Role     Role   `json:"role,omitempty"`
}
