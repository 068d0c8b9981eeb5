package models

// Session is the single admin actor's persisted authentication state.
type Session struct {
	Username        string `json:"username"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

// LoginRequest is the credential payload for the login endpoint.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse reports the outcome of a login attempt.
type LoginResponse struct {
	Success bool     `json:"success"`
	Session *Session `json:"session,omitempty"`
}
