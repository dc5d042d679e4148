package dto

// RegisterRequest describes a sign-up payload. Role is farmer or buyer.
type RegisterRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// LoginRequest describes login/password payload.
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AccountResponse is the public view of an account.
type AccountResponse struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Role  string `json:"role"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token   string          `json:"token"`
	Account AccountResponse `json:"account"`
}
