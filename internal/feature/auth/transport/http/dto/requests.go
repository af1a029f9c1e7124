// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// RegisterReq is the body of POST /api/auth/register.
// Field checks happen in the handler so each failure gets its own message.
type RegisterReq struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginReq is the body of POST /api/auth/login.
type LoginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// EmailReq is the body of POST /api/auth/check-password and POST /api/users.
type EmailReq struct {
	Email string `json:"email" binding:"required"`
}
