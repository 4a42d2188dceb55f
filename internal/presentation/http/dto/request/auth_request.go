package request

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateUserRequest represents a staff account creation request
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=80"`
	FullName string `json:"full_name" binding:"max=120"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=NewPassword"`
}
