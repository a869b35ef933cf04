package models

// User is an authenticated identity.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	Department string `json:"department,omitempty"`
	VendorID   string `json:"vendor_id,omitempty"`
}

// LoginRequest carries demo credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Token    string `json:"token"`
	User     User   `json:"user"`
	Redirect string `json:"redirect"`
}
