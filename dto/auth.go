package dto

// RegisterRequest định nghĩa request đăng ký
type RegisterRequest struct {
	Name                 string `json:"name" validate:"required,min=2,max=100"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=8"`
	PasswordConfirmation string `json:"passwordConfirmation"`
	Pseudo               string `json:"pseudo" validate:"required,min=3,max=30"`
}

// LoginRequest định nghĩa request đăng nhập
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse token + thông tin user
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// GoogleAuthRequest định nghĩa request xác thực Google
type GoogleAuthRequest struct {
	TokenID string `json:"tokenId" binding:"required"`
}

// GoogleUser thông tin lấy từ payload Google ID token
type GoogleUser struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Picture       string `json:"picture"`
}
