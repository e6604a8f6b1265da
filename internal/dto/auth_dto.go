package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"`
	User         UserResponse `json:"user"`
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=60"`
	Name     string `json:"name"     validate:"required,min=2"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"required,oneof=admin staff"`
}

type UpdateUserRequest struct {
	Name     string `json:"name"     validate:"omitempty,min=2"`
	Password string `json:"password" validate:"omitempty,min=8"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin staff"`
}
