package dto

import "github.com/urbancanopy/auth-service/internal/models"

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type UpdateRoleRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}
