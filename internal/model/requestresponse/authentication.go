package requestresponse

import "docs-portal/internal/model"

// LoginRequest : тело запроса на вход
type LoginRequest struct {
	Email    string `json:"email" example:"tech@example.com"`
	Password string `json:"password" example:"P@ssw0rd123"`
}

// RegisterRequest : тело запроса регистрации
type RegisterRequest struct {
	Name            string `json:"name" example:"Juan Pérez"`
	Email           string `json:"email" example:"tech@example.com"`
	Password        string `json:"password" example:"P@ssw0rd123"`
	ConfirmPassword string `json:"confirmPassword" example:"P@ssw0rd123"`
	Company         string `json:"company,omitempty" example:"RPG Electronics"`
	Terms           bool   `json:"terms" example:"true"`
}

// VerifyRequest : тело запроса подтверждения email
type VerifyRequest struct {
	Email string `json:"email,omitempty" example:"tech@example.com"`
	Code  string `json:"code" example:"123456"`
}

// AuthResponse : успешный вход, регистрация или подтверждение email
type AuthResponse struct {
	Response struct {
		User     *model.User `json:"user,omitempty"`
		Redirect string      `json:"redirect" example:"/dashboard"`
		Message  string      `json:"message,omitempty" example:"¡Bienvenido!"`
	} `json:"response"`
}

func NewAuthResponse(user *model.User, redirect, message string) AuthResponse {
	var resp AuthResponse
	resp.Response.User = user
	resp.Response.Redirect = redirect
	resp.Response.Message = message
	return resp
}
