package requestresponse

import "docs-portal/internal/model"

// ErrorDetail : детальная информация об ошибке
type ErrorDetail struct {
	Code     int    `json:"code" example:"400"`
	Text     string `json:"text" example:"for example: invalid login or password"`
	Redirect string `json:"redirect,omitempty" example:"/index"`
	Link     string `json:"link,omitempty" example:"/index"`
}

// ErrorResponse : стандартная структура ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// UpdateRoleRequest : тело запроса на смену роли
type UpdateRoleRequest struct {
	Email string `json:"email" example:"tech@example.com"`
	Role  string `json:"rol" example:"moderator"`
}

// UpdateRoleResponse : успешный ответ
type UpdateRoleResponse struct {
	Response struct {
		Role model.Role `json:"rol" example:"moderator"`
		Name string     `json:"name" example:"Juan Pérez"`
	} `json:"response"`
}

// PageResponse : модель страницы, которую увидит пользователь после проверки guard
type PageResponse struct {
	Page    string            `json:"page" example:"dashboard"`
	Welcome string            `json:"welcome,omitempty" example:"Juan Pérez"`
	User    *model.User       `json:"user,omitempty"`
	Links   map[string]string `json:"links,omitempty"`
	Data    map[string]string `json:"data,omitempty"`
}

// SuccessResponse : стандартный ответ успешного выполнения операции
type SuccessResponse struct {
	Message string `json:"message" example:"Операция выполнена успешно"`
}
