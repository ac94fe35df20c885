package client

import "docs-portal/internal/model"

// Тела запросов и ответов внешнего API

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Company  string `json:"company,omitempty"`
}

type verifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type authResponse struct {
	Success bool        `json:"success"`
	Token   string      `json:"token"`
	User    *model.User `json:"user"`
	Error   string      `json:"error"`
	Message string      `json:"message"`
}

type profileResponse struct {
	User *model.User `json:"user"`
}

type updateRoleRequest struct {
	UserID string     `json:"userId"`
	Role   model.Role `json:"rol"`
	Email  string     `json:"email"`
}

type updateRoleResponse struct {
	Success bool `json:"success"`
	User    struct {
		Role model.Role `json:"rol"`
		Name string     `json:"name"`
	} `json:"user"`
	Error string `json:"error"`
}

type documentsResponse struct {
	Success   bool             `json:"success"`
	Documents []model.Document `json:"documents"`
	Error     string           `json:"error"`
}

type documentResponse struct {
	Success  bool            `json:"success"`
	Document *model.Document `json:"document"`
	Error    string          `json:"error"`
}

type deleteDocumentRequest struct {
	ID string `json:"id"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type downloadResponse struct {
	Success   bool   `json:"success"`
	SignedURL string `json:"signedUrl"`
	Error     string `json:"error"`
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// FinalizeDocumentRequest : метаданные документа после успешной записи файла в хранилище
type FinalizeDocumentRequest struct {
	DocumentID  string             `json:"documentId"`
	Name        string             `json:"name"`
	Type        model.DocumentType `json:"type"`
	Category    string             `json:"category"`
	Brand       string             `json:"brand"`
	Model       string             `json:"model"`
	Description string             `json:"description"`
	Keywords    []string           `json:"keywords"`
	FileURL     string             `json:"file_url"`
	FileName    string             `json:"file_name"`
	FileSize    int64              `json:"file_size"`
	FileType    string             `json:"file_type"`
}

// AuthResult : токен и пользователь из ответа на вход, регистрацию или подтверждение
type AuthResult struct {
	Token string
	User  *model.User
}
