package util

import (
	"docs-portal/internal/apperrors"
	"docs-portal/internal/model/requestresponse"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
)

func LogError(message string, err error) error {
	log.Printf("%s: %v", message, err)
	return fmt.Errorf("%s: %w", message, err)
}

func HandleError(w http.ResponseWriter, message string, statusCode int) {
	WriteError(w, requestresponse.ErrorDetail{Code: statusCode, Text: message})
}

// WriteError : пишет ErrorResponse, Code используется как HTTP статус
func WriteError(w http.ResponseWriter, detail requestresponse.ErrorDetail) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(detail.Code)
	json.NewEncoder(w).Encode(requestresponse.ErrorResponse{Error: detail})
}

// StatusFromError : HTTP статус по виду ошибки
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrInProgress):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrRejected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// userMessages : тексты для пользователя, от частных ошибок к общим
var userMessages = []struct {
	err  error
	text string
}{
	{apperrors.ErrInvalidFileType, "Solo se permiten archivos PDF, DOC y DOCX"},
	{apperrors.ErrFileTooLarge, "El archivo no puede superar 25MB"},
	{apperrors.ErrEmptyFile, "El archivo está vacío"},
	{apperrors.ErrMissingField, "Complete los campos obligatorios"},
	{apperrors.ErrPasswordMismatch, "Las contraseñas no coinciden"},
	{apperrors.ErrWeakPassword, "La contraseña debe tener al menos 6 caracteres"},
	{apperrors.ErrInvalidEmail, "Ingrese un email válido"},
	{apperrors.ErrInvalidCode, "El código debe tener 6 dígitos"},
	{apperrors.ErrTermsNotAccepted, "Debe aceptar los términos y condiciones"},
	{apperrors.ErrInvalidRole, "Rol inválido"},
	{apperrors.ErrInvalidDocumentType, "Tipo de documento inválido"},
	{apperrors.ErrQueryTooShort, "La búsqueda debe tener al menos 2 caracteres"},
	{apperrors.ErrValidation, "Datos inválidos"},
	{apperrors.ErrEmailNotVerified, "Por favor, verifica tu email antes de iniciar sesión"},
	{apperrors.ErrForbidden, "No tienes permisos para realizar esta acción"},
	{apperrors.ErrAuth, "Sesión expirada. Por favor, inicia sesión nuevamente"},
	{apperrors.ErrConflict, "El recurso ya existe"},
	{apperrors.ErrInProgress, "La solicitud ya está en curso"},
	{apperrors.ErrRejected, "La solicitud fue rechazada"},
}

// UserMessage : текст для пользователя. Сообщение API показывается как есть,
// остальные ошибки заменяются текстом по виду, контекст логов не раскрывается
func UserMessage(err error) string {
	if errors.Is(err, apperrors.ErrNetwork) {
		return "Error de conexión. Por favor, intente nuevamente."
	}
	if message := apperrors.Message(err); message != "" {
		return message
	}
	for _, m := range userMessages {
		if errors.Is(err, m.err) == false {
			continue
		}
		if m.err == apperrors.ErrMissingField {
			if field := apperrors.Detail(err, apperrors.ErrMissingField); field != "" {
				return m.text + ": " + field
			}
		}
		return m.text
	}
	return "Error inesperado"
}

// Known : ошибка относится к одному из видов apperrors
func Known(err error) bool {
	for _, kind := range []error{
		apperrors.ErrValidation,
		apperrors.ErrAuth,
		apperrors.ErrConflict,
		apperrors.ErrNetwork,
		apperrors.ErrRejected,
		apperrors.ErrInProgress,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
