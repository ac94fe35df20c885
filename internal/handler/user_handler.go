package handler

import (
	"docs-portal/internal/apperrors"
	"docs-portal/internal/model/requestresponse"
	"docs-portal/internal/ports"
	"docs-portal/internal/security"
	"docs-portal/internal/util"
	"encoding/json"
	"errors"
	"net/http"
)

type UserHandler struct {
	ports.UserService
	store    *security.CookieStore
	pages    security.Pages
	inflight *util.InFlight
}

func NewUserHandler(userService ports.UserService, store *security.CookieStore, pages security.Pages, inflight *util.InFlight) *UserHandler {
	return &UserHandler{userService, store, pages, inflight}
}

// UpdateRole godoc
// @Summary Смена роли пользователя
// @Description Назначает роль пользователю по email. Доступно только администратору с подтвержденным email.
// @Tags Users
// @Accept json
// @Produce json
// @Param body body requestresponse.UpdateRoleRequest true "Email и новая роль (guest, user, moderator, admin)"
// @Success 200 {object} requestresponse.UpdateRoleResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Неверная роль или пустой email"
// @Failure 401 {object} requestresponse.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} requestresponse.ErrorResponse "Доступ запрещён"
// @Failure 409 {object} requestresponse.ErrorResponse "Запрос уже выполняется"
// @Failure 502 {object} requestresponse.ErrorResponse "Ошибка соединения с API"
// @Router /api/users/role [post]
func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	session, err := security.SessionFromContext(r.Context())
	if err != nil {
		writeServiceError(w, h.store, h.pages, err)
		return
	}

	var req requestresponse.UpdateRoleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	release, err := h.inflight.Acquire("role:" + session.Token)
	if err != nil {
		writeServiceError(w, h.store, h.pages, err)
		return
	}
	defer release()

	user, err := h.UserService.UpdateRole(r.Context(), session, req.Email, req.Role)
	if err != nil {
		writeServiceError(w, h.store, h.pages, err)
		return
	}

	resp := requestresponse.UpdateRoleResponse{}
	resp.Response.Role = user.Role
	resp.Response.Name = user.Name

	writeJSON(w, http.StatusOK, resp)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

func sendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	util.HandleError(w, message, statusCode)
}

// writeServiceError : ответ по виду ошибки.
// Недействительная сессия очищается, клиенту возвращается адрес страницы входа
func writeServiceError(w http.ResponseWriter, store *security.CookieStore, pages security.Pages, err error) {
	detail := requestresponse.ErrorDetail{
		Code: util.StatusFromError(err),
		Text: util.UserMessage(err),
	}

	switch {
	case errors.Is(err, apperrors.ErrEmailNotVerified):
		detail.Redirect = pages.Verify
	case errors.Is(err, apperrors.ErrForbidden):
		detail.Redirect = pages.Dashboard
	case errors.Is(err, apperrors.ErrAuth):
		store.Clear(w)
		detail.Redirect = pages.Entry
	}

	util.WriteError(w, detail)
}
