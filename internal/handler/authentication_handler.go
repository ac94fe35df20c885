package handler

import (
	"docs-portal/internal/apperrors"
	"docs-portal/internal/model"
	"docs-portal/internal/model/requestresponse"
	"docs-portal/internal/ports"
	"docs-portal/internal/security"
	"docs-portal/internal/util"
	"errors"
	"net/http"
	"net/url"
	"strings"
)

type AuthenticationHandler struct {
	ports.AuthenticationService
	store    *security.CookieStore
	pages    security.Pages
	inflight *util.InFlight
}

func NewAuthenticationHandler(
	authenticationService ports.AuthenticationService,
	store *security.CookieStore,
	pages security.Pages,
	inflight *util.InFlight,
) *AuthenticationHandler {
	return &AuthenticationHandler{
		authenticationService,
		store,
		pages,
		inflight,
	}
}

// Login godoc
// @Summary Вход
// @Description Вход по email и паролю. Токен сохраняется в cookie, в ответе адрес страницы, на которую нужно перейти
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.LoginRequest true "Тело запроса"
// @Success 200 {object} requestresponse.AuthResponse "Успешный вход"
// @Failure 400 {object} requestresponse.ErrorResponse "Пустые поля"
// @Failure 401 {object} requestresponse.ErrorResponse "Email не подтвержден, redirect указывает на страницу подтверждения"
// @Failure 409 {object} requestresponse.ErrorResponse "Запрос уже выполняется"
// @Failure 422 {object} requestresponse.ErrorResponse "API отклонило вход"
// @Failure 502 {object} requestresponse.ErrorResponse "Ошибка соединения с API"
// @Router /auth/login [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	release, err := h.inflight.Acquire("login:" + strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		writeServiceError(w, h.store, h.pages, err)
		return
	}
	defer release()

	result, err := h.AuthenticationService.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailNotVerified) {
			h.store.SetRegisterEmail(w, strings.TrimSpace(req.Email))
			util.WriteError(w, requestresponse.ErrorDetail{
				Code:     http.StatusUnauthorized,
				Text:     "Por favor, verifica tu email antes de iniciar sesión",
				Redirect: verifyLink(h.pages.Verify, req.Email),
			})
			return
		}
		writeServiceError(w, h.store, h.pages, err)
		return
	}

	h.store.Save(w, result.Token, result.User)

	writeJSON(w, http.StatusOK, requestresponse.NewAuthResponse(result.User, h.landingPage(result.User), "¡Bienvenido!"))
}

// Register godoc
// @Summary Регистрация
// @Description Создает учетную запись. После регистрации нужно подтвердить email кодом из письма
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RegisterRequest true "Тело запроса"
// @Success 201 {object} requestresponse.AuthResponse "Регистрация выполнена, redirect на страницу подтверждения"
// @Failure 400 {object} requestresponse.ErrorResponse "Ошибка валидации формы"
// @Failure 409 {object} requestresponse.ErrorResponse "Email уже зарегистрирован, link указывает на страницу входа"
// @Failure 502 {object} requestresponse.ErrorResponse "Ошибка соединения с API"
// @Router /auth/register [post]
func (h *AuthenticationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	release, err := h.inflight.Acquire("register:" + strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		writeServiceError(w, h.store, h.pages, err)
		return
	}
	defer release()

	result, err := h.AuthenticationService.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			util.WriteError(w, requestresponse.ErrorDetail{
				Code: http.StatusConflict,
				Text: "Este email ya está registrado. Inicia sesión",
				Link: h.pages.Entry,
			})
			return
		}
		writeServiceError(w, h.store, h.pages, err)
		return
	}

	email := strings.TrimSpace(req.Email)
	h.store.SetRegisterEmail(w, email)

	writeJSON(w, http.StatusCreated, requestresponse.NewAuthResponse(result.User, verifyLink(h.pages.Verify, email),
		"Registro exitoso. Revisa tu email para el código de verificación"))
}

// Verify godoc
// @Summary Подтверждение email
// @Description Подтверждает email шестизначным кодом. Email берется из тела запроса или из cookie регистрации
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.VerifyRequest true "Тело запроса"
// @Success 200 {object} requestresponse.AuthResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Код должен состоять из 6 цифр"
// @Failure 422 {object} requestresponse.ErrorResponse "Неверный код"
// @Failure 502 {object} requestresponse.ErrorResponse "Ошибка соединения с API"
// @Router /auth/verify [post]
func (h *AuthenticationHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.VerifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = h.store.RegisterEmail(r)
	}

	release, err := h.inflight.Acquire("verify:" + strings.ToLower(email))
	if err != nil {
		writeServiceError(w, h.store, h.pages, err)
		return
	}
	defer release()

	result, err := h.AuthenticationService.Verify(r.Context(), email, req.Code)
	if err != nil {
		writeServiceError(w, h.store, h.pages, err)
		return
	}

	h.store.Save(w, result.Token, result.User)
	h.store.ClearRegisterEmail(w)

	redirect := h.pages.Entry
	if result.Token != "" {
		redirect = h.landingPage(result.User)
	}

	writeJSON(w, http.StatusOK, requestresponse.NewAuthResponse(result.User, redirect, "¡Email verificado exitosamente!"))
}

// Logout godoc
// @Summary Выход
// @Description Удаляет токен из обоих хранилищ, данные пользователя и email регистрации. Всегда успешен
// @Tags Authentication
// @Produce json
// @Success 200 {object} requestresponse.AuthResponse
// @Router /auth/logout [post]
func (h *AuthenticationHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := security.ResolveToken(h.store.Scopes(r)...)

	h.AuthenticationService.Logout(r.Context(), token)
	h.store.Clear(w)

	writeJSON(w, http.StatusOK, requestresponse.NewAuthResponse(nil, h.pages.Entry, ""))
}

// landingPage : первая страница после входа
func (h *AuthenticationHandler) landingPage(user *model.User) string {
	switch {
	case user == nil:
		return h.pages.Dashboard
	case user.IsVerified == false:
		return verifyLink(h.pages.Verify, user.Email)
	case user.Role == model.RoleGuest:
		return h.pages.Guest
	default:
		return h.pages.Dashboard
	}
}

func verifyLink(page, email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return page
	}
	return page + "?email=" + url.QueryEscape(email)
}
