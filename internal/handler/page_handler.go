package handler

import (
	"docs-portal/internal/model"
	"docs-portal/internal/model/requestresponse"
	"docs-portal/internal/security"
	"net/http"
	"strings"
)

// PageHandler : модели страниц портала. Доступ к страницам уже проверен guard
type PageHandler struct {
	store *security.CookieStore
	pages security.Pages
}

func NewPageHandler(store *security.CookieStore, pages security.Pages) *PageHandler {
	return &PageHandler{store: store, pages: pages}
}

// Index godoc
// @Summary Страница входа
// @Description Если пользователь уже вошел, содержит приветствие и ссылку на его страницу
// @Tags Pages
// @Produce json
// @Success 200 {object} requestresponse.PageResponse
// @Router /index [get]
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	resp := requestresponse.PageResponse{
		Page: "index",
		Links: map[string]string{
			"login":    "/auth/login",
			"register": "/auth/register",
		},
	}

	if session, err := security.SessionFromContext(r.Context()); err == nil {
		resp.Welcome = session.User.DisplayName()
		resp.User = session.User
		resp.Links["continue"] = h.pages.Dashboard
		resp.Links["logout"] = "/auth/logout"
	}

	writeJSON(w, http.StatusOK, resp)
}

// VerifyEmail godoc
// @Summary Страница подтверждения email
// @Description Email подставляется из параметра или из cookie регистрации
// @Tags Pages
// @Produce json
// @Param email query string false "Email"
// @Success 200 {object} requestresponse.PageResponse
// @Router /verify-email [get]
func (h *PageHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		email = h.store.RegisterEmail(r)
	}
	if email == "" {
		if user := h.store.User(r); user != nil {
			email = user.Email
		}
	}

	writeJSON(w, http.StatusOK, requestresponse.PageResponse{
		Page:  "verify-email",
		Links: map[string]string{"verify": "/auth/verify", "login": h.pages.Entry},
		Data:  map[string]string{"email": email},
	})
}

// Guest godoc
// @Summary Страница гостя
// @Tags Pages
// @Produce json
// @Success 200 {object} requestresponse.PageResponse
// @Success 302 "Redirect, если guard не пропустил"
// @Router /guest [get]
func (h *PageHandler) Guest(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "guest", map[string]string{"logout": "/auth/logout"})
}

// Dashboard godoc
// @Summary Главная страница
// @Description Для администратора содержит ссылки на страницы управления документами и ролями
// @Tags Pages
// @Produce json
// @Success 200 {object} requestresponse.PageResponse
// @Success 302 "Redirect, если guard не пропустил"
// @Router /dashboard [get]
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	links := map[string]string{"logout": "/auth/logout"}

	if session, err := security.SessionFromContext(r.Context()); err == nil && session.IsAdmin() {
		links["documents"] = "/documents"
		links["upload"] = "/upload"
		links["updateRole"] = "/update-role"
	}

	h.render(w, r, "dashboard", links)
}

// AdminPage : страница администратора с API, которое она использует
func (h *PageHandler) AdminPage(name string, api map[string]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		links := map[string]string{"dashboard": h.pages.Dashboard, "logout": "/auth/logout"}
		for key, value := range api {
			links[key] = value
		}
		h.render(w, r, name, links)
	}
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, page string, links map[string]string) {
	var user *model.User
	if session, err := security.SessionFromContext(r.Context()); err == nil {
		user = session.User
	}

	writeJSON(w, http.StatusOK, requestresponse.PageResponse{
		Page:    page,
		Welcome: user.DisplayName(),
		User:    user,
		Links:   links,
	})
}
