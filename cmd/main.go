package main

import (
	"context"
	"docs-portal/config"
	_ "docs-portal/docs"
	"docs-portal/internal/client"
	"docs-portal/internal/handler"
	"docs-portal/internal/repository"
	"docs-portal/internal/security"
	"docs-portal/internal/service"
	"docs-portal/internal/util"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// @title Docs-portal
// @version 1.0
// @description Портал технической документации: вход, регистрация, загрузка и поиск документов

// @host localhost:8080
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	profileCache, closeCache := repository.OpenProfileCache(cfg)
	defer closeCache()

	journal, closeJournal := repository.OpenUploadJournal(cfg)
	defer closeJournal()

	srv, router := config.SetupServer(cfg.ServerAddr)

	apiClient := client.NewAPIClient(cfg.API.BaseURL, cfg.APITimeout())
	uploader := util.NewSignedURLUploader(cfg.UploadTimeout())
	inflight := util.NewInFlight()

	pages := security.PagesFromConfig(&cfg.Pages)
	guard := security.NewGuard(apiClient, profileCache, cfg.ProfileCacheTTL(), pages)
	store := security.NewCookieStore(cfg.Session, cfg.DurableTTL())

	authService := service.NewAuthenticationService(apiClient, profileCache)
	userService := service.NewUserService(apiClient)
	docService := service.NewDocumentService(apiClient, cfg.Search.MinLength, cfg.SearchDebounce())
	uploadService := service.NewUploadService(apiClient, uploader, journal, cfg.Upload)

	pageHandler := handler.NewPageHandler(store, pages)
	authHandler := handler.NewAuthenticationHandler(authService, store, pages, inflight)
	userHandler := handler.NewUserHandler(userService, store, pages, inflight)
	docHandler := handler.NewDocumentHandler(docService, uploadService, store, pages, inflight, cfg.Upload.MaxSizeBytes, cfg.UploadTimeout())

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	setupPageRoutes(router, pageHandler, guard, store)
	setupAuthRoutes(router, authHandler)
	setupDocumentRoutes(router, docHandler, userHandler, guard, store)

	runServer(ctx, srv)
}

func setupPageRoutes(r chi.Router, h *handler.PageHandler, guard *security.Guard, store *security.CookieStore) {
	r.Group(func(r chi.Router) {
		r.Use(guard.Optional(store))
		r.Get("/", h.Index)
		r.Get("/index", h.Index)
	})
	r.Get("/verify-email", h.VerifyEmail)

	r.With(guard.Middleware(store, security.GuestPage)).Get("/guest", h.Guest)
	r.With(guard.Middleware(store, security.RequireSignedIn)).Get("/dashboard", h.Dashboard)

	r.Group(func(r chi.Router) {
		r.Use(guard.Middleware(store, security.RequireAdmin))
		r.Get("/documents", h.AdminPage("documents", map[string]string{
			"list":   "/api/documents",
			"search": "/api/documents?search=",
		}))
		r.Get("/upload", h.AdminPage("upload", map[string]string{
			"upload": "/api/documents",
			"name":   "/api/documents/name",
		}))
		r.Get("/update-role", h.AdminPage("update-role", map[string]string{
			"updateRole": "/api/users/role",
		}))
	})
}

func setupAuthRoutes(r chi.Router, h *handler.AuthenticationHandler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/register", h.Register)
		r.Post("/verify", h.Verify)
		r.Post("/logout", h.Logout)
	})
}

func setupDocumentRoutes(r chi.Router, h *handler.DocumentHandler, users *handler.UserHandler, guard *security.Guard, store *security.CookieStore) {
	r.Route("/api", func(r chi.Router) {
		r.Use(guard.Middleware(store, security.RequireAdmin))

		r.Route("/documents", func(r chi.Router) {
			r.Get("/", h.ListDocuments)
			r.Post("/", h.UploadDocument)
			r.Post("/name", h.SuggestName)

			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", h.UpdateDocument)
				r.Delete("/", h.DeleteDocument)
				r.Get("/download", h.DownloadDocument)
			})
		})

		r.Get("/uploads/orphans", h.ListOrphans)
		r.Post("/users/role", users.UpdateRole)
	})
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
