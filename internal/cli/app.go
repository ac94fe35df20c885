// Package cli : терминальный клиент портала документации.
//
// Токен хранится в двух местах: в файле сессии (переживает перезапуск терминала)
// и в переменной окружения DOCS_PORTAL_TOKEN (живет, пока открыт терминал).
// Любого из них достаточно для входа.
package cli

import (
	"bufio"
	"context"
	"docs-portal/config"
	"docs-portal/internal/apperrors"
	"docs-portal/internal/client"
	"docs-portal/internal/model"
	"docs-portal/internal/ports"
	"docs-portal/internal/repository"
	"docs-portal/internal/security"
	"docs-portal/internal/service"
	"errors"
	"fmt"
	"io"
	"log"
)

// TokenEnv : переменная окружения с токеном текущего терминала
const TokenEnv = "DOCS_PORTAL_TOKEN"

var ErrUnknownCommand = errors.New("comando desconocido")

// hintError : ошибка с подсказкой, какую команду выполнить дальше
type hintError struct {
	err  error
	hint string
}

func (e *hintError) Error() string {
	return e.err.Error() + ". " + e.hint
}

func (e *hintError) Unwrap() error {
	return e.err
}

func withHint(err error, hint string) error {
	return &hintError{err: err, hint: hint}
}

// Hint : подсказка из цепочки err, пустая строка если ее нет
func Hint(err error) string {
	var h *hintError
	if errors.As(err, &h) {
		return h.hint
	}
	return ""
}

type App struct {
	cfg     *config.AppConfig
	guard   *security.Guard
	store   *security.FileStore
	env     security.EnvScope
	auth    *service.AuthenticationService
	users   *service.UserService
	docs    *service.DocumentService
	uploads *service.UploadService
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(
	cfg *config.AppConfig,
	api *client.APIClient,
	storage ports.ObjectStorage,
	journal ports.UploadJournal,
	store *security.FileStore,
	in io.Reader,
	out io.Writer,
) *App {
	cache := repository.NoopCacheRepository{}

	return &App{
		cfg:     cfg,
		guard:   security.NewGuard(api, cache, 0, security.PagesFromConfig(&cfg.Pages)),
		store:   store,
		env:     security.EnvScope{Name: TokenEnv},
		auth:    service.NewAuthenticationService(api, cache),
		users:   service.NewUserService(api),
		docs:    service.NewDocumentService(api, cfg.Search.MinLength, cfg.SearchDebounce()),
		uploads: service.NewUploadService(api, storage, journal, cfg.Upload),
		reader:  bufio.NewReader(in),
		out:     out,
	}
}

// Run : выполняет одну команду
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return nil
	}

	command, rest := args[0], args[1:]
	switch command {
	case "login":
		return a.Login(ctx, rest)
	case "register":
		return a.Register(ctx, rest)
	case "verify":
		return a.Verify(ctx, rest)
	case "logout":
		return a.Logout(ctx)
	case "whoami":
		return a.WhoAmI(ctx)
	case "list":
		return a.List(ctx, rest)
	case "watch":
		return a.Watch(ctx)
	case "upload":
		return a.Upload(ctx, rest)
	case "update":
		return a.Update(ctx, rest)
	case "delete":
		return a.Delete(ctx, rest)
	case "download":
		return a.Download(ctx, rest)
	case "role":
		return a.Role(ctx, rest)
	case "orphans":
		return a.Orphans(ctx, rest)
	case "help", "-h", "--help":
		a.usage()
		return nil
	default:
		a.usage()
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}

func (a *App) usage() {
	fmt.Fprintln(a.out, `Uso: docsctl <comando> [opciones]

  login     -email            iniciar sesión
  register  -name -email      crear una cuenta
  verify    -email -code      verificar el email
  logout                      cerrar sesión
  whoami                      usuario actual
  list      -search           listar o buscar documentos
  watch                       búsqueda mientras escribe (una línea por consulta)
  upload    -file ...         subir un documento
  update    -id ...           editar un documento
  delete    -id               eliminar un documento
  download  -id               enlace de descarga
  role      -email -role      cambiar el rol de un usuario
  orphans   -limit            archivos subidos sin documento`)
}

func (a *App) scopes() []security.TokenScope {
	return []security.TokenScope{a.env, a.store}
}

// session : та же проверка, что и у страниц портала. Вместо редиректа возвращается подсказка
func (a *App) session(ctx context.Context, req security.Requirement) (*model.Session, error) {
	scopes := a.scopes()
	session, decision := a.guard.Check(ctx, req, scopes...)
	for _, scope := range security.StaleScopes(session, scopes...) {
		if _, ok := scope.(*security.FileStore); ok == false {
			continue
		}
		if err := a.store.Clear(); err != nil {
			log.Printf("[CLI] %v", err)
		}
	}
	if decision.Allowed {
		return session, nil
	}

	pages := a.guard.Pages()
	switch decision.Redirect {
	case pages.Entry:
		return nil, withHint(decision.Reason, "Ejecute: docsctl login")
	case pages.Verify:
		return nil, withHint(decision.Reason, "Ejecute: docsctl verify -code <código>")
	default:
		return nil, withHint(apperrors.ErrForbidden, "Se requiere el rol de administrador")
	}
}
