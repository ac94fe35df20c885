package service

import (
	"context"
	"docs-portal/internal/apperrors"
	"docs-portal/internal/client"
	"docs-portal/internal/model/requestresponse"
	"docs-portal/internal/ports"
	"docs-portal/internal/util"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"
)

const minPasswordLength = 6

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	codePattern  = regexp.MustCompile(`^[0-9]{6}$`)
)

type AuthenticationService struct {
	api   ports.AuthAPI
	cache ports.ProfileCache
}

func NewAuthenticationService(api ports.AuthAPI, cache ports.ProfileCache) *AuthenticationService {
	return &AuthenticationService{api: api, cache: cache}
}

// Login : вход по email и паролю.
// Если API отвечает, что email не подтвержден, возвращается ErrEmailNotVerified,
// остальные отказы авторизации возвращаются как ErrRejected
func (s *AuthenticationService) Login(ctx context.Context, req requestresponse.LoginRequest) (*client.AuthResult, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, apperrors.MissingField("email")
	}
	if req.Password == "" {
		return nil, apperrors.MissingField("password")
	}

	result, err := s.api.Login(ctx, email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrNetwork) == false && mentionsVerification(err) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrEmailNotVerified, apperrors.Message(err))
		}
		if errors.Is(err, apperrors.ErrAuth) {
			err = fmt.Errorf("%w: %s", apperrors.ErrRejected, credentialsMessage(err))
		}
		return nil, util.LogError("[AuthenticationService] ошибка входа", err)
	}

	log.Printf("[AuthenticationService] пользователь %s вошел", email)
	return result, nil
}

// credentialsMessage : 401 на входе означает неверные данные, а не истекшую сессию
func credentialsMessage(err error) string {
	if message := apperrors.Message(err); message != "" {
		return message
	}
	return "Credenciales inválidas"
}

// Register : регистрация, после нее пользователь должен подтвердить email
func (s *AuthenticationService) Register(ctx context.Context, req requestresponse.RegisterRequest) (*client.AuthResult, error) {
	if err := ValidateRegistration(req); err != nil {
		return nil, err
	}

	email := strings.TrimSpace(req.Email)
	result, err := s.api.Register(ctx, strings.TrimSpace(req.Name), email, req.Password, strings.TrimSpace(req.Company))
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) == false && errors.Is(err, apperrors.ErrNetwork) == false &&
			strings.Contains(strings.ToLower(apperrors.Message(err)), "existe") {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, apperrors.Message(err))
		}
		return nil, util.LogError("[AuthenticationService] ошибка регистрации", err)
	}

	log.Printf("[AuthenticationService] пользователь %s зарегистрирован", email)
	return result, nil
}

// ValidateRegistration : проверка формы регистрации без обращения к сети
func ValidateRegistration(req requestresponse.RegisterRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return apperrors.MissingField("name")
	}
	if emailPattern.MatchString(strings.TrimSpace(req.Email)) == false {
		return apperrors.ErrInvalidEmail
	}
	if len(req.Password) < minPasswordLength {
		return apperrors.ErrWeakPassword
	}
	if req.Password != req.ConfirmPassword {
		return apperrors.ErrPasswordMismatch
	}
	if req.Terms == false {
		return apperrors.ErrTermsNotAccepted
	}
	return nil
}

// Verify : подтверждение email кодом из письма.
// Токен и пользователь в ответе могут отсутствовать
func (s *AuthenticationService) Verify(ctx context.Context, email, code string) (*client.AuthResult, error) {
	email = strings.TrimSpace(email)
	code = strings.TrimSpace(code)

	if codePattern.MatchString(code) == false {
		return nil, apperrors.ErrInvalidCode
	}
	if email == "" {
		return nil, apperrors.MissingField("email")
	}

	result, err := s.api.VerifyCode(ctx, email, code)
	if err != nil {
		return nil, util.LogError("[AuthenticationService] ошибка подтверждения email", err)
	}

	log.Printf("[AuthenticationService] email %s подтвержден", email)
	return result, nil
}

// Logout : удаляет профиль из кэша. Ошибки игнорируются, выход не может не удаться
func (s *AuthenticationService) Logout(ctx context.Context, token string) {
	if s.cache == nil || token == "" {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.cache.DeleteProfile(ctx, token); err != nil {
		log.Printf("[AuthenticationService] ошибка удаления профиля из кэша: %v", err)
	}
}

func mentionsVerification(err error) bool {
	return strings.Contains(strings.ToLower(apperrors.Message(err)), "verific")
}
