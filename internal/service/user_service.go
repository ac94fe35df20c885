package service

import (
	"context"
	"docs-portal/internal/apperrors"
	"docs-portal/internal/model"
	"docs-portal/internal/ports"
	"docs-portal/internal/util"
	"log"
	"strings"
)

type UserService struct {
	api ports.AuthAPI
}

func NewUserService(api ports.AuthAPI) *UserService {
	return &UserService{api: api}
}

// UpdateRole : смена роли пользователя по email. Доступно только администратору,
// в запрос уходит id текущего администратора
func (s *UserService) UpdateRole(ctx context.Context, session *model.Session, email, role string) (*model.User, error) {
	if session == nil || session.Token == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	if session.IsAdmin() == false {
		return nil, apperrors.ErrForbidden
	}

	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.MissingField("email")
	}
	parsed, ok := model.ParseRole(strings.TrimSpace(role))
	if ok == false {
		return nil, apperrors.ErrInvalidRole
	}

	user, err := s.api.UpdateRole(ctx, session.Token, session.UserID(), parsed, email)
	if err != nil {
		return nil, util.LogError("[UserService] ошибка смены роли", err)
	}

	log.Printf("[UserService] пользователю %s назначена роль %s", email, user.Role)
	return user, nil
}
