package service_test

import (
	"context"
	"docs-portal/internal/apperrors"
	"docs-portal/internal/client"
	"docs-portal/internal/model"
	"docs-portal/internal/model/requestresponse"
	"docs-portal/internal/service"
	"errors"
	"fmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"testing"
)

func validRegistration() requestresponse.RegisterRequest {
	return requestresponse.RegisterRequest{
		Name:            "Juan Pérez",
		Email:           "juan@example.com",
		Password:        "secreto1",
		ConfirmPassword: "secreto1",
		Terms:           true,
	}
}

func TestLogin_MissingFields(t *testing.T) {
	api := new(MockAuthAPI)
	svc := service.NewAuthenticationService(api, nil)

	_, err := svc.Login(context.Background(), requestresponse.LoginRequest{Email: "", Password: "x"})
	assert.ErrorIs(t, err, apperrors.ErrMissingField)

	_, err = svc.Login(context.Background(), requestresponse.LoginRequest{Email: "a@b.co"})
	assert.ErrorIs(t, err, apperrors.ErrMissingField)

	api.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	api := new(MockAuthAPI)
	svc := service.NewAuthenticationService(api, nil)
	ctx := context.Background()
	result := &client.AuthResult{Token: "tok", User: &model.User{Email: "juan@example.com", Role: model.RoleUser}}

	api.On("Login", ctx, "juan@example.com", "secreto1").Return(result, nil)

	got, err := svc.Login(ctx, requestresponse.LoginRequest{Email: " juan@example.com ", Password: "secreto1"})

	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)
}

func TestLogin_EmailNotVerified(t *testing.T) {
	api := new(MockAuthAPI)
	svc := service.NewAuthenticationService(api, nil)
	ctx := context.Background()

	api.On("Login", ctx, "juan@example.com", "secreto1").
		Return(nil, &apperrors.APIError{Status: 401, Message: "Email no verificado. Revisa tu correo"})

	_, err := svc.Login(ctx, requestresponse.LoginRequest{Email: "juan@example.com", Password: "secreto1"})

	assert.ErrorIs(t, err, apperrors.ErrEmailNotVerified)
}

func TestLogin_RejectedKeepsMessage(t *testing.T) {
	api := new(MockAuthAPI)
	svc := service.NewAuthenticationService(api, nil)
	ctx := context.Background()

	api.On("Login", ctx, "juan@example.com", "bad").
		Return(nil, &apperrors.APIError{Status: 400, Message: "Credenciales inválidas"})

	_, err := svc.Login(ctx, requestresponse.LoginRequest{Email: "juan@example.com", Password: "bad"})

	assert.ErrorIs(t, err, apperrors.ErrRejected)
	assert.Contains(t, err.Error(), "Credenciales inválidas")
	assert.False(t, errors.Is(err, apperrors.ErrEmailNotVerified))
}

func TestLogin_BadCredentialsAreRejected(t *testing.T) {
	api := new(MockAuthAPI)
	svc := service.NewAuthenticationService(api, nil)
	ctx := context.Background()

	api.On("Login", ctx, "juan@example.com", "bad").
		Return(nil, &apperrors.APIError{Status: 401, Message: "Credenciales inválidas"})

	_, err := svc.Login(ctx, requestresponse.LoginRequest{Email: "juan@example.com", Password: "bad"})

	assert.ErrorIs(t, err, apperrors.ErrRejected)
	assert.False(t, errors.Is(err, apperrors.ErrAuth))
	assert.Equal(t, "Credenciales inválidas", apperrors.Message(err))
}

func TestValidateRegistration(t *testing.T) {
	cases := []struct {
		name   string
		modify func(*requestresponse.RegisterRequest)
		want   error
	}{
		{"валидная форма", func(*requestresponse.RegisterRequest) {}, nil},
		{"без имени", func(r *requestresponse.RegisterRequest) { r.Name = " " }, apperrors.ErrMissingField},
		{"email без домена", func(r *requestresponse.RegisterRequest) { r.Email = "juan@example" }, apperrors.ErrInvalidEmail},
		{"email с пробелом", func(r *requestresponse.RegisterRequest) { r.Email = "ju an@example.com" }, apperrors.ErrInvalidEmail},
		{"короткий пароль", func(r *requestresponse.RegisterRequest) { r.Password, r.ConfirmPassword = "12345", "12345" }, apperrors.ErrWeakPassword},
		{"пароли не совпадают", func(r *requestresponse.RegisterRequest) { r.ConfirmPassword = "otro123" }, apperrors.ErrPasswordMismatch},
		{"условия не приняты", func(r *requestresponse.RegisterRequest) { r.Terms = false }, apperrors.ErrTermsNotAccepted},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRegistration()
			tc.modify(&req)

			err := service.ValidateRegistration(req)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRegister_Conflict(t *testing.T) {
	ctx := context.Background()

	t.Run("статус 409", func(t *testing.T) {
		api := new(MockAuthAPI)
		svc := service.NewAuthenticationService(api, nil)
		api.On("Register", ctx, "Juan Pérez", "juan@example.com", "secreto1", "").
			Return(nil, &apperrors.APIError{Status: 409, Message: "El usuario ya existe"})

		_, err := svc.Register(ctx, validRegistration())
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("сообщение о существующем пользователе", func(t *testing.T) {
		api := new(MockAuthAPI)
		svc := service.NewAuthenticationService(api, nil)
		api.On("Register", ctx, "Juan Pérez", "juan@example.com", "secreto1", "").
			Return(nil, fmt.Errorf("%w: %s", apperrors.ErrRejected, "El email ya existe"))

		_, err := svc.Register(ctx, validRegistration())
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestRegister_InvalidFormMakesNoRequest(t *testing.T) {
	api := new(MockAuthAPI)
	svc := service.NewAuthenticationService(api, nil)
	req := validRegistration()
	req.Terms = false

	_, err := svc.Register(context.Background(), req)

	assert.ErrorIs(t, err, apperrors.ErrTermsNotAccepted)
	api.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestVerify(t *testing.T) {
	ctx := context.Background()

	for _, code := range []string{"12345", "1234567", "12a456", ""} {
		t.Run("код "+code, func(t *testing.T) {
			api := new(MockAuthAPI)
			svc := service.NewAuthenticationService(api, nil)

			_, err := svc.Verify(ctx, "juan@example.com", code)

			assert.ErrorIs(t, err, apperrors.ErrInvalidCode)
			api.AssertNotCalled(t, "VerifyCode", mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("без email", func(t *testing.T) {
		svc := service.NewAuthenticationService(new(MockAuthAPI), nil)
		_, err := svc.Verify(ctx, "", "123456")
		assert.ErrorIs(t, err, apperrors.ErrMissingField)
	})

	t.Run("успех без токена", func(t *testing.T) {
		api := new(MockAuthAPI)
		svc := service.NewAuthenticationService(api, nil)
		api.On("VerifyCode", ctx, "juan@example.com", "123456").Return(&client.AuthResult{}, nil)

		result, err := svc.Verify(ctx, "juan@example.com", "123456")

		require.NoError(t, err)
		assert.Empty(t, result.Token)
	})
}

func TestLogout_IgnoresCacheErrors(t *testing.T) {
	cache := new(MockProfileCache)
	svc := service.NewAuthenticationService(new(MockAuthAPI), cache)

	cache.On("DeleteProfile", mock.Anything, "tok").Return(errors.New("redis down"))

	assert.NotPanics(t, func() { svc.Logout(context.Background(), "tok") })
	cache.AssertExpectations(t)
}
