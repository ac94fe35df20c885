package cli

import (
	"context"
	"docs-portal/internal/apperrors"
	"docs-portal/internal/model/requestresponse"
	"docs-portal/internal/security"
	"errors"
	"flag"
	"fmt"
	"strings"
)

func (a *App) Login(ctx context.Context, args []string) error {
	fs := a.flagSet("login")
	email := fs.String("email", "", "email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		value, err := GetSimpleText(a.reader, "Email", a.out)
		if err != nil {
			return err
		}
		*email = value
	}
	password, err := GetPassword("Contraseña", a.out)
	if err != nil {
		return err
	}

	result, err := a.auth.Login(ctx, requestresponse.LoginRequest{Email: *email, Password: password})
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailNotVerified) {
			if err := a.store.SetRegisterEmail(strings.TrimSpace(*email)); err != nil {
				return err
			}
			return withHint(err, "Ejecute: docsctl verify -code <código>")
		}
		return err
	}

	if err := a.store.Save(result.Token, result.User); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "¡Bienvenido, %s!\n", result.User.DisplayName())
	return nil
}

func (a *App) Register(ctx context.Context, args []string) error {
	fs := a.flagSet("register")
	name := fs.String("name", "", "nombre completo")
	email := fs.String("email", "", "email")
	company := fs.String("company", "", "empresa (opcional)")
	acceptTerms := fs.Bool("accept-terms", false, "acepto los términos y condiciones")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *name == "" {
		value, err := GetSimpleText(a.reader, "Nombre", a.out)
		if err != nil {
			return err
		}
		*name = value
	}
	if *email == "" {
		value, err := GetSimpleText(a.reader, "Email", a.out)
		if err != nil {
			return err
		}
		*email = value
	}

	password, err := GetPassword("Contraseña", a.out)
	if err != nil {
		return err
	}
	confirm, err := GetPassword("Confirmar contraseña", a.out)
	if err != nil {
		return err
	}

	terms := *acceptTerms
	if terms == false {
		if terms, err = Confirm(a.reader, "¿Acepta los términos y condiciones?", a.out); err != nil {
			return err
		}
	}

	_, err = a.auth.Register(ctx, requestresponse.RegisterRequest{
		Name:            *name,
		Email:           *email,
		Password:        password,
		ConfirmPassword: confirm,
		Company:         *company,
		Terms:           terms,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return withHint(err, "Ejecute: docsctl login -email "+strings.TrimSpace(*email))
		}
		return err
	}

	if err := a.store.SetRegisterEmail(strings.TrimSpace(*email)); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Registro exitoso. Revise su email y ejecute: docsctl verify -code <código>")
	return nil
}

func (a *App) Verify(ctx context.Context, args []string) error {
	fs := a.flagSet("verify")
	email := fs.String("email", "", "email (por defecto el del registro)")
	code := fs.String("code", "", "código de 6 dígitos")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		*email = a.store.RegisterEmail()
	}
	if *code == "" {
		value, err := GetSimpleText(a.reader, "Código", a.out)
		if err != nil {
			return err
		}
		*code = value
	}

	result, err := a.auth.Verify(ctx, *email, *code)
	if err != nil {
		return err
	}

	if err := a.store.Save(result.Token, result.User); err != nil {
		return err
	}
	if err := a.store.ClearRegisterEmail(); err != nil {
		return err
	}

	if result.Token == "" {
		fmt.Fprintln(a.out, "¡Email verificado! Ejecute: docsctl login")
		return nil
	}
	fmt.Fprintln(a.out, "¡Email verificado exitosamente!")
	return nil
}

// Logout : выход всегда успешен, ошибки только выводятся
func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout(ctx, security.ResolveToken(a.scopes()...))

	if err := a.store.Clear(); err != nil {
		fmt.Fprintf(a.out, "Aviso: %v\n", err)
	}
	if a.env.Token() != "" {
		fmt.Fprintf(a.out, "Ejecute también: unset %s\n", TokenEnv)
	}

	fmt.Fprintln(a.out, "Sesión cerrada")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	session, err := a.session(ctx, security.VerificationPage)
	if err != nil {
		return err
	}

	user := session.User
	verified := "no"
	if user.IsVerified {
		verified = "sí"
	}
	fmt.Fprintf(a.out, "%s <%s>\nrol: %s\nverificado: %s\n", user.DisplayName(), user.Email, user.Role, verified)
	return nil
}

func (a *App) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}
