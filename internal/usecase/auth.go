package usecase

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/foodorder/internal/domain"
)

// EnterLogin - вход на страницу логина сбрасывает сессию и корзину.
func (s *Service) EnterLogin(ctx context.Context) {
	if s.app.Session.Authenticated() {
		s.emit(ctx, domain.EventSessionEnded, map[string]any{"reason": "login_page"})
	}
	s.app.Session.ClearSession(ctx)
}

// Login - POST /auth/login, запись сессии и переход на домашнюю страницу роли.
func (s *Service) Login(ctx context.Context, creds domain.Credentials) error {
	var role domain.Role
	err := s.app.Busy.Track(ctx, func(ctx context.Context) error {
		env, err := s.api.Post(ctx, pathLogin, creds)
		if err != nil {
			return err
		}
		var res domain.LoginResult
		if err := env.Decode(&res); err != nil {
			return err
		}
		parsed, ok := domain.ParseRole(res.Role)
		if !ok {
			return fmt.Errorf("%w: unknown role %q", domain.ErrOperationFailed, res.Role)
		}
		if res.AccessToken == "" {
			return fmt.Errorf("%w: empty access token", domain.ErrOperationFailed)
		}
		// новая сессия не наследует корзину предыдущей
		if s.app.Session.Authenticated() {
			s.emit(ctx, domain.EventSessionEnded, map[string]any{"reason": "login"})
		}
		s.app.Session.ClearSession(ctx)
		if err := s.app.Session.SetSession(ctx, parsed, res.AccessToken); err != nil {
			return err
		}
		role = parsed
		return nil
	})
	if err != nil {
		s.log.Warnf(ctx, "login failed user=%s: %v", creds.Username, err)
		s.notify.NotifyError(ctx, "Failed to login")
		return err
	}

	s.log.Infof(ctx, "login ok user=%s role=%s", creds.Username, role)
	s.notify.NotifySuccess(ctx, "Successfully logged in")
	s.emit(ctx, domain.EventSessionStarted, nil)
	s.nav.NavigateTo(ctx, s.policy.Home(role))
	return nil
}

// Signup - POST /auth/register и переход на страницу логина.
func (s *Service) Signup(ctx context.Context, reg domain.Registration) error {
	if reg.Role == "" {
		reg.Role = domain.RoleUser.String()
	}
	if _, ok := domain.ParseRole(reg.Role); !ok {
		s.notify.NotifyError(ctx, "Failed to register")
		return fmt.Errorf("%w: role %q", domain.ErrOperationFailed, reg.Role)
	}

	err := s.app.Busy.Track(ctx, func(ctx context.Context) error {
		_, err := s.api.Post(ctx, pathRegister, reg)
		return err
	})
	if err != nil {
		s.log.Warnf(ctx, "register failed user=%s: %v", reg.Username, err)
		s.notify.NotifyError(ctx, "Failed to register")
		return err
	}

	s.notify.NotifySuccess(ctx, "Registration successful")
	s.nav.NavigateTo(ctx, s.policy.Login)
	return nil
}

// Logout - сброс сессии (и корзины) и переход на логин.
func (s *Service) Logout(ctx context.Context) {
	if s.app.Session.Authenticated() {
		s.emit(ctx, domain.EventSessionEnded, map[string]any{"reason": "logout"})
	}
	s.app.Session.ClearSession(ctx)
	s.nav.NavigateTo(ctx, s.policy.Login)
}
