package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	apperrors "matchmaker/internal/errors"
	"matchmaker/internal/identity"
	"matchmaker/internal/service"
	"matchmaker/internal/session"
)

const alreadyLoggedIn = "You are already logged into an account."

// AuthHandler handles signup, login, logout and guest entry.
type AuthHandler struct {
	authService service.AuthService
	sessions    *session.Manager
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

// SignupPage renders the blank signup form.
func (h *AuthHandler) SignupPage(c echo.Context) error {
	if err := identity.FromContext(c).RequireNotLoggedIn(
		"You are already logged into an account, please log out before creating a new account.", session.FlashDanger); err != nil {
		return err
	}
	return formPage(c, "signup", newSignupForm(), nil, nil)
}

// Signup creates the account and logs it in.
func (h *AuthHandler) Signup(c echo.Context) error {
	if err := identity.FromContext(c).RequireNotLoggedIn(
		"You are already logged into an account, please log out before creating a new account.", session.FlashDanger); err != nil {
		return err
	}

	form := new(SignupForm)
	errs, err := bindForm(c, form)
	if err != nil {
		return err
	}
	if errs == nil && !form.AcceptRulesChecked() {
		errs = map[string]string{"accept_rules": "This field is required."}
	}
	if errs != nil {
		return formPage(c, "signup", form, errs, nil)
	}

	user, err := h.authService.Signup(c.Request().Context(), form.input())
	if err != nil {
		if errs, err := fieldErrors(err); err == nil {
			return formPage(c, "signup", form, errs, nil)
		}
		return err
	}

	if err := h.sessions.LoginUser(c, user.ID); err != nil {
		return err
	}
	return redirectWithFlash(c, session.FlashSuccess, "Signed up successfully", "/search")
}

// LoginPage renders the login form.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	if err := identity.FromContext(c).RequireNotLoggedIn(alreadyLoggedIn, session.FlashSuccess); err != nil {
		return err
	}
	return formPage(c, "login", new(LoginForm), nil, nil)
}

// Login checks the credentials and replaces any guest session.
func (h *AuthHandler) Login(c echo.Context) error {
	if err := identity.FromContext(c).RequireNotLoggedIn(alreadyLoggedIn, session.FlashSuccess); err != nil {
		return err
	}

	form := new(LoginForm)
	errs, err := bindForm(c, form)
	if err != nil {
		return err
	}
	if errs != nil {
		return formPage(c, "login", form, errs, nil)
	}

	user, err := h.authService.Login(c.Request().Context(), form.Email, form.Password)
	if errors.Is(err, apperrors.ErrInvalidCredentials) {
		log.Ctx(c.Request().Context()).Info().Msg("login failed")
		return redirectWithFlash(c, session.FlashDanger,
			"Logged in failed. Please double check your email and password combination.", "/login")
	}
	if err != nil {
		return err
	}

	if err := h.sessions.LoginUser(c, user.ID); err != nil {
		return err
	}
	return redirectWithFlash(c, session.FlashSuccess, "Logged in successfully", "/search")
}

// Logout ends the session, whatever kind it was.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Clear(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/")
}

// GuestPage renders the guest location form.
func (h *AuthHandler) GuestPage(c echo.Context) error {
	if err := identity.FromContext(c).RequireNotLoggedIn(alreadyLoggedIn, session.FlashSuccess); err != nil {
		return err
	}
	return formPage(c, "guest", new(GuestForm), nil, nil)
}

// Guest stores the submitted location in a guest session.
func (h *AuthHandler) Guest(c echo.Context) error {
	if err := identity.FromContext(c).RequireNotLoggedIn(alreadyLoggedIn, session.FlashSuccess); err != nil {
		return err
	}

	form := new(GuestForm)
	errs, err := bindForm(c, form)
	if err != nil {
		return err
	}
	if errs == nil && !form.AcceptRulesChecked() {
		errs = map[string]string{"accept_rules": "This field is required."}
	}
	if errs != nil {
		return formPage(c, "guest", form, errs, nil)
	}

	if err := h.sessions.EnterGuest(c, geoPoint(form.Lat, form.Long)); err != nil {
		return err
	}
	return redirectWithFlash(c, session.FlashSuccess, "Entering as a Guest. Some features are not displayed.", "/search")
}
