package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "matchmaker/internal/errors"
	"matchmaker/internal/identity"
	"matchmaker/internal/service"
	"matchmaker/internal/session"
)

// ProfileHandler handles editing and deleting the caller's own account.
type ProfileHandler struct {
	userService service.UserService
	sessions    *session.Manager
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(userService service.UserService, sessions *session.Manager) *ProfileHandler {
	return &ProfileHandler{userService: userService, sessions: sessions}
}

// EditPage renders the profile form pre-filled from the stored account.
func (h *ProfileHandler) EditPage(c echo.Context) error {
	user, err := identity.FromContext(c).RequireUser("Unauthorized access. Account needed to edit profile.")
	if err != nil {
		return err
	}
	return formPage(c, "profile_edit", profileFormFrom(user), nil, nil)
}

// Edit applies the form once the caller's password checks out.
func (h *ProfileHandler) Edit(c echo.Context) error {
	user, err := identity.FromContext(c).RequireUser("Unauthorized access. Account needed to edit profile.")
	if err != nil {
		return err
	}

	form := new(ProfileForm)
	errs, err := bindForm(c, form)
	if err != nil {
		return err
	}
	if errs != nil {
		return formPage(c, "profile_edit", form, errs, nil)
	}

	_, err = h.userService.UpdateProfile(c.Request().Context(), user, form.input())
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return redirectWithFlash(c, session.FlashDanger, "Incorrect password. Profile changes not made", "/profile/edit")
	case err != nil:
		if errs, err := fieldErrors(err); err == nil {
			return formPage(c, "profile_edit", form, errs, nil)
		}
		return err
	}
	return redirectWithFlash(c, session.FlashSuccess, "Profile edited successfully.", "/search")
}

// Delete removes the caller's account, logs them out and returns to the landing page.
func (h *ProfileHandler) Delete(c echo.Context) error {
	const denied = "Unauthorized access. Correct account needed to delete profile."
	user, err := identity.FromContext(c).RequireUser(denied)
	if err != nil {
		return err
	}

	target, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		return &apperrors.AuthorizationError{Message: denied, RedirectTo: "/"}
	}
	if err := h.userService.Delete(c.Request().Context(), user, uint(target)); err != nil {
		return err
	}

	if err := h.sessions.Clear(c); err != nil {
		return err
	}
	return redirectWithFlash(c, session.FlashSuccess, "Profile deleted successfully.", "/")
}
