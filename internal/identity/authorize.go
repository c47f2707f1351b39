package identity

import (
	apperrors "matchmaker/internal/errors"
	"matchmaker/internal/model"
)

// RequireUser demands a registered caller. Guests are sent back to the search
// page and everyone else to the landing page, both with message.
func (id Identity) RequireUser(message string) (*model.User, error) {
	if id.Kind == Authenticated {
		return id.User, nil
	}
	redirect := "/"
	if id.Kind == Guest {
		redirect = "/search"
	}
	return nil, &apperrors.AuthorizationError{Message: message, RedirectTo: redirect}
}

// RequireSearcher demands either a registered user or a guest.
func (id Identity) RequireSearcher() error {
	if id.Kind == Anonymous {
		return &apperrors.AuthorizationError{
			Message:    "Please choose an option, before searching for projects",
			RedirectTo: "/",
		}
	}
	return nil
}

// RequireNotLoggedIn turns away a registered user from the signup, login and guest pages.
func (id Identity) RequireNotLoggedIn(message, category string) error {
	if id.Kind == Authenticated {
		return &apperrors.AuthorizationError{Message: message, RedirectTo: "/search", Category: category}
	}
	return nil
}

// RequireUserOr demands a registered caller, redirecting anyone else to redirect.
func (id Identity) RequireUserOr(message, redirect string) (*model.User, error) {
	if id.Kind == Authenticated {
		return id.User, nil
	}
	return nil, &apperrors.AuthorizationError{Message: message, RedirectTo: redirect}
}

// RequireOwner demands that the registered caller owns project.
func RequireOwner(user *model.User, project *model.Project, redirect string) error {
	if user == nil || !project.OwnedBy(user.ID) {
		return &apperrors.AuthorizationError{
			Message:    "Unauthorized user. Correct user account needed.",
			RedirectTo: redirect,
		}
	}
	return nil
}
