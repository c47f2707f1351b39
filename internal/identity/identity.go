// Package identity resolves who is calling: a registered user, a geolocated guest, or nobody.
package identity

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	apperrors "matchmaker/internal/errors"
	"matchmaker/internal/model"
	"matchmaker/internal/repository"
	"matchmaker/internal/session"
)

const contextKey = "identity"

// Kind is the variant of a caller identity.
type Kind int

const (
	Anonymous Kind = iota
	Guest
	Authenticated
)

func (k Kind) String() string {
	switch k {
	case Guest:
		return "guest"
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Identity is the resolved caller of a single request. User is set only when
// Kind is Authenticated, Location only when Kind is Guest.
type Identity struct {
	Kind     Kind
	User     *model.User
	Location *model.GeoPoint
}

// IsAuthenticated reports whether the caller is a registered user.
func (id Identity) IsAuthenticated() bool { return id.Kind == Authenticated }

// IsGuest reports whether the caller entered as a guest.
func (id Identity) IsGuest() bool { return id.Kind == Guest }

// StartPoint is where the search map is centred for this caller.
func (id Identity) StartPoint() (model.GeoPoint, bool) {
	switch id.Kind {
	case Authenticated:
		return id.User.Location(), true
	case Guest:
		return *id.Location, true
	default:
		return model.GeoPoint{}, false
	}
}

// Resolver populates the request identity once, before any handler runs.
// A session naming a user that no longer exists is cleared and treated as anonymous.
func Resolver(sessions *session.Manager, users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := resolve(c, sessions, users)
			if err != nil {
				return err
			}
			c.Set(contextKey, id)
			return next(c)
		}
	}
}

func resolve(c echo.Context, sessions *session.Manager, users repository.UserRepository) (Identity, error) {
	claims := sessions.Current(c)
	switch {
	case claims == nil:
		return Identity{Kind: Anonymous}, nil
	case claims.UserID != 0:
		user, err := users.FindByID(c.Request().Context(), claims.UserID)
		if errors.Is(err, apperrors.ErrNotFound) {
			log.Ctx(c.Request().Context()).Info().Uint("user_id", claims.UserID).Msg("session names a deleted user")
			if err := sessions.Clear(c); err != nil {
				return Identity{}, err
			}
			return Identity{Kind: Anonymous}, nil
		}
		if err != nil {
			return Identity{}, err
		}
		return Identity{Kind: Authenticated, User: user}, nil
	case claims.Guest != nil:
		loc := *claims.Guest
		return Identity{Kind: Guest, Location: &loc}, nil
	default:
		return Identity{Kind: Anonymous}, nil
	}
}

// FromContext returns the identity resolved for this request.
func FromContext(c echo.Context) Identity {
	if id, ok := c.Get(contextKey).(Identity); ok {
		return id
	}
	return Identity{Kind: Anonymous}
}
