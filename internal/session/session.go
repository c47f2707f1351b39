package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"matchmaker/internal/model"
)

const (
	// CookieName is the name of the signed session cookie.
	CookieName = "session"
	// ContextKey is where the verified *jwt.Token is stored on the echo context.
	ContextKey = "session"
)

// Claims is the client-side session state. At most one of UserID and Guest is set.
type Claims struct {
	UserID uint            `json:"uid,omitempty"`
	Guest  *model.GeoPoint `json:"guest,omitempty"`
	jwt.RegisteredClaims
}

// Manager issues, verifies and revokes session cookies.
type Manager struct {
	secret []byte
	ttl    time.Duration
	secure bool
	store  RevocationStore
}

// NewManager creates a new session manager.
func NewManager(secret string, ttl time.Duration, secure bool, store RevocationStore) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		secure: secure,
		store:  store,
	}
}

// Middleware verifies the session cookie when present and stores the token under ContextKey.
// A missing cookie is not an error; a bad one is dropped and the request continues anonymously.
func (m *Manager) Middleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:    m.secret,
		SigningMethod: jwt.SigningMethodHS256.Name,
		TokenLookup:   "cookie:" + CookieName,
		ContextKey:    ContextKey,
		NewClaimsFunc: func(echo.Context) jwt.Claims {
			return new(Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if _, cookieErr := c.Cookie(CookieName); cookieErr == nil {
				log.Ctx(c.Request().Context()).Debug().Err(err).Msg("dropping invalid session cookie")
				m.expireCookie(c)
			}
			return nil
		},
		ContinueOnIgnoredError: true,
	})
}

// Current returns the verified, unrevoked claims of the request, or nil.
func (m *Manager) Current(c echo.Context) *Claims {
	token, ok := c.Get(ContextKey).(*jwt.Token)
	if !ok || token == nil || !token.Valid {
		return nil
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil
	}
	revoked, err := m.store.IsRevoked(c.Request().Context(), claims.ID)
	if err != nil || revoked {
		return nil
	}
	return claims
}

// LoginUser replaces whatever session the caller had with an authenticated one.
// Any guest geolocation is dropped.
func (m *Manager) LoginUser(c echo.Context, userID uint) error {
	return m.replace(c, &Claims{UserID: userID})
}

// EnterGuest replaces the caller's session with a guest session at p.
func (m *Manager) EnterGuest(c echo.Context, p model.GeoPoint) error {
	return m.replace(c, &Claims{Guest: &p})
}

// Clear revokes the current session token and expires the cookie.
func (m *Manager) Clear(c echo.Context) error {
	if err := m.revokeCurrent(c); err != nil {
		return err
	}
	m.expireCookie(c)
	return nil
}

// Parse verifies a raw session token.
func (m *Manager) Parse(raw string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}

func (m *Manager) replace(c echo.Context, claims *Claims) error {
	if err := m.revokeCurrent(c); err != nil {
		return err
	}
	raw, err := m.sign(claims)
	if err != nil {
		return err
	}
	c.SetCookie(m.cookie(raw, m.ttl))
	return nil
}

func (m *Manager) sign(claims *Claims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return raw, nil
}

func (m *Manager) revokeCurrent(c echo.Context) error {
	claims := m.Current(c)
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	if err := m.store.Revoke(c.Request().Context(), claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (m *Manager) expireCookie(c echo.Context) {
	cookie := m.cookie("", 0)
	cookie.MaxAge = -1
	cookie.Expires = time.Unix(0, 0)
	c.SetCookie(cookie)
}

func (m *Manager) cookie(value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
