package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	flashCookieName = "flash"
	flashContextKey = "session.flashes"
)

// Flash categories used by the pages.
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// AddFlash queues a message for the next rendered page, which may be this one.
func AddFlash(c echo.Context, category, message string) {
	pending := append(pendingFlashes(c), Flash{Category: category, Message: message})
	c.Set(flashContextKey, pending)

	payload, err := json.Marshal(pending)
	if err != nil {
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// TakeFlashes returns and clears every queued message.
func TakeFlashes(c echo.Context) []Flash {
	flashes := pendingFlashes(c)
	if len(flashes) == 0 {
		return nil
	}
	c.Set(flashContextKey, []Flash(nil))
	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	})
	return flashes
}

// pendingFlashes merges the incoming cookie into the request context on first use.
func pendingFlashes(c echo.Context) []Flash {
	if v, ok := c.Get(flashContextKey).([]Flash); ok {
		return v
	}
	var flashes []Flash
	if cookie, err := c.Cookie(flashCookieName); err == nil && cookie.Value != "" {
		if raw, err := base64.RawURLEncoding.DecodeString(cookie.Value); err == nil {
			_ = json.Unmarshal(raw, &flashes)
		}
	}
	c.Set(flashContextKey, flashes)
	return flashes
}
