package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"matchmaker/internal/identity"
)

// PageHandler serves the landing and search pages.
type PageHandler struct{}

// NewPageHandler creates a new page handler.
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Landing shows the entry choices; signed-in users go straight to search.
func (h *PageHandler) Landing(c echo.Context) error {
	if identity.FromContext(c).IsAuthenticated() {
		return c.Redirect(http.StatusFound, "/search")
	}
	return c.Render(http.StatusOK, "landing", nil)
}

// Search shows the map, centred on the user's or guest's location.
func (h *PageHandler) Search(c echo.Context) error {
	id := identity.FromContext(c)
	if err := id.RequireSearcher(); err != nil {
		return err
	}
	start, _ := id.StartPoint()
	return c.Render(http.StatusOK, "search", map[string]any{"StartPoint": start})
}
