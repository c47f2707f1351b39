package view

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchmaker/internal/session"
)

type loginForm struct {
	Email string
}

func newContext() echo.Context {
	return echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
}

func TestNewRenderer_ParsesEveryPage(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	for _, page := range []string{
		"landing", "login", "signup", "guest", "search", "profile_edit",
		"project_new", "project_edit", "project_detail", "error",
	} {
		assert.Contains(t, r.pages, page)
	}
	assert.NotContains(t, r.pages, "base")
	assert.NotContains(t, r.pages, "_project_fields")
}

func TestRender_InjectsFlashesAndCSRF(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	c := newContext()
	c.Set("csrf", "tok123")
	session.AddFlash(c, session.FlashDanger, "Logged in failed.")

	var buf bytes.Buffer
	err = r.Render(&buf, "login", map[string]any{
		"Form":   &loginForm{Email: "pat@test.com"},
		"Errors": map[string]string{"password": "This field is required"},
	}, c)
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, `class="alert alert-danger">Logged in failed.`)
	assert.Contains(t, html, `value="tok123"`)
	assert.Contains(t, html, `value="pat@test.com"`)
	assert.Contains(t, html, "This field is required")
	assert.Contains(t, html, `href="/login"`)
	assert.Empty(t, session.TakeFlashes(c))
}

func TestRender_UnknownPage(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	err = r.Render(&bytes.Buffer{}, "nope", nil, newContext())
	assert.Error(t, err)
}
