package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	apperrors "matchmaker/internal/errors"
	"matchmaker/internal/session"
)

// ErrorHandler is the echo HTTPErrorHandler. Authorization failures on pages
// become a flash and a redirect; /api requests get an ErrorResponse body and
// everything else renders the error page.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	api := strings.HasPrefix(c.Request().URL.Path, "/api/")

	var authErr *apperrors.AuthorizationError
	if !api && errors.As(err, &authErr) {
		category := authErr.Category
		if category == "" {
			category = session.FlashDanger
		}
		redirect := authErr.RedirectTo
		if redirect == "" {
			redirect = "/"
		}
		if rerr := redirectWithFlash(c, category, authErr.Message, redirect); rerr != nil {
			log.Ctx(c.Request().Context()).Error().Err(rerr).Msg("redirect after authorization failure")
		}
		return
	}

	httpErr := toHTTPError(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		log.Ctx(c.Request().Context()).Error().Err(err).Int("status", httpErr.StatusCode).Msg("request failed")
	}

	var werr error
	switch {
	case c.Request().Method == http.MethodHead:
		werr = c.NoContent(httpErr.StatusCode)
	case api:
		werr = c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	default:
		werr = c.Render(httpErr.StatusCode, "error", map[string]any{
			"Status":  httpErr.StatusCode,
			"Message": pageMessage(httpErr),
		})
		if werr != nil && !c.Response().Committed {
			werr = c.String(httpErr.StatusCode, pageMessage(httpErr))
		}
	}
	if werr != nil {
		log.Ctx(c.Request().Context()).Error().Err(werr).Msg("write error response")
	}
}

func toHTTPError(err error) *apperrors.HTTPError {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg, ok := he.Message.(string)
		if !ok {
			msg = fmt.Sprint(he.Message)
		}
		code := strings.ToUpper(strings.ReplaceAll(http.StatusText(he.Code), " ", "_"))
		return apperrors.NewHTTPError(he.Code, msg, code)
	}
	return apperrors.MapErrorToHTTP(err)
}

func pageMessage(e *apperrors.HTTPError) string {
	if e.StatusCode >= http.StatusInternalServerError {
		return "Something went wrong. Please try again later."
	}
	if e.StatusCode == http.StatusNotFound {
		return "The page you were looking for does not exist."
	}
	return e.Message
}
