package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "matchmaker/internal/errors"
	"matchmaker/internal/session"
)

func redirectWithFlash(c echo.Context, category, message, to string) error {
	session.AddFlash(c, category, message)
	return c.Redirect(http.StatusFound, to)
}

// bindForm binds and validates a posted form. Field problems come back as a
// map for re-rendering; anything else is an error.
func bindForm(c echo.Context, form any) (map[string]string, error) {
	if err := c.Bind(form); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid form submission").SetInternal(err)
	}
	if err := c.Validate(form); err != nil {
		return fieldErrors(err)
	}
	return nil, nil
}

// fieldErrors unpacks a ValidationError, passing every other error through.
func fieldErrors(err error) (map[string]string, error) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Fields, nil
	}
	return nil, err
}

func formPage(c echo.Context, page string, form any, errs map[string]string, extra map[string]any) error {
	status := http.StatusOK
	if len(errs) > 0 {
		status = http.StatusBadRequest
	}
	if errs == nil {
		errs = map[string]string{}
	}
	data := map[string]any{"Form": form, "Errors": errs}
	for k, v := range extra {
		data[k] = v
	}
	return c.Render(status, page, data)
}

// pathID parses a numeric path parameter. A malformed id cannot match any row.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.ErrNotFound
	}
	return uint(id), nil
}
