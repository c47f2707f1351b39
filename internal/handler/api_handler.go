package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "matchmaker/internal/errors"
	"matchmaker/internal/model"
	"matchmaker/internal/service"
)

// APIHandler serves the JSON endpoints used by the search map.
type APIHandler struct {
	projectService service.ProjectService
	tagService     service.TagService
	geocodeService service.GeocodeService
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(projectService service.ProjectService, tagService service.TagService, geocodeService service.GeocodeService) *APIHandler {
	return &APIHandler{
		projectService: projectService,
		tagService:     tagService,
		geocodeService: geocodeService,
	}
}

// NeighborhoodProject is one map marker.
type NeighborhoodProject struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Lat         float64  `json:"lat"`
	Long        float64  `json:"long"`
	Tags        []string `json:"tags"`
}

// NeighborhoodResponse wraps the projects inside the map viewport.
type NeighborhoodResponse struct {
	Projects []NeighborhoodProject `json:"projects"`
}

// Geocode godoc
// @Summary Geocode an address
// @Description Forwards the address to the geocoding service and relays its reply unchanged
// @Tags api
// @Produce json
// @Param address query string true "Free-text address"
// @Success 200 {object} object
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /geocode [get]
func (h *APIHandler) Geocode(c echo.Context) error {
	address := c.QueryParam("address")
	if address == "" {
		return apperrors.NewValidationError("address", "This field is required.")
	}

	result, err := h.geocodeService.Geocode(c.Request().Context(), address)
	if err != nil {
		return err
	}
	return c.Blob(result.StatusCode, result.ContentType, result.Body)
}

// Neighborhood godoc
// @Summary Projects inside a map viewport
// @Description Bounds are exclusive; a project exactly on an edge is left out
// @Tags api
// @Produce json
// @Param north query number true "Northern latitude"
// @Param south query number true "Southern latitude"
// @Param east query number true "Eastern longitude"
// @Param west query number true "Western longitude"
// @Success 200 {object} NeighborhoodResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /neighborhood [get]
func (h *APIHandler) Neighborhood(c echo.Context) error {
	var bounds model.Bounds
	err := echo.QueryParamsBinder(c).
		MustFloat64("north", &bounds.North).
		MustFloat64("south", &bounds.South).
		MustFloat64("east", &bounds.East).
		MustFloat64("west", &bounds.West).
		BindError()
	if err != nil {
		field := "bounds"
		var bindErr *echo.BindingError
		if errors.As(err, &bindErr) && bindErr.Field != "" {
			field = bindErr.Field
		}
		return apperrors.NewValidationError(field, "A numeric value is required.")
	}

	projects, err := h.projectService.Neighborhood(c.Request().Context(), bounds)
	if err != nil {
		return err
	}

	resp := NeighborhoodResponse{Projects: make([]NeighborhoodProject, 0, len(projects))}
	for i := range projects {
		p := &projects[i]
		item := NeighborhoodProject{
			ID:   p.ID,
			Name: p.Name,
			Lat:  p.Latitude,
			Long: p.Longitude,
			Tags: p.TagNames(),
		}
		if p.User != nil {
			item.DisplayName = p.User.DisplayName
		}
		resp.Projects = append(resp.Projects, item)
	}
	return c.JSON(http.StatusOK, resp)
}

// Tags godoc
// @Summary List every tag name
// @Tags api
// @Produce json
// @Success 200 {array} string
// @Failure 500 {object} errors.ErrorResponse
// @Router /tags [get]
func (h *APIHandler) Tags(c echo.Context) error {
	names, err := h.tagService.ListNames(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, names)
}
