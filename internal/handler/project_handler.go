package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"matchmaker/internal/identity"
	"matchmaker/internal/model"
	"matchmaker/internal/service"
	"matchmaker/internal/session"
)

// ProjectHandler serves the project pages.
type ProjectHandler struct {
	projectService service.ProjectService
	tagService     service.TagService
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(projectService service.ProjectService, tagService service.TagService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, tagService: tagService}
}

func projectURL(id uint) string {
	return fmt.Sprintf("/project/%d", id)
}

// NewPage renders an empty project form.
func (h *ProjectHandler) NewPage(c echo.Context) error {
	if _, err := identity.FromContext(c).RequireUser("Unauthorized access. Account needed to create."); err != nil {
		return err
	}
	return h.formPage(c, "project_new", new(ProjectForm), nil, nil)
}

// Create posts a new project owned by the caller.
func (h *ProjectHandler) Create(c echo.Context) error {
	user, err := identity.FromContext(c).RequireUser("Unauthorized access. Account needed to create.")
	if err != nil {
		return err
	}

	form := new(ProjectForm)
	errs, err := bindForm(c, form)
	if err != nil {
		return err
	}
	if errs != nil {
		return h.formPage(c, "project_new", form, errs, nil)
	}

	ctx := c.Request().Context()
	project, err := h.projectService.Create(ctx, user, form.input(ctx))
	if err != nil {
		if errs, err := fieldErrors(err); err == nil {
			return h.formPage(c, "project_new", form, errs, nil)
		}
		return err
	}
	return redirectWithFlash(c, session.FlashSuccess, "Project created successfully", projectURL(project.ID))
}

// Detail is public.
func (h *ProjectHandler) Detail(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	project, err := h.projectService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	caller := identity.FromContext(c)
	return c.Render(http.StatusOK, "project_detail", map[string]any{
		"Project": project,
		"Tags":    strings.Join(project.TagNames(), ", "),
		"IsOwner": caller.IsAuthenticated() && project.OwnedBy(caller.User.ID),
	})
}

// EditPage renders the edit form for the owner.
func (h *ProjectHandler) EditPage(c echo.Context) error {
	project, err := h.ownedProject(c, "Unauthorized access. Account needed to edit.")
	if err != nil {
		return err
	}
	return h.formPage(c, "project_edit", projectFormFrom(project), nil, map[string]any{"Project": project})
}

// Update overwrites the project with the submitted form.
func (h *ProjectHandler) Update(c echo.Context) error {
	project, err := h.ownedProject(c, "Unauthorized access. Account needed to edit.")
	if err != nil {
		return err
	}

	form := new(ProjectForm)
	errs, err := bindForm(c, form)
	if err != nil {
		return err
	}
	if errs != nil {
		return h.formPage(c, "project_edit", form, errs, map[string]any{"Project": project})
	}

	ctx := c.Request().Context()
	if err := h.projectService.Update(ctx, project, form.input(ctx)); err != nil {
		if errs, err := fieldErrors(err); err == nil {
			return h.formPage(c, "project_edit", form, errs, map[string]any{"Project": project})
		}
		return err
	}
	return redirectWithFlash(c, session.FlashSuccess, "Project edited successfully.", projectURL(project.ID))
}

// Delete removes the project for its owner.
func (h *ProjectHandler) Delete(c echo.Context) error {
	project, err := h.ownedProject(c, "Unauthorized access. Account needed to delete.")
	if err != nil {
		return err
	}
	if err := h.projectService.Delete(c.Request().Context(), project); err != nil {
		return err
	}
	return redirectWithFlash(c, session.FlashSuccess, "Project deleted successfully.", "/search")
}

// ownedProject loads the project named in the path and checks the caller owns it.
// Callers without an account are turned away before the lookup.
func (h *ProjectHandler) ownedProject(c echo.Context, denied string) (*model.Project, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}
	user, err := identity.FromContext(c).RequireUserOr(denied, projectURL(id))
	if err != nil {
		return nil, err
	}
	project, err := h.projectService.Get(c.Request().Context(), id)
	if err != nil {
		return nil, err
	}
	if err := identity.RequireOwner(user, project, projectURL(id)); err != nil {
		return nil, err
	}
	return project, nil
}

func (h *ProjectHandler) formPage(c echo.Context, page string, form *ProjectForm, errs map[string]string, extra map[string]any) error {
	tags, err := h.tagService.ListNames(c.Request().Context())
	if err != nil {
		return err
	}
	if extra == nil {
		extra = map[string]any{}
	}
	extra["TagsFullList"] = tags
	return formPage(c, page, form, errs, extra)
}
