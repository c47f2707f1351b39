package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"matchmaker/internal/model"
	"matchmaker/internal/repository"
)

// ProjectInput is the normalised project form shared by create and edit.
type ProjectInput struct {
	Name            string
	Description     string
	ContactInfoType string
	ContactInfo     string
	Location        model.GeoPoint
	InquiryDeadline *time.Time
	WorkStart       *time.Time
	WorkEnd         *time.Time
	PicURL1         string
	PicURL2         string
	Tags            []string
}

// ProjectService handles project lifecycle and the neighborhood query.
// Ownership is checked by the caller before Update and Delete.
type ProjectService interface {
	Create(ctx context.Context, owner *model.User, in ProjectInput) (*model.Project, error)
	Get(ctx context.Context, id uint) (*model.Project, error)
	Update(ctx context.Context, project *model.Project, in ProjectInput) error
	Delete(ctx context.Context, project *model.Project) error
	Neighborhood(ctx context.Context, bounds model.Bounds) ([]model.Project, error)
}

type projectService struct {
	repo repository.ProjectRepository
	tags TagService
}

// NewProjectService creates a new project service.
func NewProjectService(repo repository.ProjectRepository, tags TagService) ProjectService {
	return &projectService{repo: repo, tags: tags}
}

// Create stores a new project owned by owner, creating unknown tags on the way.
// An over-long tag name is a *apperrors.ValidationError on the "tags" field.
func (s *projectService) Create(ctx context.Context, owner *model.User, in ProjectInput) (*model.Project, error) {
	if err := CheckTagNames(in.Tags); err != nil {
		return nil, err
	}
	tags, err := s.tags.GetOrInsertAll(ctx, in.Tags)
	if err != nil {
		return nil, err
	}

	project := &model.Project{UserID: owner.ID}
	apply(project, in)
	project.Tags = tags

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	log.Ctx(ctx).Info().Uint("project_id", project.ID).Uint("user_id", owner.ID).Msg("project created")
	return project, nil
}

// Get loads a project with its owner and tags.
func (s *projectService) Get(ctx context.Context, id uint) (*model.Project, error) {
	return s.repo.FindByID(ctx, id)
}

// Update overwrites every editable field and replaces the tag set.
func (s *projectService) Update(ctx context.Context, project *model.Project, in ProjectInput) error {
	if err := CheckTagNames(in.Tags); err != nil {
		return err
	}
	tags, err := s.tags.GetOrInsertAll(ctx, in.Tags)
	if err != nil {
		return err
	}

	apply(project, in)
	project.Tags = tags

	if err := s.repo.Update(ctx, project); err != nil {
		return fmt.Errorf("update project %d: %w", project.ID, err)
	}
	return nil
}

// Delete removes the project and its tag associations. Tags themselves stay.
func (s *projectService) Delete(ctx context.Context, project *model.Project) error {
	if err := s.repo.Delete(ctx, project.ID); err != nil {
		return fmt.Errorf("delete project %d: %w", project.ID, err)
	}
	log.Ctx(ctx).Info().Uint("project_id", project.ID).Msg("project deleted")
	return nil
}

// Neighborhood returns projects strictly inside bounds.
func (s *projectService) Neighborhood(ctx context.Context, bounds model.Bounds) ([]model.Project, error) {
	projects, err := s.repo.FindInBounds(ctx, bounds)
	if err != nil {
		return nil, fmt.Errorf("neighborhood query: %w", err)
	}
	return projects, nil
}

func apply(p *model.Project, in ProjectInput) {
	p.Name = in.Name
	p.Description = in.Description
	p.ContactInfoType = in.ContactInfoType
	p.ContactInfo = in.ContactInfo
	p.Latitude = in.Location.Lat
	p.Longitude = in.Location.Long
	p.InquiryDeadline = in.InquiryDeadline
	p.WorkStart = in.WorkStart
	p.WorkEnd = in.WorkEnd
	p.PicURL1 = in.PicURL1
	p.PicURL2 = in.PicURL2
}
