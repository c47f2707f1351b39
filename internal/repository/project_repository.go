package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "matchmaker/internal/errors"
	"matchmaker/internal/model"
)

// ProjectRepository defines project persistence operations.
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	Update(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id uint) (*model.Project, error)
	FindInBounds(ctx context.Context, bounds model.Bounds) ([]model.Project, error)
	Delete(ctx context.Context, id uint) error
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// Create inserts the project and its tag associations. Tags must already exist.
func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Omit("User").Create(project).Error
}

// Update overwrites every editable column and replaces the tag set.
func (r *projectRepository) Update(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(project).Error; err != nil {
			return err
		}
		tags := tx.Model(project).Association("Tags")
		if len(project.Tags) == 0 {
			return tags.Clear()
		}
		return tags.Replace(project.Tags)
	})
}

// FindByID loads a project with its owner and tags.
func (r *projectRepository) FindByID(ctx context.Context, id uint) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).Preload("User").Preload("Tags").First(&project, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &project, nil
}

// FindInBounds returns every project strictly inside the box.
func (r *projectRepository) FindInBounds(ctx context.Context, bounds model.Bounds) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Tags").
		Where("latitude < ? AND latitude > ?", bounds.North, bounds.South).
		Where("longitude > ? AND longitude < ?", bounds.West, bounds.East).
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// Delete removes the project and its tag rows.
func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&model.ProjectTag{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Project{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}
