package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"matchmaker/internal/model"
)

// TagRepository defines tag persistence operations.
type TagRepository interface {
	// Insert stores name unless it already exists and reports whether a row was created.
	Insert(ctx context.Context, name string) (bool, error)
	ListNames(ctx context.Context) ([]string, error)
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Insert(ctx context.Context, name string) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.Tag{Name: name})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *tagRepository) ListNames(ctx context.Context) ([]string, error) {
	names := []string{}
	if err := r.db.WithContext(ctx).Model(&model.Tag{}).Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}
