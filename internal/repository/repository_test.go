package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"matchmaker/internal/db"
	apperrors "matchmaker/internal/errors"
	"matchmaker/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gormDB, err := db.Open("sqlite", "file::memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gormDB
}

func seedUser(t *testing.T, repo UserRepository, name string) *model.User {
	t.Helper()
	user := &model.User{
		Email:        name + "@test.com",
		PasswordHash: "hash",
		DisplayName:  name,
		FirstName:    name,
		Latitude:     49.176662,
		Longitude:    -123.080341,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func seedProject(t *testing.T, repo ProjectRepository, owner *model.User, lat, long float64, tags ...string) *model.Project {
	t.Helper()
	project := &model.Project{
		Name:            "Compost Bin",
		Description:     "tumbler compost bin from a food grade drum",
		UserID:          owner.ID,
		ContactInfoType: "email",
		ContactInfo:     owner.Email,
		Latitude:        lat,
		Longitude:       long,
	}
	for _, name := range tags {
		project.Tags = append(project.Tags, model.Tag{Name: name})
	}
	require.NoError(t, repo.Create(context.Background(), project))
	return project
}

func TestUserRepository_Lookups(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))
	user := seedUser(t, repo, "tester")

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "tester@test.com", byID.Email)

	byEmail, err := repo.FindByEmail(ctx, "tester@test.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byName, err := repo.FindByDisplayName(ctx, "tester")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	_, err = repo.FindByID(ctx, user.ID+100)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = repo.FindByEmail(ctx, "nobody@test.com")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUserRepository_UniqueEmail(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	seedUser(t, repo, "tester")

	dup := &model.User{Email: "tester@test.com", PasswordHash: "x", DisplayName: "other", FirstName: "o"}
	err := repo.Create(context.Background(), dup)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	users := NewUserRepository(gormDB)
	projects := NewProjectRepository(gormDB)

	owner := seedUser(t, users, "owner")
	other := seedUser(t, users, "other")
	p1 := seedProject(t, projects, owner, 49.2, -123.1, "glass art")
	p2 := seedProject(t, projects, owner, 49.3, -123.2, "hardware", "green living")
	kept := seedProject(t, projects, other, 49.3, -123.2, "hardware")

	require.NoError(t, users.Delete(ctx, owner.ID))

	_, err := users.FindByID(ctx, owner.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	for _, id := range []uint{p1.ID, p2.ID} {
		_, err := projects.FindByID(ctx, id)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	}

	var joinRows int64
	require.NoError(t, gormDB.Model(&model.ProjectTag{}).Where("project_id IN ?", []uint{p1.ID, p2.ID}).Count(&joinRows).Error)
	assert.Zero(t, joinRows)

	survivor, err := projects.FindByID(ctx, kept.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"hardware"}, survivor.TagNames())

	assert.ErrorIs(t, users.Delete(ctx, owner.ID), apperrors.ErrNotFound)
}

func TestProjectRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	users := NewUserRepository(gormDB)
	projects := NewProjectRepository(gormDB)
	tags := NewTagRepository(gormDB)

	owner := seedUser(t, users, "tester")
	deadline := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	for _, name := range []string{"glass art", "hardware"} {
		_, err := tags.Insert(ctx, name)
		require.NoError(t, err)
	}
	project := &model.Project{
		Name:            "Stained Glass",
		Description:     "boring window",
		UserID:          owner.ID,
		ContactInfoType: "email",
		ContactInfo:     owner.Email,
		Latitude:        49.28,
		Longitude:       -123.11,
		InquiryDeadline: &deadline,
		WorkStart:       &start,
		Tags:            []model.Tag{{Name: "glass art"}, {Name: "hardware"}},
	}
	require.NoError(t, projects.Create(ctx, project))

	found, err := projects.FindByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "tester", found.User.DisplayName)
	assert.ElementsMatch(t, []string{"glass art", "hardware"}, found.TagNames())
	assert.False(t, found.TimePosted.IsZero())
	require.NotNil(t, found.InquiryDeadline)
	require.NotNil(t, found.WorkStart)
	assert.Equal(t, "2024-03-01", found.InquiryDeadline.UTC().Format("2006-01-02"))
	assert.Equal(t, "2024-04-01", found.WorkStart.UTC().Format("2006-01-02"))
	assert.Nil(t, found.WorkEnd)
}

func TestProjectRepository_UpdateReplacesTags(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	users := NewUserRepository(gormDB)
	projects := NewProjectRepository(gormDB)

	owner := seedUser(t, users, "tester")
	project := seedProject(t, projects, owner, 49.2, -123.1, "glass art", "hardware")

	loaded, err := projects.FindByID(ctx, project.ID)
	require.NoError(t, err)
	loaded.Name = "Renamed"
	loaded.Tags = []model.Tag{{Name: "hardware"}, {Name: "woodwork"}}
	require.NoError(t, projects.Update(ctx, loaded))

	updated, err := projects.FindByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.ElementsMatch(t, []string{"hardware", "woodwork"}, updated.TagNames())

	updated.Tags = nil
	require.NoError(t, projects.Update(ctx, updated))
	cleared, err := projects.FindByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Empty(t, cleared.Tags)
}

func TestProjectRepository_Delete(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	users := NewUserRepository(gormDB)
	projects := NewProjectRepository(gormDB)

	owner := seedUser(t, users, "tester")
	project := seedProject(t, projects, owner, 49.2, -123.1, "glass art")

	require.NoError(t, projects.Delete(ctx, project.ID))

	_, err := projects.FindByID(ctx, project.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	var joinRows int64
	require.NoError(t, gormDB.Model(&model.ProjectTag{}).Where("project_id = ?", project.ID).Count(&joinRows).Error)
	assert.Zero(t, joinRows)

	// the tag itself outlives the project
	names, err := NewTagRepository(gormDB).ListNames(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, "glass art")

	assert.ErrorIs(t, projects.Delete(ctx, project.ID), apperrors.ErrNotFound)
}

func TestProjectRepository_FindInBoundsIsExclusive(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	users := NewUserRepository(gormDB)
	projects := NewProjectRepository(gormDB)
	owner := seedUser(t, users, "tester")

	bounds := model.Bounds{North: 50, South: 49, East: -122, West: -124}
	inside := seedProject(t, projects, owner, 49.5, -123, "hardware")
	seedProject(t, projects, owner, 50, -123)     // on north
	seedProject(t, projects, owner, 49, -123)     // on south
	seedProject(t, projects, owner, 49.5, -122)   // on east
	seedProject(t, projects, owner, 49.5, -124)   // on west
	seedProject(t, projects, owner, 51, -123)     // outside latitude
	seedProject(t, projects, owner, 49.5, -121.5) // outside longitude

	found, err := projects.FindInBounds(ctx, bounds)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, inside.ID, found[0].ID)
	assert.Equal(t, "tester", found[0].User.DisplayName)
	assert.Equal(t, []string{"hardware"}, found[0].TagNames())
}

func TestTagRepository_InsertIsIdempotentAndCaseSensitive(t *testing.T) {
	ctx := context.Background()
	repo := NewTagRepository(newTestDB(t))

	created, err := repo.Insert(ctx, "glass art")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Insert(ctx, "glass art")
	require.NoError(t, err)
	assert.False(t, created)

	created, err = repo.Insert(ctx, "Glass Art")
	require.NoError(t, err)
	assert.True(t, created)

	names, err := repo.ListNames(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"glass art", "Glass Art"}, names)
}

func TestTagRepository_ListNamesEmpty(t *testing.T) {
	names, err := NewTagRepository(newTestDB(t)).ListNames(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
}
