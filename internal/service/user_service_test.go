package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "matchmaker/internal/errors"
	"matchmaker/internal/model"
)

func storedUser(t *testing.T, id uint, email, displayName string) *model.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)
	return &model.User{ID: id, Email: email, DisplayName: displayName, PasswordHash: string(hashed)}
}

func profileInput(email, password, displayName string) ProfileInput {
	return ProfileInput{
		Email:       email,
		Password:    password,
		DisplayName: displayName,
		FirstName:   "Pat",
		Location:    model.GeoPoint{Lat: 49.2, Long: -123.1},
		SeekingHelp: true,
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("applies changes after re-verifying", func(t *testing.T) {
		repo := new(MockUserRepository)
		current := storedUser(t, 1, "pat@test.com", "pat")
		repo.On("FindByEmail", mock.Anything, "pat@test.com").Return(current, nil)
		repo.On("FindByDisplayName", mock.Anything, "patty").Return(nil, apperrors.ErrNotFound)
		repo.On("Update", mock.Anything, current).Return(nil)

		svc := NewUserService(repo, NewAuthService(repo))
		updated, err := svc.UpdateProfile(ctx, current, profileInput("pat@test.com", "password", "patty"))

		require.NoError(t, err)
		assert.Equal(t, "patty", updated.DisplayName)
		assert.Equal(t, "pat@test.com", updated.Email)
		assert.Equal(t, 49.2, updated.Latitude)
		assert.Equal(t, model.DefaultProfilePic, updated.ProfilePic)
		assert.False(t, updated.SeekingProject)
		repo.AssertExpectations(t)
	})

	t.Run("wrong password changes nothing", func(t *testing.T) {
		repo := new(MockUserRepository)
		current := storedUser(t, 1, "pat@test.com", "pat")
		repo.On("FindByEmail", mock.Anything, "pat@test.com").Return(current, nil)

		svc := NewUserService(repo, NewAuthService(repo))
		_, err := svc.UpdateProfile(ctx, current, profileInput("pat@test.com", "nope", "patty"))

		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		assert.Equal(t, "pat", current.DisplayName)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("credentials of another account are rejected", func(t *testing.T) {
		repo := new(MockUserRepository)
		current := storedUser(t, 1, "pat@test.com", "pat")
		other := storedUser(t, 2, "jill@test.com", "jill")
		repo.On("FindByEmail", mock.Anything, "jill@test.com").Return(other, nil)

		svc := NewUserService(repo, NewAuthService(repo))
		_, err := svc.UpdateProfile(ctx, current, profileInput("jill@test.com", "password", "patty"))

		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("display name owned by someone else", func(t *testing.T) {
		repo := new(MockUserRepository)
		current := storedUser(t, 1, "pat@test.com", "pat")
		repo.On("FindByEmail", mock.Anything, "pat@test.com").Return(current, nil)
		repo.On("FindByDisplayName", mock.Anything, "jill").Return(&model.User{ID: 2}, nil)

		svc := NewUserService(repo, NewAuthService(repo))
		_, err := svc.UpdateProfile(ctx, current, profileInput("pat@test.com", "password", "jill"))

		var validationErr *apperrors.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Fields, "display_name")
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	current := &model.User{ID: 1}

	t.Run("own account", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("Delete", mock.Anything, uint(1)).Return(nil)

		require.NoError(t, NewUserService(repo, NewAuthService(repo)).Delete(ctx, current, 1))
		repo.AssertExpectations(t)
	})

	t.Run("someone else's account", func(t *testing.T) {
		repo := new(MockUserRepository)

		err := NewUserService(repo, NewAuthService(repo)).Delete(ctx, current, 2)

		var authErr *apperrors.AuthorizationError
		require.ErrorAs(t, err, &authErr)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
