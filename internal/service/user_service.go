package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	apperrors "matchmaker/internal/errors"
	"matchmaker/internal/model"
	"matchmaker/internal/repository"
)

// ProfileInput is the normalised profile edit form. Email and Password
// re-verify the caller; the email itself is never changed.
type ProfileInput struct {
	Email          string
	Password       string
	DisplayName    string
	FirstName      string
	ProfilePic     string
	Location       model.GeoPoint
	Privacy        bool
	SeekingProject bool
	SeekingHelp    bool
}

// UserService handles profile operations for registered users.
type UserService interface {
	UpdateProfile(ctx context.Context, current *model.User, in ProfileInput) (*model.User, error)
	Delete(ctx context.Context, current *model.User, userID uint) error
}

type userService struct {
	userRepo repository.UserRepository
	auth     AuthService
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, auth AuthService) UserService {
	return &userService{userRepo: userRepo, auth: auth}
}

// UpdateProfile applies in to current after the submitted credentials are checked
// against current's own account. A mismatch returns ErrInvalidCredentials.
func (s *userService) UpdateProfile(ctx context.Context, current *model.User, in ProfileInput) (*model.User, error) {
	verified, err := s.auth.Login(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	if verified.ID != current.ID {
		return nil, apperrors.ErrInvalidCredentials
	}

	if in.DisplayName != verified.DisplayName {
		other, err := s.userRepo.FindByDisplayName(ctx, in.DisplayName)
		switch {
		case err == nil && other.ID != verified.ID:
			return nil, apperrors.NewValidationError("display_name", "Display name already in use")
		case err != nil && !errors.Is(err, apperrors.ErrNotFound):
			return nil, fmt.Errorf("check display name: %w", err)
		}
	}

	verified.FirstName = in.FirstName
	verified.DisplayName = in.DisplayName
	verified.ProfilePic = in.ProfilePic
	if verified.ProfilePic == "" {
		verified.ProfilePic = model.DefaultProfilePic
	}
	verified.Latitude = in.Location.Lat
	verified.Longitude = in.Location.Long
	verified.Privacy = in.Privacy
	verified.SeekingProject = in.SeekingProject
	verified.SeekingHelp = in.SeekingHelp

	if err := s.userRepo.Update(ctx, verified); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewValidationError("display_name", "Display name already in use")
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return verified, nil
}

// Delete removes the caller's own account together with its projects.
func (s *userService) Delete(ctx context.Context, current *model.User, userID uint) error {
	if current == nil || current.ID != userID {
		return &apperrors.AuthorizationError{
			Message:    "Unauthorized access. Correct account needed to delete profile.",
			RedirectTo: "/",
		}
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	log.Ctx(ctx).Info().Uint("user_id", userID).Msg("user deleted")
	return nil
}
