package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "matchmaker/internal/errors"
	"matchmaker/internal/model"
	"matchmaker/internal/repository"
)

const bcryptCost = 10

// SignupInput is the normalised signup form.
type SignupInput struct {
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

// AuthService handles signup and credential checks.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

// Signup creates a user with a bcrypt-hashed password.
// Email and display name must both be unused.
func (s *authService) Signup(ctx context.Context, in SignupInput) (*model.User, error) {
	fields := map[string]string{}
	if taken, err := s.exists(ctx, s.userRepo.FindByEmail, in.Email); err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	} else if taken {
		fields["email"] = "Email already in use"
	}
	if taken, err := s.exists(ctx, s.userRepo.FindByDisplayName, in.DisplayName); err != nil {
		return nil, fmt.Errorf("check display name: %w", err)
	} else if taken {
		fields["display_name"] = "Display name already in use"
	}
	if len(fields) > 0 {
		return nil, &apperrors.ValidationError{Fields: fields}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	pic := in.ProfilePic
	if pic == "" {
		pic = model.DefaultProfilePic
	}
	user := &model.User{
		Email:          in.Email,
		PasswordHash:   string(hashed),
		DisplayName:    in.DisplayName,
		FirstName:      in.FirstName,
		ProfilePic:     pic,
		Privacy:        in.Privacy,
		Latitude:       in.Location.Lat,
		Longitude:      in.Location.Long,
		SeekingProject: in.SeekingProject,
		SeekingHelp:    in.SeekingHelp,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewValidationError("email", "Email or display name already in use")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	log.Ctx(ctx).Info().Uint("user_id", user.ID).Str("display_name", user.DisplayName).Msg("user signed up")
	return user, nil
}

// Login returns the user owning email when password matches its hash.
// Every failure is reported as ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Ctx(ctx).Debug().Uint("user_id", user.ID).Msg("password mismatch")
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

func (s *authService) exists(ctx context.Context, find func(context.Context, string) (*model.User, error), key string) (bool, error) {
	_, err := find(ctx, key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, apperrors.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}
