package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "matchmaker/internal/errors"
	"matchmaker/internal/model"
)

func validSignup() SignupInput {
	return SignupInput{
		Email:          "tester@test.com",
		Password:       "password",
		DisplayName:    "tester",
		FirstName:      "Tester",
		Location:       model.GeoPoint{Lat: 49.176662, Long: -123.080341},
		SeekingProject: true,
		SeekingHelp:    true,
	}
}

func TestAuthService_Signup(t *testing.T) {
	tests := []struct {
		name        string
		setupMock   func(*MockUserRepository)
		wantFields  []string
		wantErrType bool
	}{
		{
			name: "successful signup",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "tester@test.com").Return(nil, apperrors.ErrNotFound)
				m.On("FindByDisplayName", mock.Anything, "tester").Return(nil, apperrors.ErrNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name: "email taken",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "tester@test.com").Return(&model.User{ID: 2}, nil)
				m.On("FindByDisplayName", mock.Anything, "tester").Return(nil, apperrors.ErrNotFound)
			},
			wantFields:  []string{"email"},
			wantErrType: true,
		},
		{
			name: "email and display name taken",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "tester@test.com").Return(&model.User{ID: 2}, nil)
				m.On("FindByDisplayName", mock.Anything, "tester").Return(&model.User{ID: 3}, nil)
			},
			wantFields:  []string{"email", "display_name"},
			wantErrType: true,
		},
		{
			name: "uniqueness race caught by the database",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "tester@test.com").Return(nil, apperrors.ErrNotFound)
				m.On("FindByDisplayName", mock.Anything, "tester").Return(nil, apperrors.ErrNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			wantFields:  []string{"email"},
			wantErrType: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo)
			user, err := service.Signup(context.Background(), validSignup())

			if tt.wantErrType {
				var validationErr *apperrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				for _, f := range tt.wantFields {
					assert.Contains(t, validationErr.Fields, f)
				}
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "tester@test.com", user.Email)
				assert.NotEqual(t, "password", user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password")))
				assert.Equal(t, model.DefaultProfilePic, user.ProfilePic)
				assert.True(t, user.SeekingProject)
				assert.False(t, user.Privacy)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &model.User{ID: 1, Email: "tester@test.com", PasswordHash: string(hashed)}

	tests := []struct {
		name      string
		email     string
		password  string
		setupMock func(*MockUserRepository)
		wantErr   error
	}{
		{
			name:     "successful login",
			email:    "tester@test.com",
			password: "password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "tester@test.com").Return(stored, nil)
			},
		},
		{
			name:     "wrong password",
			email:    "tester@test.com",
			password: "wrong",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "tester@test.com").Return(stored, nil)
			},
			wantErr: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "nobody@test.com",
			password: "password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "nobody@test.com").Return(nil, apperrors.ErrNotFound)
			},
			wantErr: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			user, err := NewAuthService(mockRepo).Login(context.Background(), tt.email, tt.password)

			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, stored.ID, user.ID)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}
