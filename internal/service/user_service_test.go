package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "musicmentor/internal/errors"
	"musicmentor/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uint, role model.Role) (int64, error) {
	args := m.Called(ctx, id, role)
	return args.Get(0).(int64), args.Error(1)
}

func TestUserService_Register(t *testing.T) {
	tests := []struct {
		name          string
		user          *model.User
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name: "successful registration",
			user: &model.User{Name: "Sam Lee", Email: "sam@example.com"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "sam@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "duplicate email is a conflict, not an overwrite",
			user: &model.User{Name: "Imposter", Email: "sam@example.com"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "sam@example.com").
					Return(&model.User{Email: "sam@example.com", Role: model.RoleStudent}, nil)
			},
			expectedError: apperrors.ErrUserExists,
		},
		{
			name: "duplicate key race maps to conflict",
			user: &model.User{Name: "Sam Lee", Email: "sam@example.com"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "sam@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrUserExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo)
			created, err := svc.Register(context.Background(), tt.user)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, created)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.user.Email, created.Email)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_HasRole(t *testing.T) {
	tests := []struct {
		name        string
		callerEmail string
		paramEmail  string
		role        model.Role
		setupMock   func(*MockUserRepository)
		expected    bool
	}{
		{
			name:        "matching identity with matching role",
			callerEmail: "admin@example.com",
			paramEmail:  "admin@example.com",
			role:        model.RoleAdmin,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "admin@example.com").
					Return(&model.User{Email: "admin@example.com", Role: model.RoleAdmin}, nil)
			},
			expected: true,
		},
		{
			name:        "matching identity with different role",
			callerEmail: "sam@example.com",
			paramEmail:  "sam@example.com",
			role:        model.RoleAdmin,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "sam@example.com").
					Return(&model.User{Email: "sam@example.com", Role: model.RoleStudent}, nil)
			},
			expected: false,
		},
		{
			name:        "identity mismatch denies without a lookup",
			callerEmail: "sam@example.com",
			paramEmail:  "admin@example.com",
			role:        model.RoleAdmin,
			setupMock:   func(m *MockUserRepository) {},
			expected:    false,
		},
		{
			name:        "unknown email is false, not an error",
			callerEmail: "ghost@example.com",
			paramEmail:  "ghost@example.com",
			role:        model.RoleStudent,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo)
			has, err := svc.HasRole(context.Background(), tt.callerEmail, tt.paramEmail, tt.role)

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, has)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_SetRole(t *testing.T) {
	tests := []struct {
		name          string
		callerEmail   string
		id            uint
		role          model.Role
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:        "admin assigns a known role",
			callerEmail: "admin@example.com",
			id:          7,
			role:        model.RoleInstructor,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "admin@example.com").
					Return(&model.User{Email: "admin@example.com", Role: model.RoleAdmin}, nil)
				m.On("UpdateRole", mock.Anything, uint(7), model.RoleInstructor).Return(int64(1), nil)
				m.On("FindByID", mock.Anything, uint(7)).
					Return(&model.User{ID: 7, Role: model.RoleInstructor}, nil)
			},
			expectedError: nil,
		},
		{
			name:        "non-admin caller is forbidden",
			callerEmail: "sam@example.com",
			id:          7,
			role:        model.RoleInstructor,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "sam@example.com").
					Return(&model.User{Email: "sam@example.com", Role: model.RoleStudent}, nil)
			},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:        "unknown role is rejected",
			callerEmail: "admin@example.com",
			id:          7,
			role:        model.Role("sorcerer"),
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "admin@example.com").
					Return(&model.User{Email: "admin@example.com", Role: model.RoleAdmin}, nil)
			},
			expectedError: apperrors.ErrInvalidRole,
		},
		{
			name:        "unknown user id",
			callerEmail: "admin@example.com",
			id:          99,
			role:        model.RoleStudent,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "admin@example.com").
					Return(&model.User{Email: "admin@example.com", Role: model.RoleAdmin}, nil)
				m.On("UpdateRole", mock.Anything, uint(99), model.RoleStudent).Return(int64(0), nil)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo)
			user, err := svc.SetRole(context.Background(), tt.callerEmail, tt.id, tt.role)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.role, user.Role)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
