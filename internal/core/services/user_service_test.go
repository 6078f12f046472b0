package services_test

import (
	"context"
	"testing"

	"github.com/fintrack/fintrack_backend/internal/apperrors"
	"github.com/fintrack/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrack/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack/fintrack_backend/internal/core/services"
	"github.com/fintrack/fintrack_backend/internal/dto"
	"github.com/fintrack/fintrack_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

func (suite *UserServiceTestSuite) TestCreateUserHashesPassword() {
	suite.mockUserRepo.On("FindUserByUsername", mock.Anything, "minh").Return(nil, apperrors.ErrNotFound)

	var saved domain.User
	suite.mockUserRepo.On("SaveUser", mock.Anything, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.User) }).
		Return(nil)

	user, err := suite.service.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "minh",
		Name:     "Minh",
		Password: "correct horse battery",
	})

	require.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), "correct horse battery", saved.PasswordHash)
	assert.True(suite.T(), utils.CheckPasswordHash("correct horse battery", saved.PasswordHash))
	assert.Equal(suite.T(), user.UserID, saved.CreatedBy, "users are their own creator")
}

func (suite *UserServiceTestSuite) TestCreateUserRejectsTakenUsername() {
	existing := &domain.User{UserID: uuid.NewString(), Username: "minh"}
	suite.mockUserRepo.On("FindUserByUsername", mock.Anything, "minh").Return(existing, nil)

	_, err := suite.service.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "minh",
		Name:     "Minh",
		Password: "whatever123",
	})

	assert.ErrorIs(suite.T(), err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestAuthenticateSucceedsWithValidCredentials() {
	hash, err := utils.HashPassword("s3cret-pass")
	require.NoError(suite.T(), err)
	user := &domain.User{UserID: uuid.NewString(), Username: "minh", PasswordHash: hash}
	suite.mockUserRepo.On("FindUserByUsername", mock.Anything, "minh").Return(user, nil)

	got, err := suite.service.Authenticate(context.Background(), "minh", "s3cret-pass")

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), user.UserID, got.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticateRejectsWrongPassword() {
	hash, err := utils.HashPassword("s3cret-pass")
	require.NoError(suite.T(), err)
	user := &domain.User{UserID: uuid.NewString(), Username: "minh", PasswordHash: hash}
	suite.mockUserRepo.On("FindUserByUsername", mock.Anything, "minh").Return(user, nil)

	_, err = suite.service.Authenticate(context.Background(), "minh", "wrong-pass")

	assert.ErrorIs(suite.T(), err, services.ErrInvalidCredentials)
}

func (suite *UserServiceTestSuite) TestAuthenticateHidesUnknownUsernames() {
	suite.mockUserRepo.On("FindUserByUsername", mock.Anything, "ghost").Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.Authenticate(context.Background(), "ghost", "whatever123")

	assert.ErrorIs(suite.T(), err, services.ErrInvalidCredentials, "unknown users and bad passwords are indistinguishable")
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
