package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/preschool/backend/internal/domain/identity"
	"github.com/preschool/backend/internal/domain/shared"
	"github.com/preschool/backend/internal/infrastructure/auth"
	"github.com/preschool/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func newAuthServiceFixture() (*AuthService, *MockUserRepository, *auth.JWTService, *auth.InMemoryTokenBlacklist) {
	userRepo := new(MockUserRepository)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()
	service := NewAuthService(userRepo, jwtService, blacklist, zap.NewNop())
	return service, userRepo, jwtService, blacklist
}

func newActiveUser(t *testing.T, email, password string) *identity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user, err := identity.NewUser(uuid.New(), email, string(hash), "Dana", "Kim", identity.RoleAdmin)
	require.NoError(t, err)
	return user
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a new user with hashed password", func(t *testing.T) {
		service, userRepo, _, _ := newAuthServiceFixture()

		userRepo.On("ExistsByEmail", ctx, "dana@school.test").Return(false, nil)
		userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		resp, err := service.Register(ctx, RegisterRequest{
			SchoolID:  uuid.New(),
			Email:     "dana@school.test",
			Password:  "s3cret-pass",
			FirstName: "Dana",
			LastName:  "Kim",
			Role:      "admin",
		})

		require.NoError(t, err)
		assert.Equal(t, "dana@school.test", resp.Email)
		assert.Equal(t, "admin", resp.Role)
		assert.True(t, resp.IsActive)

		saved := userRepo.Calls[1].Arguments.Get(1).(*identity.User)
		assert.NotEqual(t, "s3cret-pass", saved.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("s3cret-pass")))
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		service, userRepo, _, _ := newAuthServiceFixture()

		userRepo.On("ExistsByEmail", ctx, "dana@school.test").Return(true, nil)

		resp, err := service.Register(ctx, RegisterRequest{
			Email:     "dana@school.test",
			Password:  "s3cret-pass",
			FirstName: "Dana",
			LastName:  "Kim",
		})

		require.Error(t, err)
		assert.Nil(t, resp)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)
		userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("returns token pair and records login time", func(t *testing.T) {
		service, userRepo, jwtService, _ := newAuthServiceFixture()
		user := newActiveUser(t, "dana@school.test", "s3cret-pass")

		userRepo.On("FindByEmail", ctx, "dana@school.test").Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)

		result, err := service.Login(ctx, LoginRequest{
			Email:    "dana@school.test",
			Password: "s3cret-pass",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.NotNil(t, user.LastLogin)

		claims, err := jwtService.ValidateAccessToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.UserID)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("wrong password is invalid credentials", func(t *testing.T) {
		service, userRepo, _, _ := newAuthServiceFixture()
		user := newActiveUser(t, "dana@school.test", "s3cret-pass")

		userRepo.On("FindByEmail", ctx, "dana@school.test").Return(user, nil)

		result, err := service.Login(ctx, LoginRequest{
			Email:    "dana@school.test",
			Password: "wrong",
		})

		require.Error(t, err)
		assert.Nil(t, result)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("unknown email is the same invalid credentials", func(t *testing.T) {
		service, userRepo, _, _ := newAuthServiceFixture()

		userRepo.On("FindByEmail", ctx, "ghost@school.test").Return(nil, shared.ErrNotFound)

		result, err := service.Login(ctx, LoginRequest{
			Email:    "ghost@school.test",
			Password: "whatever",
		})

		require.Error(t, err)
		assert.Nil(t, result)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("deactivated account cannot log in", func(t *testing.T) {
		service, userRepo, _, _ := newAuthServiceFixture()
		user := newActiveUser(t, "dana@school.test", "s3cret-pass")
		user.Deactivate()

		userRepo.On("FindByEmail", ctx, "dana@school.test").Return(user, nil)

		result, err := service.Login(ctx, LoginRequest{
			Email:    "dana@school.test",
			Password: "s3cret-pass",
		})

		require.Error(t, err)
		assert.Nil(t, result)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a fresh token pair", func(t *testing.T) {
		service, userRepo, jwtService, _ := newAuthServiceFixture()
		user := newActiveUser(t, "dana@school.test", "s3cret-pass")

		pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
			UserID:   user.ID,
			Email:    user.Email,
			Role:     string(user.Role),
			SchoolID: user.SchoolID,
		})
		require.NoError(t, err)

		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		result, err := service.Refresh(ctx, RefreshRequest{RefreshToken: pair.RefreshToken})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.Equal(t, user.Email, result.User.Email)
	})

	t.Run("rejects an access token used as refresh token", func(t *testing.T) {
		service, _, jwtService, _ := newAuthServiceFixture()
		user := newActiveUser(t, "dana@school.test", "s3cret-pass")

		pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
			UserID:   user.ID,
			Email:    user.Email,
			Role:     string(user.Role),
			SchoolID: user.SchoolID,
		})
		require.NoError(t, err)

		result, err := service.Refresh(ctx, RefreshRequest{RefreshToken: pair.AccessToken})

		require.Error(t, err)
		assert.Nil(t, result)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("blacklists the access token for its remaining lifetime", func(t *testing.T) {
		service, _, jwtService, blacklist := newAuthServiceFixture()
		user := newActiveUser(t, "dana@school.test", "s3cret-pass")

		pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
			UserID:   user.ID,
			Email:    user.Email,
			Role:     string(user.Role),
			SchoolID: user.SchoolID,
		})
		require.NoError(t, err)

		require.NoError(t, service.Logout(ctx, pair.AccessToken))

		claims, err := jwtService.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		blacklisted, err := blacklist.IsBlacklisted(ctx, claims.ID)
		require.NoError(t, err)
		assert.True(t, blacklisted)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		service, _, _, _ := newAuthServiceFixture()

		err := service.Logout(ctx, "not-a-token")

		require.Error(t, err)
	})
}
