package services

import (
	"context"
	"testing"

	"storefront-service/internal/domain"
	"storefront-service/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

var testJWTSecret = []byte("test-secret")

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestAuthService_Register(t *testing.T) {
	input := RegisterInput{
		Username:  "shopper",
		Email:     "shopper@example.com",
		Password:  "correct horse",
		FirstName: "Sam",
		LastName:  "Shopper",
	}

	t.Run("creates user with hashed password", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		users.On("FindByUsername", "shopper").Return(nil, nil)
		users.On("FindByEmail", "shopper@example.com").Return(nil, nil)
		users.On("Save", mock.AnythingOfType("*domain.User")).Return(nil).Run(func(args mock.Arguments) {
			args.Get(0).(*domain.User).ID = 5
		})

		service := NewAuthService(users, testJWTSecret)
		user, err := service.Register(context.Background(), input)

		assert.NoError(t, err)
		assert.Equal(t, uint64(5), user.ID)
		assert.NotEqual(t, input.Password, user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)))
	})

	t.Run("duplicate username", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		users.On("FindByUsername", "shopper").Return(&domain.User{ID: 1, Username: "shopper"}, nil)

		service := NewAuthService(users, testJWTSecret)
		_, err := service.Register(context.Background(), input)

		assert.ErrorIs(t, err, ErrAlreadyExists)
		users.AssertNotCalled(t, "Save", mock.Anything)
	})
}

func TestAuthService_LoginAndParseToken(t *testing.T) {
	user := &domain.User{
		ID:           7,
		Username:     "shopper",
		Email:        "shopper@example.com",
		PasswordHash: "",
		IsAdmin:      true,
	}

	t.Run("round trip", func(t *testing.T) {
		user.PasswordHash = hashPassword(t, "correct horse")
		users := new(mocks.MockUserRepository)
		users.On("FindByUsername", "shopper").Return(user, nil)

		service := NewAuthService(users, testJWTSecret)
		token, err := service.Login(context.Background(), "shopper", "correct horse")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		principal, err := service.ParseToken(token)
		assert.NoError(t, err)
		assert.Equal(t, uint64(7), principal.UserID)
		assert.Equal(t, "shopper@example.com", principal.Email)
		assert.True(t, principal.IsAdmin)
	})

	t.Run("wrong password", func(t *testing.T) {
		user.PasswordHash = hashPassword(t, "correct horse")
		users := new(mocks.MockUserRepository)
		users.On("FindByUsername", "shopper").Return(user, nil)

		service := NewAuthService(users, testJWTSecret)
		_, err := service.Login(context.Background(), "shopper", "wrong horse")

		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("unknown user", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		users.On("FindByUsername", "ghost").Return(nil, nil)

		service := NewAuthService(users, testJWTSecret)
		_, err := service.Login(context.Background(), "ghost", "whatever")

		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("garbage token", func(t *testing.T) {
		service := NewAuthService(new(mocks.MockUserRepository), testJWTSecret)
		_, err := service.ParseToken("not-a-token")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})
}
