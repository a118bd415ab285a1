package user

import (
	"context"
	"testing"
	"time"

	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/internal/testutil"
	"foodgram-backend/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) (UserService, jwt.JWTService) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	jwtService := jwt.NewJWTServiceWithSecret("test", time.Hour)
	svc := NewUserService(NewUserRepository(db), jwtService).(*userService)
	svc.hashCost = bcrypt.MinCost
	return svc, jwtService
}

func registerRequest(username string) domain.RegisterRequest {
	return domain.RegisterRequest{
		Email:     username + "@Example.com",
		Username:  username,
		FirstName: "Anna",
		LastName:  "Cook",
		Password:  "long-enough-pass",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, jwtService := newTestService(t)

	reg, err := svc.Register(ctx, registerRequest("anna"))
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", reg.Email)
	assert.NotEmpty(t, reg.ID)

	token, err := svc.Login(ctx, domain.LoginRequest{Email: "ANNA@example.com", Password: "long-enough-pass"})
	require.NoError(t, err)

	id, err := jwtService.GetUserIDByToken(token.AuthToken)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, id)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "anna@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "nobody@example.com", Password: "long-enough-pass"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Register(ctx, registerRequest("anna"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerRequest("anna"))
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	req := registerRequest("other")
	req.Email = "anna@example.com"
	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	reg, err := svc.Register(ctx, registerRequest("anna"))
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, reg.ID, domain.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "brand-new-pass"})
	assert.ErrorIs(t, err, domain.ErrInvalidCurrentPassword)

	err = svc.ChangePassword(ctx, reg.ID, domain.ChangePasswordRequest{CurrentPassword: "long-enough-pass", NewPassword: "brand-new-pass"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "anna@example.com", Password: "brand-new-pass"})
	assert.NoError(t, err)
}

func TestGetUserIsSubscribed(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := NewUserService(NewUserRepository(db), jwt.NewJWTServiceWithSecret("test", time.Hour))

	author := testutil.CreateUser(t, db, "author")
	reader := testutil.CreateUser(t, db, "reader")
	require.NoError(t, db.Create(&entities.Subscription{AuthorID: author.ID, SubscriberID: reader.ID}).Error)

	res, err := svc.GetUser(ctx, author.ID.String(), reader.ID.String())
	require.NoError(t, err)
	assert.True(t, res.IsSubscribed)

	res, err = svc.GetUser(ctx, author.ID.String(), "")
	require.NoError(t, err)
	assert.False(t, res.IsSubscribed)

	me, err := svc.Me(ctx, reader.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "reader", me.Username)
	assert.False(t, me.IsSubscribed)

	_, err = svc.GetUser(ctx, "not-a-uuid", "")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	users, total, err := svc.GetUsers(ctx, domain.PaginationRequest{Page: 1, Limit: 10}, reader.ID.String())
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, users, 2)
	assert.Equal(t, "author", users[0].Username)
	assert.True(t, users[0].IsSubscribed)
}
