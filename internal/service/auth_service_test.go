package service

import (
	"context"
	"testing"

	"portfolio_server/internal/model"
	"portfolio_server/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo keeps users in a map, enough for the auth flows.
type fakeUserRepo struct {
	users  map[string]*model.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	user.ID = f.nextID
	f.nextID++
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return f.users[username], nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id int) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) GetDetails(ctx context.Context, userID int) (*model.UserDetails, error) {
	return nil, nil
}

func (f *fakeUserRepo) UpsertDetails(ctx context.Context, d *model.UserDetails) error {
	return nil
}

func newAuthService(repo *fakeUserRepo) AuthService {
	return NewAuthService(repo, utils.NewJWTUtil("secret", 1))
}

func TestAuthService_Register(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	user, err := svc.Register(context.Background(), "alice", "pw1")

	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.False(t, user.IsAdmin)
	assert.NotEqual(t, "pw1", user.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("pw1", user.PasswordHash))
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), "alice", "pw1")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice", "pw2")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthService_Login(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	_, err := svc.Register(context.Background(), "alice", "pw1")
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), "alice", "pw1")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.False(t, user.IsAdmin)

	claims, err := utils.NewJWTUtil("secret", 1).ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.False(t, claims.IsAdmin)
}

func TestAuthService_Login_IndistinguishableFailures(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	_, err := svc.Register(context.Background(), "alice", "pw1")
	require.NoError(t, err)

	_, _, wrongPwErr := svc.Login(context.Background(), "alice", "nope")
	_, _, unknownErr := svc.Login(context.Background(), "ghost", "pw1")

	assert.ErrorIs(t, wrongPwErr, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.Equal(t, wrongPwErr.Error(), unknownErr.Error())
}
