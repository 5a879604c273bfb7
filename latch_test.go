package latch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latchauth/latch/store/memory"
)

func TestNew_RequiresStore(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorIs(t, err, ErrStoreRequired)
}

func TestNew_Defaults(t *testing.T) {
	l, err := New(Config{Store: memory.New()})
	require.NoError(t, err)

	assert.NotNil(t, l.Auth)
	assert.NotNil(t, l.Sessions)
	assert.NotNil(t, l.Hasher, "hasher should default to PBKDF2")
}

// End-to-end through the facade: register, log in, log out.
func TestLatch_Lifecycle(t *testing.T) {
	store := memory.New()
	l, err := New(Config{Store: store})
	require.NoError(t, err)

	ctx := context.Background()

	registered, err := l.Auth.Register(ctx, nil, RegisterInput{
		Email:    "a@x.com",
		Password: "p4ss",
	})
	require.NoError(t, err)
	require.Equal(t, ResultOK, registered.Result)
	assert.Equal(t, "a", registered.Account.Name)

	loggedIn, err := l.Auth.Login(ctx, nil, LoginInput{
		Email:    "a@x.com",
		Password: "p4ss",
	})
	require.NoError(t, err)
	require.Equal(t, ResultOK, loggedIn.Result)
	assert.NotEqual(t, registered.Session.SessionKey, loggedIn.Session.SessionKey)

	account, err := store.FindByID(ctx, loggedIn.Account.ID)
	require.NoError(t, err)

	mayLogout, err := l.Auth.Logout(ctx, loggedIn.Session, account)
	require.NoError(t, err)
	assert.True(t, mayLogout)
}
