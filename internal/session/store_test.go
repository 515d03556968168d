package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LoginLogout(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		token  string
		userID string
	}{
		{name: "plain token", token: "t1", userID: "u1"},
		{name: "empty values", token: "", userID: ""},
		{name: "long token", token: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa.bbbb.cccc", userID: "u-42"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := NewStore()
			store.Login(tc.token, tc.userID)
			require.True(t, store.Authenticated())

			store.Logout()

			cred, ok := store.Current()
			assert.False(t, ok)
			assert.Equal(t, Credential{}, cred)
			assert.Nil(t, store.CredentialRef())
		})
	}
}

func TestStore_LoginReplacesPriorCredential(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.Login("t1", "u1")
	store.Login("t2", "u2")

	cred, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, "t2", cred.Token)
	assert.Equal(t, "u2", cred.UserID)
}

func TestStore_CredentialRefIsACopy(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.Login("t1", "u1")

	ref := store.CredentialRef()
	require.NotNil(t, ref)
	ref.Token = "tampered"

	cred, _ := store.Current()
	assert.Equal(t, "t1", cred.Token)
}

func TestStore_DecodesJWTExpiry(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": "u1",
		"exp":    exp.Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	cred := NewStore().Login(token, "u1")

	assert.True(t, cred.ExpiresAt.Equal(exp))
	assert.False(t, cred.Expired(time.Now()))
	assert.True(t, cred.Expired(exp.Add(time.Second)))
}

func TestStore_OpaqueTokenHasNoExpiry(t *testing.T) {
	t.Parallel()

	cred := NewStore().Login("opaque", "u1")

	assert.True(t, cred.ExpiresAt.IsZero())
	assert.False(t, cred.Expired(time.Now().Add(100*time.Hour)))
}
