package auth

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/isdelr/auction-lab/internal/models"
	"github.com/isdelr/auction-lab/internal/session"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	lastCreds models.Credentials
	lastReg   models.Registration
	resp      models.AuthResponse
	err       error
}

func (f *fakeAPI) Login(_ context.Context, creds models.Credentials) (models.AuthResponse, error) {
	f.lastCreds = creds
	return f.resp, f.err
}

func (f *fakeAPI) Register(_ context.Context, reg models.Registration) (models.AuthResponse, error) {
	f.lastReg = reg
	return f.resp, f.err
}

func (f *fakeAPI) Verify(context.Context) (models.VerifyResponse, error) {
	return models.VerifyResponse{Valid: true}, f.err
}

func TestIsAuthenticated_TokenPresenceOnly(t *testing.T) {
	store := session.NewMemoryStore()
	sess := NewSession(store)

	require.False(t, sess.IsAuthenticated())

	require.NoError(t, store.Set(session.TokenKey, "definitely-not-a-jwt"))
	require.True(t, sess.IsAuthenticated())

	require.NoError(t, store.Set(session.TokenKey, ""))
	require.False(t, sess.IsAuthenticated())

	require.NoError(t, store.Set(session.TokenKey, "expired.but.present"))
	require.True(t, sess.IsAuthenticated())

	require.NoError(t, store.Remove(session.TokenKey))
	require.False(t, sess.IsAuthenticated())
}

func TestSession_UserCorruptIsNil(t *testing.T) {
	store := session.NewMemoryStore()
	sess := NewSession(store)

	require.Nil(t, sess.User())

	require.NoError(t, store.Set(session.UserKey, "{not json"))
	require.Nil(t, sess.User())

	require.NoError(t, store.Set(session.UserKey, `{"id":"9","name":"<b>eve</b>","password_hash":"x"}`))
	user := sess.User()
	require.NotNil(t, user)
	require.Equal(t, "<b>eve</b>", user.Name)
}

func TestLoginLogout_EndToEnd(t *testing.T) {
	store := session.NewMemoryStore()
	api := &fakeAPI{resp: models.AuthResponse{Token: "tok-1", User: models.User{ID: "u1", Email: "a@b.c"}}}
	svc := NewService(api, NewSession(store))

	user, err := svc.Login(context.Background(), "  a@b.c  ", " pass ")
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)
	require.Equal(t, "a@b.c", api.lastCreds.Email)
	require.Equal(t, " pass ", api.lastCreds.Password)

	token, err := store.Get(session.TokenKey)
	require.NoError(t, err)
	require.Equal(t, "tok-1", token)
	rawUser, err := store.Get(session.UserKey)
	require.NoError(t, err)
	var stored models.User
	require.NoError(t, json.Unmarshal([]byte(rawUser), &stored))
	require.Equal(t, "u1", stored.ID)
	require.True(t, svc.IsAuthenticated())

	require.NoError(t, svc.Logout())
	_, err = store.Get(session.TokenKey)
	require.ErrorIs(t, err, session.ErrNotFound)
	_, err = store.Get(session.UserKey)
	require.ErrorIs(t, err, session.ErrNotFound)
	require.False(t, svc.IsAuthenticated())
	require.Nil(t, svc.AuthUser())
}

func TestLogin_FailureStoresNothing(t *testing.T) {
	store := session.NewMemoryStore()
	svc := NewService(&fakeAPI{err: errors.New("Invalid credentials")}, NewSession(store))

	_, err := svc.Login(context.Background(), "a@b.c", "nope")
	require.EqualError(t, err, "Invalid credentials")
	require.False(t, svc.IsAuthenticated())
}

func TestRegister_NoChecks(t *testing.T) {
	store := session.NewMemoryStore()
	api := &fakeAPI{resp: models.AuthResponse{Token: "t", User: models.User{ID: "u2"}}}
	svc := NewService(api, NewSession(store))

	_, err := svc.Register(context.Background(), " not-an-email ", "1", "<script>alert(1)</script>")
	require.NoError(t, err)
	require.Equal(t, " not-an-email ", api.lastReg.Email)
	require.Equal(t, "1", api.lastReg.Password)
	require.Equal(t, "<script>alert(1)</script>", api.lastReg.Name)
	require.True(t, svc.IsAuthenticated())
}

func TestDecodeClaims_IgnoresSignatureAndExpiry(t *testing.T) {
	expired := time.Now().Add(-time.Hour)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: "u1",
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expired),
		},
	}).SignedString([]byte("server-secret-we-do-not-know"))
	require.NoError(t, err)

	claims, err := DecodeClaims(token)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserIdentifier())
	require.Equal(t, "admin", claims.Role)
	require.True(t, claims.Expired(time.Now()))

	_, err = DecodeClaims("garbage")
	require.Error(t, err)
}
