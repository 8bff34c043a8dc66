package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	token, err := svc.Issue("user-1", "dana")
	require.NoError(t, err)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Sub)
	require.Equal(t, "dana", claims.Username)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := NewService("secret-a", time.Hour).Issue("user-1", "dana")
	require.NoError(t, err)

	_, err = NewService("secret-b", time.Hour).Parse(token)
	require.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	svc := NewService("test-secret", -time.Minute)
	token, err := svc.Issue("user-1", "dana")
	require.NoError(t, err)

	_, err = svc.Parse(token)
	require.Error(t, err)
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	require.True(t, CheckPassword(hash, "s3cret"))
	require.False(t, CheckPassword(hash, "wrong"))
}

func TestMiddleware(t *testing.T) {
	svc := NewService("test-secret", time.Hour)
	var gotSub string
	handler := svc.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSub = ClaimsFromContext(r.Context()).Sub
	}))

	// No token.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Garbage token.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid token.
	token, err := svc.Issue("user-1", "dana")
	require.NoError(t, err)
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "user-1", gotSub)
}
