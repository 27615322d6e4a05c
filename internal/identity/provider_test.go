package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func signSession(t *testing.T, secret, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestClient_AuthenticateRequest(t *testing.T) {
	client := NewClient(testSecret, "https://identity.example.com/v1")
	ctx := context.Background()

	t.Run("Bearer token resolves the principal", func(t *testing.T) {
		creds := Credentials{Authorization: "Bearer " + signSession(t, testSecret, "user_123")}
		principal, err := client.AuthenticateRequest(ctx, creds)
		require.NoError(t, err)
		assert.Equal(t, "user_123", principal)
	})

	t.Run("Session cookie is accepted when no header is present", func(t *testing.T) {
		creds := Credentials{SessionCookie: signSession(t, testSecret, "user_456")}
		principal, err := client.AuthenticateRequest(ctx, creds)
		require.NoError(t, err)
		assert.Equal(t, "user_456", principal)
	})

	t.Run("No credentials", func(t *testing.T) {
		_, err := client.AuthenticateRequest(ctx, Credentials{})
		assert.ErrorIs(t, err, ErrNotAuthenticated)
	})

	t.Run("Token signed with the wrong secret", func(t *testing.T) {
		creds := Credentials{Authorization: "Bearer " + signSession(t, "other-secret", "user_123")}
		_, err := client.AuthenticateRequest(ctx, creds)
		assert.ErrorIs(t, err, ErrNotAuthenticated)
	})

	t.Run("Expired token", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "user_123",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = client.AuthenticateRequest(ctx, Credentials{Authorization: "Bearer " + signed})
		assert.ErrorIs(t, err, ErrNotAuthenticated)
	})

	t.Run("Token without a subject", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = client.AuthenticateRequest(ctx, Credentials{Authorization: "Bearer " + signed})
		assert.ErrorIs(t, err, ErrNotAuthenticated)
	})
}

func TestClient_GetUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Profile fields are composed from the provider payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/users/user_123", r.URL.Path)
			assert.Equal(t, "Bearer "+testSecret, r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"user_123","first_name":"John","last_name":"Doe","image_url":"https://example.com/profile.jpg"}`))
		}))
		defer srv.Close()

		client := NewClient(testSecret, srv.URL)
		user, err := client.GetUser(ctx, "user_123")
		require.NoError(t, err)
		assert.Equal(t, "user_123", user.ID)
		assert.Equal(t, "John Doe", user.FullName)
		assert.Equal(t, "https://example.com/profile.jpg", user.ImageURL)
	})

	t.Run("Missing last name leaves no trailing space", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"id":"user_789","first_name":"Plato","image_url":""}`))
		}))
		defer srv.Close()

		client := NewClient(testSecret, srv.URL)
		user, err := client.GetUser(ctx, "user_789")
		require.NoError(t, err)
		assert.Equal(t, "Plato", user.FullName)
	})

	t.Run("Provider error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		client := NewClient(testSecret, srv.URL)
		_, err := client.GetUser(ctx, "user_missing")
		assert.Error(t, err)
	})
}
