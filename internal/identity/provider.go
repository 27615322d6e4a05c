// Package identity wraps the hosted identity provider: session-token
// verification and user-profile lookup. The service itself stores no
// credentials and keeps no local session state.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ripple/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotAuthenticated is returned when the request carries no session, or a
// session the provider does not accept.
var ErrNotAuthenticated = errors.New("user is not authenticated")

// Credentials is the token material extracted from an inbound request.
type Credentials struct {
	// Authorization is the raw Authorization header value, if any.
	Authorization string
	// SessionCookie is the provider's session cookie value, if any.
	SessionCookie string
}

// Provider validates request credentials and resolves user profiles.
type Provider interface {
	// AuthenticateRequest verifies the session token and returns the
	// principal id, or ErrNotAuthenticated.
	AuthenticateRequest(ctx context.Context, creds Credentials) (string, error)
	// GetUser fetches the full profile for a previously resolved principal.
	GetUser(ctx context.Context, principalID string) (*models.User, error)
}

// Client is the HTTP implementation of Provider. Session tokens are HMAC
// JWTs signed with the provider secret; profiles come from the provider's
// REST API authorized by the same secret.
type Client struct {
	secretKey string
	apiURL    string
	http      *http.Client
}

// NewClient constructs a provider client. A client is cheap; the observed
// deployment builds one per request.
func NewClient(secretKey, apiURL string) *Client {
	return &Client{
		secretKey: secretKey,
		apiURL:    strings.TrimRight(apiURL, "/"),
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

// AuthenticateRequest resolves the session token from the Authorization
// header or the session cookie and verifies it.
func (c *Client) AuthenticateRequest(_ context.Context, creds Credentials) (string, error) {
	tokenString := ""
	if parts := strings.Split(creds.Authorization, " "); len(parts) == 2 && parts[0] == "Bearer" {
		tokenString = parts[1]
	}
	if tokenString == "" {
		tokenString = creds.SessionCookie
	}
	if tokenString == "" {
		return "", ErrNotAuthenticated
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(c.secretKey), nil
	})
	if err != nil || !token.Valid {
		return "", ErrNotAuthenticated
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrNotAuthenticated
	}

	return sub, nil
}

// GetUser fetches the profile for principalID from the provider's REST API.
func (c *Client) GetUser(ctx context.Context, principalID string) (*models.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/users/%s", c.apiURL, principalID), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("identity provider returned status %d for user %s", resp.StatusCode, principalID)
	}

	var payload struct {
		ID        string `json:"id"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		ImageURL  string `json:"image_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode identity provider response: %w", err)
	}

	return &models.User{
		ID:       payload.ID,
		FullName: strings.TrimSpace(payload.FirstName + " " + payload.LastName),
		ImageURL: payload.ImageURL,
	}, nil
}
