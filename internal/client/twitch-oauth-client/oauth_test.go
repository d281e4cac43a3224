package twitch_oauth_client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"twitch_discord_bot/internal/models"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwitchOAuthGetToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth2/token", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "cid", r.PostForm.Get("client_id"))
		assert.Equal(t, "secret", r.PostForm.Get("client_secret"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"app-token","expires_in":3600,"token_type":"bearer"}`))
	}))
	defer server.Close()

	client := NewTwitchOauthClient("cid", "secret", WithIDHost(server.URL))

	token, err := client.TwitchOAuthGetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "app-token", token.AccessToken)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.Expiry, time.Minute)
}

func TestTwitchOAuthGetTokenRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":400,"message":"invalid client secret"}`))
	}))
	defer server.Close()

	client := NewTwitchOauthClient("cid", "wrong", WithIDHost(server.URL))

	_, err := client.TwitchOAuthGetToken(context.Background())
	require.Error(t, err)

	var authErr *models.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, http.StatusBadRequest, authErr.StatusCode)
}

func TestTwitchOAuthGetTokenUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	host := server.URL
	server.Close()

	client := NewTwitchOauthClient("cid", "secret", WithIDHost(host))

	_, err := client.TwitchOAuthGetToken(context.Background())

	var authErr *models.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Zero(t, authErr.StatusCode)
}

func TestTwitchOAuthGetTokenMissingCredentials(t *testing.T) {
	client := NewTwitchOauthClient("", "")

	_, err := client.TwitchOAuthGetToken(context.Background())

	var authErr *models.AuthError
	assert.True(t, errors.As(err, &authErr))
}

func TestTwitchOAuthValidateToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("Authorization") {
		case "OAuth good":
			_, _ = w.Write([]byte(`{"client_id":"cid","expires_in":5000}`))
		case "OAuth bad":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"status":401,"message":"invalid access token"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	client := NewTwitchOauthClient("cid", "secret", WithIDHost(server.URL))
	ctx := context.Background()

	info, err := client.TwitchOAuthValidateToken(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, "cid", info.ClientId)
	assert.EqualValues(t, 5000, info.ExpiresIn)

	_, err = client.TwitchOAuthValidateToken(ctx, "bad")
	assert.True(t, errors.Is(err, models.ErrTokenInvalid))

	_, err = client.TwitchOAuthValidateToken(ctx, "other")
	require.Error(t, err)
	assert.False(t, errors.Is(err, models.ErrTokenInvalid))
}
