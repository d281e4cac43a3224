package models

import "time"

type TwitchOauthValidateTokenResponse struct {
	ClientId  string   `json:"client_id"`
	Login     string   `json:"login"`
	Scopes    []string `json:"scopes"`
	UserId    string   `json:"user_id"`
	ExpiresIn uint64   `json:"expires_in"`
}

// TwitchOauthGetTokenResponse is an app access token issued by the client credentials grant.
type TwitchOauthGetTokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	Expiry      time.Time `json:"expiry"`
}

type StoredToken struct {
	ID        uint64    `db:"id"`
	Token     string    `db:"token"`
	IsExpired bool      `db:"is_expired"`
	CreatedAt time.Time `db:"created_at"`
}
