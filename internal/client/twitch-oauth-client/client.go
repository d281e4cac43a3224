package twitch_oauth_client

import (
	"net/http"
	"time"
)

const twitchIDSchemeHost string = "https://id.twitch.tv"

type TwitchOauthClient struct {
	clientID     string
	clientSecret string
	idSchemeHost string
	httpClient   *http.Client
}

type Option func(*TwitchOauthClient)

// WithIDHost points the client at another identity host, e.g. a test server.
func WithIDHost(host string) Option {
	return func(c *TwitchOauthClient) {
		c.idSchemeHost = host
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *TwitchOauthClient) {
		c.httpClient = httpClient
	}
}

func NewTwitchOauthClient(clientID, clientSecret string, opts ...Option) *TwitchOauthClient {
	client := &TwitchOauthClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		idSchemeHost: twitchIDSchemeHost,
		httpClient: &http.Client{
			Timeout: time.Second * 5,
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}
