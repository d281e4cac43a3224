package twitch_client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"twitch_discord_bot/internal/models"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

const (
	twitchApiSchemeHost string = "https://api.twitch.tv"

	// batches of one FetchLive in flight at once
	fetchConcurrency = 4
)

type TokenService interface {
	GetCurrentToken(ctx context.Context) string
	Sync(ctx context.Context) error
	Refresh(ctx context.Context) error
}

type TwitchClient struct {
	clientID      string
	apiSchemeHost string
	httpClient    *http.Client

	twitchTokenService TokenService

	authMu        sync.Mutex
	authenticated bool
}

type Option func(*TwitchClient)

func WithAPIHost(host string) Option {
	return func(twc *TwitchClient) {
		twc.apiSchemeHost = host
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(twc *TwitchClient) {
		twc.httpClient = httpClient
	}
}

func NewTwitchClient(clientID string, twitchTokenService TokenService, opts ...Option) *TwitchClient {
	twc := &TwitchClient{
		clientID:      clientID,
		apiSchemeHost: twitchApiSchemeHost,
		httpClient: &http.Client{
			Timeout: time.Second * 5,
		},
		twitchTokenService: twitchTokenService,
	}

	for _, opt := range opts {
		opt(twc)
	}

	return twc
}

// Authenticate obtains the app token on first use and forces a new one afterwards.
func (twc *TwitchClient) Authenticate(ctx context.Context) error {
	twc.authMu.Lock()
	defer twc.authMu.Unlock()

	if !twc.authenticated {
		if err := twc.twitchTokenService.Sync(ctx); err != nil {
			return errors.Wrap(err, "Sync")
		}
		twc.authenticated = true
		return nil
	}

	return errors.Wrap(twc.twitchTokenService.Refresh(ctx), "Refresh")
}

func (twc *TwitchClient) get(ctx context.Context, path string, query url.Values, data interface{}) error {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, twc.apiSchemeHost+path, nil)
	if err != nil {
		return err
	}

	req.URL.RawQuery = query.Encode()

	req.Header.Add("Client-Id", twc.clientID)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", twc.twitchTokenService.GetCurrentToken(ctx)))

	resp, err := twc.httpClient.Do(req)
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	readedResp, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusUnauthorized {

			var unauthorizedResp models.GetUserUnauthorized
			_ = jsoniter.Unmarshal(readedResp, &unauthorizedResp)

			return errors.Wrap(models.ErrUnauthorized, unauthorizedResp.Message)
		}

		return errors.Errorf("get %s failed with status code: %d", path, resp.StatusCode)
	}

	return errors.Wrap(jsoniter.Unmarshal(readedResp, data), "decode response")
}

func chunk(items []string, size int) [][]string {
	var batches [][]string
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[start:end])
	}
	return batches
}
