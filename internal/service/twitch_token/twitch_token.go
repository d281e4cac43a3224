package twitch_token

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"twitch_discord_bot/internal/models"
)

type OAuthClient interface {
	TwitchOAuthGetToken(ctx context.Context) (*models.TwitchOauthGetTokenResponse, error)
	TwitchOAuthValidateToken(ctx context.Context, token string) (*models.TwitchOauthValidateTokenResponse, error)
}

// TokenRepository persists app access tokens between restarts.
type TokenRepository interface {
	GetNotExpiredToken(ctx context.Context) (*string, error)
	ReplaceToken(ctx context.Context, oldToken *string, newToken string) error
}

type TwitchTokenService struct {
	repo              TokenRepository
	twitchOauthClient OAuthClient

	mu    sync.RWMutex
	token string
}

// NewTwitchTokenService creates the service; repo may be nil to keep the token in memory only.
func NewTwitchTokenService(repo TokenRepository, twitchOauthClient OAuthClient) *TwitchTokenService {
	return &TwitchTokenService{
		repo:              repo,
		twitchOauthClient: twitchOauthClient,
	}
}

func (tts *TwitchTokenService) GetCurrentToken(ctx context.Context) string {
	tts.mu.RLock()
	defer tts.mu.RUnlock()

	return tts.token
}

// Sync authenticates, reusing the newest stored token while Twitch still accepts it.
func (tts *TwitchTokenService) Sync(ctx context.Context) error {

	if tts.repo == nil {
		return tts.updateToken(ctx, nil)
	}

	token, err := tts.repo.GetNotExpiredToken(ctx)
	if err != nil {
		logrus.Warnf("cannot read stored twitch token: %v", err)
		return tts.updateToken(ctx, nil)
	}

	if token == nil {
		return tts.updateToken(ctx, nil)
	}

	_, err = tts.twitchOauthClient.TwitchOAuthValidateToken(ctx, *token)
	if err != nil {
		if !errors.Is(err, models.ErrTokenInvalid) {
			logrus.Warnf("cannot validate stored twitch token: %v", err)
		}

		return tts.updateToken(ctx, token)
	}

	tts.setToken(*token)
	logrus.Info("reusing stored twitch app token")

	return nil
}

// Refresh requests a new token and retires the current one.
// The current token stays in use when the request fails.
func (tts *TwitchTokenService) Refresh(ctx context.Context) error {
	var old *string
	if current := tts.GetCurrentToken(ctx); current != "" {
		old = &current
	}

	return tts.updateToken(ctx, old)
}

func (tts *TwitchTokenService) updateToken(ctx context.Context, old *string) error {
	tokenInfo, err := tts.twitchOauthClient.TwitchOAuthGetToken(ctx)
	if err != nil {
		return errors.Wrap(err, "TwitchOAuthGetToken")
	}

	if tokenInfo == nil {
		return &models.AuthError{Err: errors.New("empty client resp")}
	}

	tts.setToken(tokenInfo.AccessToken)

	if tts.repo != nil {
		err = tts.repo.ReplaceToken(ctx, old, tokenInfo.AccessToken)
		if err != nil {
			logrus.Errorf("cannot store twitch token: %v", err)
		}
	}

	return nil
}

func (tts *TwitchTokenService) setToken(token string) {
	tts.mu.Lock()
	defer tts.mu.Unlock()

	tts.token = token
}
