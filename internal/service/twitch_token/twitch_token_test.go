package twitch_token

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twitch_discord_bot/internal/models"
)

type fakeOAuthClient struct {
	tokens      []string
	getErr      error
	validateErr error
	getCalls    int
	validated   []string
}

func (f *fakeOAuthClient) TwitchOAuthGetToken(ctx context.Context) (*models.TwitchOauthGetTokenResponse, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	token := f.tokens[0]
	f.tokens = f.tokens[1:]
	return &models.TwitchOauthGetTokenResponse{AccessToken: token}, nil
}

func (f *fakeOAuthClient) TwitchOAuthValidateToken(ctx context.Context, token string) (*models.TwitchOauthValidateTokenResponse, error) {
	f.validated = append(f.validated, token)
	if f.validateErr != nil {
		return nil, f.validateErr
	}
	return &models.TwitchOauthValidateTokenResponse{}, nil
}

type replaceCall struct {
	old *string
	new string
}

type fakeRepo struct {
	stored   *string
	replaced []replaceCall
}

func (f *fakeRepo) GetNotExpiredToken(ctx context.Context) (*string, error) {
	return f.stored, nil
}

func (f *fakeRepo) ReplaceToken(ctx context.Context, oldToken *string, newToken string) error {
	f.replaced = append(f.replaced, replaceCall{old: oldToken, new: newToken})
	f.stored = &newToken
	return nil
}

func TestSyncWithoutRepository(t *testing.T) {
	oauth := &fakeOAuthClient{tokens: []string{"t1"}}
	tts := NewTwitchTokenService(nil, oauth)

	require.NoError(t, tts.Sync(context.Background()))
	assert.Equal(t, "t1", tts.GetCurrentToken(context.Background()))
	assert.Equal(t, 1, oauth.getCalls)
}

func TestSyncReusesValidStoredToken(t *testing.T) {
	stored := "stored"
	repo := &fakeRepo{stored: &stored}
	oauth := &fakeOAuthClient{}
	tts := NewTwitchTokenService(repo, oauth)

	require.NoError(t, tts.Sync(context.Background()))
	assert.Equal(t, "stored", tts.GetCurrentToken(context.Background()))
	assert.Equal(t, []string{"stored"}, oauth.validated)
	assert.Zero(t, oauth.getCalls)
	assert.Empty(t, repo.replaced)
}

func TestSyncReplacesInvalidStoredToken(t *testing.T) {
	stored := "stale"
	repo := &fakeRepo{stored: &stored}
	oauth := &fakeOAuthClient{tokens: []string{"fresh"}, validateErr: errors.Wrap(models.ErrTokenInvalid, "invalid access token")}
	tts := NewTwitchTokenService(repo, oauth)

	require.NoError(t, tts.Sync(context.Background()))
	assert.Equal(t, "fresh", tts.GetCurrentToken(context.Background()))
	require.Len(t, repo.replaced, 1)
	require.NotNil(t, repo.replaced[0].old)
	assert.Equal(t, "stale", *repo.replaced[0].old)
	assert.Equal(t, "fresh", repo.replaced[0].new)
}

func TestRefreshKeepsTokenOnFailure(t *testing.T) {
	oauth := &fakeOAuthClient{tokens: []string{"t1"}}
	tts := NewTwitchTokenService(nil, oauth)
	ctx := context.Background()

	require.NoError(t, tts.Sync(ctx))

	oauth.getErr = &models.AuthError{StatusCode: 400, Err: errors.New("invalid client")}
	err := tts.Refresh(ctx)
	require.Error(t, err)

	var authErr *models.AuthError
	assert.True(t, errors.As(err, &authErr))
	assert.Equal(t, "t1", tts.GetCurrentToken(ctx))
}

func TestRefreshRetiresCurrentToken(t *testing.T) {
	repo := &fakeRepo{}
	oauth := &fakeOAuthClient{tokens: []string{"t1", "t2"}}
	tts := NewTwitchTokenService(repo, oauth)
	ctx := context.Background()

	require.NoError(t, tts.Sync(ctx))
	require.NoError(t, tts.Refresh(ctx))

	assert.Equal(t, "t2", tts.GetCurrentToken(ctx))
	require.Len(t, repo.replaced, 2)
	assert.Nil(t, repo.replaced[0].old)
	require.NotNil(t, repo.replaced[1].old)
	assert.Equal(t, "t1", *repo.replaced[1].old)
}
