package twitch_oauth_client

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"twitch_discord_bot/internal/models"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// TwitchOAuthGetToken exchanges the client credentials for an app access token.
// Every failure is an *models.AuthError.
func (twc *TwitchOauthClient) TwitchOAuthGetToken(ctx context.Context) (data *models.TwitchOauthGetTokenResponse, err error) {

	if twc.clientID == "" || twc.clientSecret == "" {
		return nil, &models.AuthError{Err: errors.New("missing client id or secret")}
	}

	conf := clientcredentials.Config{
		ClientID:     twc.clientID,
		ClientSecret: twc.clientSecret,
		TokenURL:     twc.idSchemeHost + "/oauth2/token",
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, twc.httpClient)

	token, err := conf.Token(ctx)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			return nil, &models.AuthError{StatusCode: retrieveErr.Response.StatusCode, Err: err}
		}

		return nil, &models.AuthError{Err: err}
	}

	if token.AccessToken == "" {
		return nil, &models.AuthError{Err: errors.New("empty access_token in twitch response")}
	}

	data = &models.TwitchOauthGetTokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		Expiry:      token.Expiry,
	}

	return
}

func (twc *TwitchOauthClient) TwitchOAuthValidateToken(ctx context.Context, token string) (data *models.TwitchOauthValidateTokenResponse, err error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, twc.idSchemeHost+"/oauth2/validate", nil)
	if err != nil {
		return nil, err
	}

	req.Header.Add("Authorization", fmt.Sprintf("OAuth %s", token))

	resp, err := twc.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "validate token request")
	}

	defer resp.Body.Close()

	readedResp, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusUnauthorized {

			var unauthorizedResp models.ValidateTokenInvalid
			_ = jsoniter.Unmarshal(readedResp, &unauthorizedResp)

			return nil, errors.Wrap(models.ErrTokenInvalid, unauthorizedResp.Message)
		}

		return nil, errors.Errorf("validate token failed with status code: %d", resp.StatusCode)
	}

	var validateTokenInfo models.TwitchOauthValidateTokenResponse
	err = jsoniter.Unmarshal(readedResp, &validateTokenInfo)
	if err != nil {
		return nil, errors.Wrap(err, "decode validate response")
	}

	data = &validateTokenInfo

	return
}
