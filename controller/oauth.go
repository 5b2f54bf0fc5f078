package controller

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

type oauthState struct {
	expiry time.Time
}

var errYahooNotConfigured = errors.New("yahoo oauth client is not configured")

// OAuthStart returns the Yahoo URL the commissioner visits to authorize the
// app. Used when there is no refresh token yet or it has been revoked.
func (c *controller) OAuthStart() (string, error) {
	if c.yahooConfig == nil {
		return "", errYahooNotConfigured
	}

	state := generateRandomState()
	c.mu.Lock()
	c.oauthStates[state] = &oauthState{
		expiry: c.clock.Now().Add(5 * time.Minute),
	}
	c.mu.Unlock()

	return c.yahooConfig.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

// OAuthExchange trades the code from Yahoo's redirect for a token, which is
// used for Yahoo requests until the process restarts. The refresh token should
// be saved as YAHOO_REFRESH_TOKEN to keep it.
func (c *controller) OAuthExchange(ctx context.Context, state, code string) (*oauth2.Token, error) {
	if c.yahooConfig == nil {
		return nil, errYahooNotConfigured
	}

	c.mu.Lock()
	s, ok := c.oauthStates[state]
	delete(c.oauthStates, state)
	c.mu.Unlock()
	if !ok || c.clock.Now().After(s.expiry) {
		return nil, errors.New("state is not valid")
	}

	token, err := c.yahooConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("error exchanging code: %w", err)
	}

	c.mu.Lock()
	c.yahooToken = token
	c.mu.Unlock()
	log.Info().Msg("yahoo authorization complete")
	return token, nil
}

// yahooHTTPClient returns a client that adds the Yahoo access token to each
// request, refreshing it as needed.
func (c *controller) yahooHTTPClient(ctx context.Context) (*http.Client, error) {
	if c.yahoo == nil || c.yahooConfig == nil {
		return nil, errYahooNotConfigured
	}

	c.mu.Lock()
	t := c.yahooToken
	c.mu.Unlock()
	if t == nil {
		return nil, errors.New("yahoo is not authorized, set YAHOO_REFRESH_TOKEN or visit /admin/oauth/start")
	}

	tknSrc := c.yahooConfig.TokenSource(ctx, t)
	fresh, err := tknSrc.Token()
	if err != nil {
		return nil, fmt.Errorf("error refreshing yahoo token: %w", err)
	}
	if fresh.AccessToken != t.AccessToken {
		c.mu.Lock()
		c.yahooToken = fresh
		c.mu.Unlock()
	}

	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(fresh)), nil
}

func generateRandomState() string {
	return rand.Text()
}
