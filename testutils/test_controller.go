package testutils

import (
	"fmt"
	"net/http"
	"net/http/httptest"

	"golang.org/x/oauth2"
)

// TestController holds the fake outside services a controller talks to.
type TestController struct {
	YahooConfig *oauth2.Config
	// Good until the fake OAuth server says otherwise, which it never does.
	YahooRefreshToken string
	fakeYahoo         *FakeYahooServer
	fakeMLB           *FakeMLBServer
	fakeOAuth         *httptest.Server
}

func (c *TestController) Close() {
	c.fakeYahoo.Close()
	c.fakeMLB.Close()
	c.fakeOAuth.Close()
}

func (c *TestController) YahooURL() string {
	return c.fakeYahoo.URL()
}

func (c *TestController) MLBStatsURL() string {
	return c.fakeMLB.URL()
}

func NewTestController() *TestController {
	fakeOAuthServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"access_token": "access_token",
			"refresh_token": "refresh_token",
			"token_type": "bearer",
			"expires_in": 3600
		}`))
	}))

	fakeYahooConfig := &oauth2.Config{
		ClientID:     "fakeClientID",
		ClientSecret: "fakeClientSecret",
		Endpoint: oauth2.Endpoint{
			AuthURL:  fmt.Sprintf("%s/auth", fakeOAuthServer.URL),
			TokenURL: fmt.Sprintf("%s/token", fakeOAuthServer.URL),
		},
		RedirectURL: fmt.Sprintf("%s/redirect", fakeOAuthServer.URL),
	}
	return &TestController{
		YahooConfig:       fakeYahooConfig,
		YahooRefreshToken: "refresh_token",
		fakeYahoo:         NewFakeYahooServer(),
		fakeMLB:           NewFakeMLBServer(),
		fakeOAuth:         fakeOAuthServer,
	}
}
