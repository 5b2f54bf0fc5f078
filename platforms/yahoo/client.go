package yahoo

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tunnelsnakes/sandlot/model"
	"github.com/tunnelsnakes/sandlot/platforms/yahoo/internal"
)

const YahooURL = "https://fantasysports.yahooapis.com"

type Client struct {
	url string
}

func New() *Client {
	return &Client{url: YahooURL}
}

func NewForTest(url string) *Client {
	return &Client{url: url}
}

// GetDraftResults returns every pick of a league's draft in pick order. The
// httpClient must add the user's OAuth token to requests.
func (c *Client) GetDraftResults(ctx context.Context, httpClient *http.Client, leagueKey string) ([]model.DraftResult, error) {
	content, err := c.yahooRequest(ctx, httpClient, "/fantasy/v2/league/%s/draft_results", leagueKey)
	if err != nil {
		return nil, err
	}

	if content == nil ||
		content.League == nil ||
		content.League.DraftResults == nil {
		return nil, errors.New("league has no draft results")
	}

	results := make([]model.DraftResult, 0, len(content.League.DraftResults.Results))
	for _, r := range content.League.DraftResults.Results {
		// Picks of a draft that hasn't happened yet have no player.
		if r.PlayerKey == "" {
			continue
		}
		results = append(results, model.DraftResult{
			Round:     r.Round,
			Pick:      r.Pick,
			TeamKey:   r.TeamKey,
			PlayerKey: r.PlayerKey,
		})
	}

	return results, nil
}

func (c *Client) GetRoster(ctx context.Context, httpClient *http.Client, teamKey string) ([]model.YahooPlayer, error) {
	content, err := c.yahooRequest(ctx, httpClient, "/fantasy/v2/team/%s/roster/players", teamKey)
	if err != nil {
		return nil, err
	}

	if content == nil ||
		content.Team == nil ||
		content.Team.Roster == nil {
		return nil, errors.New("team roster not found")
	}

	results := make([]model.YahooPlayer, 0, 30)
	if content.Team.Roster.Players == nil {
		return results, nil
	}
	for _, p := range content.Team.Roster.Players.Players {
		y := model.YahooPlayer{
			Key:             p.Key,
			Team:            model.ParseTeam(p.TeamAbbr),
			PrimaryPosition: model.ParsePosition(p.PrimaryPosition),
		}
		if p.Name != nil {
			y.FullName = p.Name.Full
			if y.FullName == "" {
				y.FullName = strings.TrimSpace(p.Name.First + " " + p.Name.Last)
			}
		}
		if p.EligiblePositions != nil {
			y.EligiblePositions = model.ParsePositionList(strings.Join(p.EligiblePositions.Positions, ","))
		}
		results = append(results, y)
	}

	return results, nil
}

func (c *Client) yahooRequest(ctx context.Context, httpClient *http.Client, path string, args ...any) (*internal.FantasyContent, error) {
	p := fmt.Sprintf(path, args...)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s%s", c.url, p), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating yahoo http request: %w", err)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending yahoo http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code from yahoo: %d", resp.StatusCode)
	}

	var res internal.FantasyContent
	err = xml.NewDecoder(resp.Body).Decode(&res)
	if err != nil {
		return nil, fmt.Errorf("error parsing response from yahoo: %w", err)
	}

	return &res, nil
}
