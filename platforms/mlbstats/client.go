package mlbstats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tunnelsnakes/sandlot/model"
	"github.com/tunnelsnakes/sandlot/platforms/mlbstats/internal"
)

const (
	mlbStatsURL = "https://statsapi.mlb.com"

	// Two-way players are listed with this position.
	twoWayPosition = "TWP"
)

var ErrPersonNotFound = errors.New("person not found")

type Client interface {
	// SearchPeople returns every MLB person whose name matches. A name that
	// matches nobody returns an empty slice, not an error.
	SearchPeople(ctx context.Context, name string) ([]model.MLBPerson, error)
	GetCareerStats(ctx context.Context, id int64) (*model.MLBPerson, *model.CareerStats, error)
}

type client struct {
	url        string
	httpClient *http.Client
}

func New(baseURL string) Client {
	if baseURL == "" {
		baseURL = mlbStatsURL
	}
	return &client{
		url: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func NewForTest(url string) Client {
	return &client{
		url:        url,
		httpClient: http.DefaultClient,
	}
}

func (c *client) SearchPeople(ctx context.Context, name string) ([]model.MLBPerson, error) {
	q := url.Values{}
	q.Set("names", name)
	q.Set("sportIds", "1")
	q.Set("hydrate", "currentTeam")

	var res internal.PeopleResponse
	if err := c.mlbStatsRequest(ctx, &res, "/api/v1/people/search?%s", q.Encode()); err != nil {
		return nil, err
	}

	results := make([]model.MLBPerson, 0, len(res.People))
	for _, p := range res.People {
		results = append(results, convertPerson(&p))
	}
	return results, nil
}

func (c *client) GetCareerStats(ctx context.Context, id int64) (*model.MLBPerson, *model.CareerStats, error) {
	q := url.Values{}
	q.Set("hydrate", "currentTeam,stats(group=[hitting,pitching],type=[career])")

	var res internal.PeopleResponse
	if err := c.mlbStatsRequest(ctx, &res, "/api/v1/people/%d?%s", id, q.Encode()); err != nil {
		return nil, nil, err
	}

	if len(res.People) == 0 {
		return nil, nil, fmt.Errorf("mlb id %d: %w", id, ErrPersonNotFound)
	}

	raw := &res.People[0]
	person := convertPerson(raw)
	stats := &model.CareerStats{}
	for _, s := range raw.Stats {
		if s.Type.DisplayName != "career" || len(s.Splits) == 0 {
			continue
		}
		stat := s.Splits[0].Stat
		switch s.Group.DisplayName {
		case "hitting":
			stats.AtBats = stat.AtBats
		case "pitching":
			ip, err := parseInnings(stat.InningsPitched)
			if err != nil {
				return nil, nil, fmt.Errorf("error parsing innings pitched for mlb id %d: %w", id, err)
			}
			stats.InningsPitched = ip
		}
	}

	return &person, stats, nil
}

func convertPerson(p *internal.Person) model.MLBPerson {
	person := model.MLBPerson{
		ID:              p.ID,
		FullName:        p.FullName,
		Team:            model.TEAM_FA,
		PrimaryPosition: model.POS_UNKNOWN,
	}

	if p.CurrentTeam != nil {
		person.Team = model.ParseTeam(p.CurrentTeam.Name)
		if person.Team == model.TEAM_FA && p.CurrentTeam.Abbreviation != "" {
			person.Team = model.ParseTeam(p.CurrentTeam.Abbreviation)
		}
	}

	if p.PrimaryPosition != nil {
		if p.PrimaryPosition.Abbreviation == twoWayPosition {
			// Counted as a pitcher so his at-bats don't make him a hitter only.
			person.PrimaryPosition = model.POS_P
		} else {
			person.PrimaryPosition = model.ParsePosition(p.PrimaryPosition.Abbreviation)
		}
	}

	if p.MLBDebutDate != "" {
		if d, err := time.Parse(time.DateOnly, p.MLBDebutDate); err == nil {
			person.DebutDate = d
		}
	}

	return person
}

func parseInnings(ip string) (float64, error) {
	if ip == "" {
		return 0, nil
	}
	return strconv.ParseFloat(ip, 64)
}

func (c *client) mlbStatsRequest(ctx context.Context, res any, path string, args ...any) error {
	p := fmt.Sprintf(path, args...)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s%s", c.url, p), nil)
	if err != nil {
		return fmt.Errorf("error creating mlb stats http request: %w", err)
	}
	req.Header.Add("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending mlb stats http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrPersonNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code from mlb stats: %d", resp.StatusCode)
	}

	err = json.NewDecoder(resp.Body).Decode(res)
	if err != nil {
		return fmt.Errorf("error parsing response from mlb stats: %w", err)
	}

	return nil
}
