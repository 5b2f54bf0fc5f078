package controller

import (
	"context"
	"regexp"
	"strings"

	"github.com/tunnelsnakes/sandlot/model"
)

func (c *controller) GetPlayer(ctx context.Context, id int32) (*model.Player, error) {
	return c.db.GetPlayer(ctx, id)
}

func (c *controller) Search(ctx context.Context, query string) ([]model.Player, error) {
	q, pos := getPositionFromQuery(query)
	q, team := getTeamFromQuery(q)

	if pos == model.POS_UNKNOWN && team == nil && q == "" {
		return nil, model.NewValidationError("q", "not a valid query: '%s'", query)
	}
	return c.db.SearchPlayers(ctx, q, pos, team)
}

var positionRegex = regexp.MustCompile(`(?i)(pos|position)\s*:\s*(?P<pos>\w+)`)

// Parse out the position from the query, returning the same query without the position.
// So if the query is "Witt pos:SS" this will return "Witt" and model.POS_SS.
// If the input query does not have a `pos:` argument then the function will return the
// input string and model.POS_UNKNOWN.
// Allowed tags for the position are `pos` and `position` case insensitive.
func getPositionFromQuery(q string) (string, model.Position) {
	pos := model.POS_UNKNOWN
	m := positionRegex.FindStringSubmatch(q)
	if m != nil {
		p := m[positionRegex.SubexpIndex("pos")]
		pos = model.ParsePosition(p)
		q = strings.Replace(q, m[0], "", 1) // Remove the position match from the query
		q = strings.TrimSpace(q)            // Remove any remaining whitespace
	}

	return q, pos
}

var teamRegex = regexp.MustCompile(`(?i)team\s*:\s*(?P<team>\w+)`)

// Parse out the team from the query, returning the same query without the team.
// So if the query is "Raleigh team:SEA" this will return "Raleigh" and model.TEAM_SEA.
// If the input query does not have a `team:` argument then the function will return the
// input string and nil.
func getTeamFromQuery(q string) (string, *model.MLBTeam) {
	var team *model.MLBTeam
	m := teamRegex.FindStringSubmatch(q)
	if m != nil {
		t := m[teamRegex.SubexpIndex("team")]
		team = model.ParseTeam(t)
		if team == model.TEAM_FA {
			team = nil
		}
		q = strings.Replace(q, m[0], "", 1) // Remove the team match from the query
		q = strings.TrimSpace(q)            // Remove any remaining whitespace
	}

	return q, team
}
