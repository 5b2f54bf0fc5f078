package model

import (
	"fmt"
	"strings"
)

type MLBTeam struct {
	name   string
	loc    string
	mascot string
	short  string   // Alternate abbreviation used by some sources, e.g. CHW for CWS
	nick   []string // Any other nicknames that are used for the team, e.g. Yanks for NYY
}

func (t *MLBTeam) String() string {
	return t.name
}

func (t *MLBTeam) Friendly() string {
	if t.loc == "" {
		return t.name
	}
	return fmt.Sprintf("%s %s", t.loc, t.mascot)
}

func (t *MLBTeam) Equals(o *MLBTeam) bool {
	if o == nil {
		return false
	}

	if t == o {
		return true
	}

	return t.name == o.name &&
		t.loc == o.loc &&
		t.mascot == o.mascot &&
		t.short == o.short &&
		arrayEquals(t.nick, o.nick)
}

var (
	TEAM_FA *MLBTeam = &MLBTeam{name: "FA", nick: []string{"FA*", "MLB"}}

	// American League
	TEAM_BAL *MLBTeam = &MLBTeam{name: "BAL", loc: "Baltimore", mascot: "Orioles", nick: []string{"O's"}}
	TEAM_BOS *MLBTeam = &MLBTeam{name: "BOS", loc: "Boston", mascot: "Red Sox", nick: []string{"Sox"}}
	TEAM_NYY *MLBTeam = &MLBTeam{name: "NYY", loc: "New York", mascot: "Yankees", nick: []string{"Yanks"}}
	TEAM_TB  *MLBTeam = &MLBTeam{name: "TB", loc: "Tampa Bay", mascot: "Rays", short: "TBR"}
	TEAM_TOR *MLBTeam = &MLBTeam{name: "TOR", loc: "Toronto", mascot: "Blue Jays", nick: []string{"Jays"}}
	TEAM_CWS *MLBTeam = &MLBTeam{name: "CWS", loc: "Chicago", mascot: "White Sox", short: "CHW"}
	TEAM_CLE *MLBTeam = &MLBTeam{name: "CLE", loc: "Cleveland", mascot: "Guardians", nick: []string{"Guards"}}
	TEAM_DET *MLBTeam = &MLBTeam{name: "DET", loc: "Detroit", mascot: "Tigers"}
	TEAM_KC  *MLBTeam = &MLBTeam{name: "KC", loc: "Kansas City", mascot: "Royals", short: "KCR"}
	TEAM_MIN *MLBTeam = &MLBTeam{name: "MIN", loc: "Minnesota", mascot: "Twins"}
	TEAM_ATH *MLBTeam = &MLBTeam{name: "ATH", loc: "Athletics", mascot: "", short: "OAK", nick: []string{"A's", "Oakland"}}
	TEAM_HOU *MLBTeam = &MLBTeam{name: "HOU", loc: "Houston", mascot: "Astros", nick: []string{"Stros"}}
	TEAM_LAA *MLBTeam = &MLBTeam{name: "LAA", loc: "Los Angeles", mascot: "Angels", short: "ANA"}
	TEAM_SEA *MLBTeam = &MLBTeam{name: "SEA", loc: "Seattle", mascot: "Mariners", nick: []string{"M's"}}
	TEAM_TEX *MLBTeam = &MLBTeam{name: "TEX", loc: "Texas", mascot: "Rangers"}

	// National League
	TEAM_ATL *MLBTeam = &MLBTeam{name: "ATL", loc: "Atlanta", mascot: "Braves"}
	TEAM_MIA *MLBTeam = &MLBTeam{name: "MIA", loc: "Miami", mascot: "Marlins", nick: []string{"Fish"}}
	TEAM_NYM *MLBTeam = &MLBTeam{name: "NYM", loc: "New York", mascot: "Mets"}
	TEAM_PHI *MLBTeam = &MLBTeam{name: "PHI", loc: "Philadelphia", mascot: "Phillies", nick: []string{"Phils"}}
	TEAM_WSH *MLBTeam = &MLBTeam{name: "WSH", loc: "Washington", mascot: "Nationals", short: "WAS", nick: []string{"Nats"}}
	TEAM_CHC *MLBTeam = &MLBTeam{name: "CHC", loc: "Chicago", mascot: "Cubs"}
	TEAM_CIN *MLBTeam = &MLBTeam{name: "CIN", loc: "Cincinnati", mascot: "Reds"}
	TEAM_MIL *MLBTeam = &MLBTeam{name: "MIL", loc: "Milwaukee", mascot: "Brewers", nick: []string{"Crew"}}
	TEAM_PIT *MLBTeam = &MLBTeam{name: "PIT", loc: "Pittsburgh", mascot: "Pirates", nick: []string{"Bucs"}}
	TEAM_STL *MLBTeam = &MLBTeam{name: "STL", loc: "St. Louis", mascot: "Cardinals", nick: []string{"Cards"}}
	TEAM_ARI *MLBTeam = &MLBTeam{name: "ARI", loc: "Arizona", mascot: "Diamondbacks", short: "AZ", nick: []string{"D-backs", "Dbacks"}}
	TEAM_COL *MLBTeam = &MLBTeam{name: "COL", loc: "Colorado", mascot: "Rockies"}
	TEAM_LAD *MLBTeam = &MLBTeam{name: "LAD", loc: "Los Angeles", mascot: "Dodgers"}
	TEAM_SD  *MLBTeam = &MLBTeam{name: "SD", loc: "San Diego", mascot: "Padres", short: "SDP", nick: []string{"Friars"}}
	TEAM_SF  *MLBTeam = &MLBTeam{name: "SF", loc: "San Francisco", mascot: "Giants", short: "SFG"}

	teamMap map[string]*MLBTeam = buildTeamMap()
)

// ParseTeam accepts abbreviations, mascots, unique cities, nicknames and full
// names like "New York Mets". Anything unrecognized is TEAM_FA.
func ParseTeam(name string) *MLBTeam {
	t := teamMap[strings.ToLower(strings.TrimSpace(name))]
	if t == nil {
		return TEAM_FA
	}
	return t
}

func buildTeamMap() map[string]*MLBTeam {
	teams := []*MLBTeam{
		// AL
		TEAM_BAL, TEAM_BOS, TEAM_NYY, TEAM_TB, TEAM_TOR, TEAM_CWS, TEAM_CLE, TEAM_DET,
		TEAM_KC, TEAM_MIN, TEAM_ATH, TEAM_HOU, TEAM_LAA, TEAM_SEA, TEAM_TEX,
		// NL
		TEAM_ATL, TEAM_MIA, TEAM_NYM, TEAM_PHI, TEAM_WSH, TEAM_CHC, TEAM_CIN, TEAM_MIL,
		TEAM_PIT, TEAM_STL, TEAM_ARI, TEAM_COL, TEAM_LAD, TEAM_SD, TEAM_SF,
		// Other
		TEAM_FA,
	}

	// New York, Chicago and Los Angeles each have two clubs so the city alone
	// can't identify a team.
	locCount := make(map[string]int)
	for _, t := range teams {
		if t.loc != "" {
			locCount[strings.ToLower(t.loc)]++
		}
	}

	teamMap := make(map[string]*MLBTeam)
	for _, t := range teams {
		teamMap[strings.ToLower(t.name)] = t

		if t.loc != "" && locCount[strings.ToLower(t.loc)] == 1 {
			teamMap[strings.ToLower(t.loc)] = t
		}

		if t.mascot != "" {
			teamMap[strings.ToLower(t.mascot)] = t
			teamMap[strings.ToLower(t.Friendly())] = t
		}

		if t.short != "" {
			teamMap[strings.ToLower(t.short)] = t
		}

		for _, n := range t.nick {
			teamMap[strings.ToLower(n)] = t
		}
	}
	return teamMap
}

func arrayEquals(a, b []string) bool {
	if a == nil && b == nil {
		return true
	}

	if (a == nil && b != nil) || (a != nil && b == nil) {
		return false
	}

	if len(a) != len(b) {
		return false
	}

	for i, v := range a {
		if v != b[i] {
			return false
		}
	}

	return true
}
