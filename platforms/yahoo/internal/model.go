package internal

type FantasyContent struct {
	League *League `xml:"league"`
	Team   *Team   `xml:"team"`
}

type League struct {
	Key          string        `xml:"league_key"`
	Name         string        `xml:"name"`
	Season       string        `xml:"season"`
	DraftResults *DraftResults `xml:"draft_results"`
}

type DraftResults struct {
	Count   int           `xml:"count,attr"`
	Results []DraftResult `xml:"draft_result"`
}

type DraftResult struct {
	Pick      int    `xml:"pick"`
	Round     int    `xml:"round"`
	TeamKey   string `xml:"team_key"`
	PlayerKey string `xml:"player_key"`
}

type Team struct {
	Key     string   `xml:"team_key"`
	Name    string   `xml:"name"`
	Players *Players `xml:"players"`
	Roster  *Roster  `xml:"roster"`
}

type Roster struct {
	Players *Players `xml:"players"`
}

type Players struct {
	Players []Player `xml:"player"`
}

type Player struct {
	Key               string             `xml:"player_key"`
	ID                string             `xml:"player_id"`
	Name              *PlayerName        `xml:"name"`
	TeamAbbr          string             `xml:"editorial_team_abbr"`
	PrimaryPosition   string             `xml:"primary_position"`
	EligiblePositions *EligiblePositions `xml:"eligible_positions"`
}

type PlayerName struct {
	Full  string `xml:"full"`
	First string `xml:"first"`
	Last  string `xml:"last"`
}

type EligiblePositions struct {
	Positions []string `xml:"position"`
}
