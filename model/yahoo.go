package model

import "strings"

// YahooPlayer is a player as listed on a Yahoo team roster.
type YahooPlayer struct {
	Key               string
	FullName          string
	Team              *MLBTeam
	PrimaryPosition   Position
	EligiblePositions []Position
}

// DraftResult is one pick of a completed Yahoo draft.
type DraftResult struct {
	Round     int
	Pick      int
	TeamKey   string
	PlayerKey string
}

// YahooPlayerID returns the numeric part of a player key, "458.p.11370"
// becomes "11370". The prefix changes every season but the ID doesn't, so
// this is how players are matched across seasons.
func YahooPlayerID(key string) string {
	idx := strings.LastIndex(key, ".p.")
	if idx < 0 {
		return ""
	}
	return key[idx+len(".p."):]
}
