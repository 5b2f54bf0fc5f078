package model

import (
	"fmt"
	"time"
)

// Player is the league-wide reference record for an MLB player. Zero values
// mean unknown: an ECR of 0 means FantasyPros does not rank the player, a zero
// MLBDebutDate means the player has not debuted (or it isn't known yet).
type Player struct {
	ID                int32
	YahooPlayerKey    string
	MLBID             int64
	FullName          string
	Team              *MLBTeam
	PrimaryPosition   Position
	EligiblePositions []Position
	ECR               int32
	CareerAB          int32
	CareerIP          float64
	MLBDebutDate      time.Time
	IsNAEligible      bool
	NAReason          NAReason
	Created           time.Time
	Updated           time.Time
}

// HasNATag reports whether the player can currently be stashed in an NA slot.
func (p *Player) HasNATag() bool {
	return containsPosition(p.EligiblePositions, POS_NA)
}

// SetNATag adds or removes the synthetic NA position. It returns true when the
// eligible positions changed.
func (p *Player) SetNATag(eligible bool) bool {
	has := p.HasNATag()
	switch {
	case eligible && !has:
		p.EligiblePositions = append(p.EligiblePositions, POS_NA)
		return true
	case !eligible && has:
		result := make([]Position, 0, len(p.EligiblePositions))
		for _, pos := range p.EligiblePositions {
			if pos != POS_NA {
				result = append(result, pos)
			}
		}
		p.EligiblePositions = result
		return true
	}
	return false
}

func (p *Player) FormattedDebutDate() string {
	if p.MLBDebutDate.IsZero() {
		return "none"
	}
	return p.MLBDebutDate.Format(time.DateOnly)
}

func (p *Player) FormattedECR() string {
	if p.ECR <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d", p.ECR)
}

func (p *Player) FormattedUpdatedTime() string {
	if p.Updated.IsZero() {
		return "unknown"
	}
	return p.Updated.Format(time.DateTime)
}

// RosterPlayer is a player's assignment to one of the league's teams for the
// current season. A KeeperCostRound of 0 means no cost has been computed yet.
type RosterPlayer struct {
	ID               int32
	PlayerID         int32
	YahooTeamKey     string
	KeeperStatus     KeeperStatus
	KeeperCostRound  int
	KeeperCostLabel  string
	KeeperCostSource CostSource
	Updated          time.Time

	// Player is only populated by queries that join the players table.
	Player *Player
}

func (r *RosterPlayer) IsKeeper() bool {
	return r.KeeperStatus == STATUS_KEEPING || r.KeeperStatus == STATUS_KEEPING_NA
}

// KeeperRecord is what happened to a kept player in a previous season. It is
// historical data and never changes once imported.
type KeeperRecord struct {
	ID           int32
	Season       int
	PlayerName   string
	OriginalTeam string
	YearsKept    int
	Round        int
}

func (k *KeeperRecord) String() string {
	return fmt.Sprintf("%s (%s, kept %d, rd %d)", k.PlayerName, k.OriginalTeam, k.YearsKept, k.Round)
}
