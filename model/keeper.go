package model

import (
	"math"
	"strings"
)

type KeeperStatus string

const (
	STATUS_UNDECIDED   KeeperStatus = "undecided"
	STATUS_KEEPING     KeeperStatus = "keeping"
	STATUS_KEEPING_NA  KeeperStatus = "keeping-na"
	STATUS_NOT_KEEPING KeeperStatus = "not-keeping"
)

const (
	// MaxKeepers caps keeping plus keeping-na per team.
	MaxKeepers = 6
	// MaxNAKeepers caps keeping-na per team, and counts toward MaxKeepers.
	MaxNAKeepers = 4
)

var statusCycle = []KeeperStatus{
	STATUS_UNDECIDED,
	STATUS_KEEPING,
	STATUS_KEEPING_NA,
	STATUS_NOT_KEEPING,
}

// NextStatus returns the status after s in the cycle, wrapping from
// not-keeping back to undecided. An unrecognized status starts the cycle over.
func NextStatus(s KeeperStatus) KeeperStatus {
	for i, status := range statusCycle {
		if status == s {
			return statusCycle[(i+1)%len(statusCycle)]
		}
	}
	return STATUS_UNDECIDED
}

func ParseKeeperStatus(s string) (KeeperStatus, error) {
	status := KeeperStatus(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range statusCycle {
		if status == valid {
			return status, nil
		}
	}
	return "", NewValidationError("status", "unknown keeper status '%s'", s)
}

func (s KeeperStatus) String() string {
	return string(s)
}

// CountKeepers returns the total number of keepers (keeping and keeping-na)
// and how many of those are NA keepers.
func CountKeepers(roster []RosterPlayer) (total, na int) {
	for _, r := range roster {
		switch r.KeeperStatus {
		case STATUS_KEEPING:
			total++
		case STATUS_KEEPING_NA:
			total++
			na++
		}
	}
	return total, na
}

func CanKeep(roster []RosterPlayer) bool {
	total, _ := CountKeepers(roster)
	return total < MaxKeepers
}

func CanKeepNA(roster []RosterPlayer) bool {
	_, na := CountKeepers(roster)
	return na < MaxNAKeepers && CanKeep(roster)
}

func Progress(count int) int {
	return int(math.Round(float64(count) / MaxKeepers * 100))
}

func NAProgress(count int) int {
	return int(math.Round(float64(count) / MaxNAKeepers * 100))
}

// CheckKeeperChange decides whether the roster player targetID may move to
// status. The NA eligibility check comes before the quota check and the quota
// is evaluated over the rest of the roster, so re-selecting a status a player
// already holds never trips the limit.
func CheckKeeperChange(roster []RosterPlayer, targetID int32, eligible []Position, status KeeperStatus) error {
	if _, err := ParseKeeperStatus(string(status)); err != nil {
		return err
	}

	if status == STATUS_KEEPING_NA && !containsPosition(eligible, POS_NA) {
		return NewValidationError("status", "player is not NA eligible")
	}

	others := make([]RosterPlayer, 0, len(roster))
	for _, r := range roster {
		if r.ID != targetID {
			others = append(others, r)
		}
	}
	total, na := CountKeepers(others)

	switch status {
	case STATUS_KEEPING:
		if !CanKeep(others) {
			return &QuotaExceededError{Status: status, Limit: MaxKeepers, Current: total}
		}
	case STATUS_KEEPING_NA:
		if !CanKeep(others) {
			return &QuotaExceededError{Status: STATUS_KEEPING, Limit: MaxKeepers, Current: total}
		}
		if !CanKeepNA(others) {
			return &QuotaExceededError{Status: status, Limit: MaxNAKeepers, Current: na}
		}
	}
	return nil
}

// TeamKeepers is one team's roster with the numbers the keeper tracker shows.
type TeamKeepers struct {
	Manager    *Manager
	Roster     []RosterPlayer
	Keeping    int
	KeepingNA  int
	Progress   int
	NAProgress int
	CanKeep    bool
	CanKeepNA  bool
}

func NewTeamKeepers(m *Manager, roster []RosterPlayer) *TeamKeepers {
	total, na := CountKeepers(roster)
	return &TeamKeepers{
		Manager:    m,
		Roster:     roster,
		Keeping:    total,
		KeepingNA:  na,
		Progress:   Progress(total),
		NAProgress: NAProgress(na),
		CanKeep:    CanKeep(roster),
		CanKeepNA:  CanKeepNA(roster),
	}
}
