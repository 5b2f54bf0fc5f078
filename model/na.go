package model

import "time"

type NAReason string

const (
	NA_REASON_NONE           NAReason = ""
	NA_REASON_NO_MLB_DEBUT   NAReason = "no_mlb_debut"
	NA_REASON_ROOKIE_TWO_WAY NAReason = "rookie_two_way"
	NA_REASON_ROOKIE_PITCHER NAReason = "rookie_pitcher"
	NA_REASON_ROOKIE_HITTER  NAReason = "rookie_hitter"
)

const (
	// Rookie limits. Reaching either one exactly ends NA eligibility.
	NAMaxCareerAB = 130
	NAMaxCareerIP = 50.0
)

// ClassifyNA decides whether a player can be kept in an NA slot.
//
// A player without an MLB debut is always eligible. A player with career at
// bats who is listed as a pitcher, or who has also thrown innings, is treated
// as two-way and must be under both limits. Otherwise pitchers are judged on
// innings and everyone else on at bats.
func ClassifyNA(debut time.Time, careerAB int32, careerIP float64, primary Position) (bool, NAReason) {
	if debut.IsZero() {
		return true, NA_REASON_NO_MLB_DEBUT
	}

	hasHitting := careerAB > 0
	hasPitching := careerIP > 0
	pitcher := primary.IsPitcher()

	switch {
	case hasHitting && (pitcher || hasPitching):
		if careerAB < NAMaxCareerAB && careerIP < NAMaxCareerIP {
			return true, NA_REASON_ROOKIE_TWO_WAY
		}
	case pitcher:
		if careerIP < NAMaxCareerIP {
			return true, NA_REASON_ROOKIE_PITCHER
		}
	default:
		if careerAB < NAMaxCareerAB {
			return true, NA_REASON_ROOKIE_HITTER
		}
	}
	return false, NA_REASON_NONE
}

func (r NAReason) String() string {
	return string(r)
}
