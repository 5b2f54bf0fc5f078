package model

import (
	"strings"
)

type Position string

const (
	POS_UNKNOWN Position = "UNK"
	POS_C       Position = "C"
	POS_1B      Position = "1B"
	POS_2B      Position = "2B"
	POS_3B      Position = "3B"
	POS_SS      Position = "SS"
	POS_OF      Position = "OF"
	POS_DH      Position = "DH"
	POS_UTIL    Position = "Util"
	POS_SP      Position = "SP"
	POS_RP      Position = "RP"
	POS_P       Position = "P"

	// POS_NA is not a real position. It is added to a player's eligible positions
	// when he can be stashed in an NA (minor league) slot.
	POS_NA Position = "NA"
)

func ParsePosition(pos string) Position {
	pos = strings.ToLower(strings.TrimSpace(pos))
	switch pos {
	case "c":
		return POS_C
	case "1b":
		return POS_1B
	case "2b":
		return POS_2B
	case "3b":
		return POS_3B
	case "ss":
		return POS_SS
	case "of", "lf", "cf", "rf":
		return POS_OF
	case "dh":
		return POS_DH
	case "util":
		return POS_UTIL
	case "sp":
		return POS_SP
	case "rp":
		return POS_RP
	case "p":
		return POS_P
	case "na":
		return POS_NA
	default:
		return POS_UNKNOWN
	}
}

func (p Position) IsPitcher() bool {
	return p == POS_SP || p == POS_RP || p == POS_P
}

// ParsePositionList parses a comma separated list like "SP,RP,NA" into positions,
// dropping anything unknown and any duplicates.
func ParsePositionList(s string) []Position {
	result := make([]Position, 0, 4)
	for _, part := range strings.Split(s, ",") {
		p := ParsePosition(part)
		if p == POS_UNKNOWN || containsPosition(result, p) {
			continue
		}
		result = append(result, p)
	}
	return result
}

func FormatPositionList(positions []Position) string {
	parts := make([]string, 0, len(positions))
	for _, p := range positions {
		parts = append(parts, string(p))
	}
	return strings.Join(parts, ",")
}

func containsPosition(positions []Position, p Position) bool {
	for _, a := range positions {
		if a == p {
			return true
		}
	}
	return false
}
