package model

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type CostSource string

const (
	COST_SOURCE_NONE       CostSource = ""
	COST_SOURCE_DRAFT      CostSource = "draft"
	COST_SOURCE_FA         CostSource = "fa"
	COST_SOURCE_KEEPER_ECR CostSource = "keeper-ecr"
	// Costs verified by hand. Batch jobs never overwrite these.
	COST_SOURCE_MANUAL CostSource = "manual"
)

const (
	// MaxCostRound is the latest round a keeper can cost, and what players
	// without a ranking or draft history cost.
	MaxCostRound = 23
	TeamsPerRound = NumTeams
)

func ParseCostSource(s string) (CostSource, error) {
	switch CostSource(s) {
	case COST_SOURCE_NONE, COST_SOURCE_DRAFT, COST_SOURCE_FA, COST_SOURCE_KEEPER_ECR, COST_SOURCE_MANUAL:
		return CostSource(s), nil
	}
	return COST_SOURCE_NONE, NewValidationError("source", "unknown keeper cost source '%s'", s)
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	twoWayRe     = regexp.MustCompile(`(?i)(,\s*(batter|pitcher)|\s*\((batter|pitcher)\))$`)
	juniorRe     = regexp.MustCompile(`(?i),?\s+jr\.?$`)
)

// NormalizeKeeperName produces the form used to match roster players to last
// season's keeper records: trimmed, single spaced, a canonical " Jr." suffix
// and without the ", Batter" / " (Pitcher)" variants used for two-way players.
func NormalizeKeeperName(name string) string {
	name = whitespaceRe.ReplaceAllString(strings.TrimSpace(name), " ")
	name = strings.TrimSpace(twoWayRe.ReplaceAllString(name, ""))
	if juniorRe.MatchString(name) {
		name = juniorRe.ReplaceAllString(name, "") + " Jr."
	}
	return name
}

// FoldName is a looser form used for matching names from outside sources: no
// accents, lower case, and only letters and digits separated by single spaces.
func FoldName(name string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}

	folded = strings.ToLower(folded)
	folded = strings.NewReplacer(".", "", "'", "", "’", "").Replace(folded)
	folded = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, folded)
	return strings.Join(strings.Fields(folded), " ")
}

// Ordinal returns 1st, 2nd, 3rd, 4th, 11th, 12th, 13th, 21st and so on.
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// KeeperCostLabel is the label for a player about to be kept for the
// yearsKept-th time.
func KeeperCostLabel(yearsKept int) string {
	return fmt.Sprintf("%s yr keeper — ECR", Ordinal(yearsKept))
}

// ECRRound converts a FantasyPros ECR into a keeper round, ceil(ecr/12) capped
// at MaxCostRound. Unranked players (ecr <= 0) cost MaxCostRound.
func ECRRound(ecr int32) int {
	if ecr <= 0 {
		return MaxCostRound
	}
	round := int(math.Ceil(float64(ecr) / TeamsPerRound))
	return max(1, min(round, MaxCostRound))
}

// KeeperCost is what a returning keeper will cost next season.
func KeeperCost(record *KeeperRecord, ecr int32) (label string, round int) {
	return KeeperCostLabel(record.YearsKept + 1), ECRRound(ecr)
}

func DraftedCostLabel(round int) string {
	return fmt.Sprintf("Drafted Rd %d", round)
}

func FACostLabel() string {
	return fmt.Sprintf("FA — Rd %d", MaxCostRound)
}
