package model

import (
	"fmt"
	"slices"
)

const (
	NumTeams     = 12
	NumRounds    = 27
	FirstNARound = 24
	NumPicks     = NumTeams * NumRounds
)

// NARounds are reserved for minor league (NA) players. Pick numbering in these
// rounds is the same as any other round.
func NARounds() []int {
	rounds := make([]int, 0, NumRounds-FirstNARound+1)
	for r := FirstNARound; r <= NumRounds; r++ {
		rounds = append(rounds, r)
	}
	return rounds
}

func IsNARound(round int) bool {
	return round >= FirstNARound && round <= NumRounds
}

func validatePick(round, slot int) error {
	if round < 1 || round > NumRounds {
		return NewValidationError("round", "round %d is not between 1 and %d", round, NumRounds)
	}
	if slot < 1 || slot > NumTeams {
		return NewValidationError("slot", "slot %d is not between 1 and %d", slot, NumTeams)
	}
	return nil
}

// PickInRound returns when the manager drafting from slot picks in round.
// Odd rounds go 1 to 12, even rounds snake back from 12 to 1.
func PickInRound(round, slot int) (int, error) {
	if err := validatePick(round, slot); err != nil {
		return 0, err
	}
	if round%2 == 1 {
		return slot, nil
	}
	return NumTeams + 1 - slot, nil
}

func OverallPick(round, slot int) (int, error) {
	pick, err := PickInRound(round, slot)
	if err != nil {
		return 0, err
	}
	return (round-1)*NumTeams + pick, nil
}

type DraftPick struct {
	Round         int      `json:"round"`
	Slot          int      `json:"slot"`
	OriginalOwner string   `json:"originalOwner"`
	CurrentOwner  string   `json:"currentOwner"`
	Traded        bool     `json:"traded"`
	Path          []string `json:"path"`
}

func (p *DraftPick) PickInRound() int {
	pick, _ := PickInRound(p.Round, p.Slot)
	return pick
}

func (p *DraftPick) OverallPick() int {
	pick, _ := OverallPick(p.Round, p.Slot)
	return pick
}

func (p *DraftPick) IsNARound() bool {
	return IsNARound(p.Round)
}

// Board holds every pick of the draft. Picks are indexed by round then slot.
type Board struct {
	Order []string    `json:"order"`
	Picks []DraftPick `json:"picks"`
}

// NewBoard creates an untraded board where the manager at order[i] owns slot
// i+1 in every round.
func NewBoard(order []string) (*Board, error) {
	if len(order) != NumTeams {
		return nil, NewValidationError("order", "draft order needs %d managers, got %d", NumTeams, len(order))
	}
	seen := make(map[string]bool)
	for _, o := range order {
		if o == "" || seen[o] {
			return nil, NewValidationError("order", "draft order has a blank or repeated manager '%s'", o)
		}
		seen[o] = true
	}

	b := &Board{
		Order: slices.Clone(order),
		Picks: make([]DraftPick, 0, NumPicks),
	}
	for r := 1; r <= NumRounds; r++ {
		for s := 1; s <= NumTeams; s++ {
			owner := order[s-1]
			b.Picks = append(b.Picks, DraftPick{
				Round:         r,
				Slot:          s,
				OriginalOwner: owner,
				CurrentOwner:  owner,
				Path:          []string{owner},
			})
		}
	}
	return b, nil
}

func (b *Board) Clone() *Board {
	c := &Board{
		Order: slices.Clone(b.Order),
		Picks: make([]DraftPick, len(b.Picks)),
	}
	for i, p := range b.Picks {
		p.Path = slices.Clone(p.Path)
		c.Picks[i] = p
	}
	return c
}

func (b *Board) Pick(round, slot int) (*DraftPick, error) {
	if err := validatePick(round, slot); err != nil {
		return nil, err
	}
	idx := (round-1)*NumTeams + (slot - 1)
	if idx >= len(b.Picks) {
		return nil, fmt.Errorf("board is missing round %d slot %d", round, slot)
	}
	return &b.Picks[idx], nil
}

// Round returns the picks of a round in slot order.
func (b *Board) Round(round int) []DraftPick {
	if round < 1 || round > NumRounds || len(b.Picks) < round*NumTeams {
		return nil
	}
	return b.Picks[(round-1)*NumTeams : round*NumTeams]
}

// RoundInPickOrder returns the picks of a round in the order they are made.
func (b *Board) RoundInPickOrder(round int) []DraftPick {
	picks := slices.Clone(b.Round(round))
	if round%2 == 0 {
		slices.Reverse(picks)
	}
	return picks
}

func (b *Board) isManager(name string) bool {
	return slices.Contains(b.Order, name)
}

func (b *Board) TransferPick(round, slot int, from, to string) error {
	pick, err := b.Pick(round, slot)
	if err != nil {
		return err
	}
	if !b.isManager(to) {
		return NewValidationError("to", "'%s' is not in the draft order", to)
	}
	if from == to {
		return NewValidationError("to", "'%s' can't trade a pick to themselves", from)
	}
	if pick.CurrentOwner != from {
		return NewValidationError("from", "round %d slot %d belongs to %s, not %s", round, slot, pick.CurrentOwner, from)
	}

	pick.CurrentOwner = to
	pick.Path = append(pick.Path, to)
	pick.Traded = pick.CurrentOwner != pick.OriginalOwner
	return nil
}

// WorstPick finds the latest pick owner has in round: the highest slot in odd
// rounds and the lowest slot in even rounds.
func (b *Board) WorstPick(round int, owner string) (int, error) {
	if round < 1 || round > NumRounds {
		return 0, NewValidationError("round", "round %d is not between 1 and %d", round, NumRounds)
	}
	slots := make([]int, 0, 2)
	for _, p := range b.Round(round) {
		if p.CurrentOwner == owner {
			slots = append(slots, p.Slot)
		}
	}
	if len(slots) == 0 {
		return 0, NewValidationError("from", "%s has no pick in round %d", owner, round)
	}
	if round%2 == 1 {
		return slices.Max(slots), nil
	}
	return slices.Min(slots), nil
}

// TransferWorstPick is used when a trade names a round but not a specific
// pick. It returns the slot that moved.
func (b *Board) TransferWorstPick(round int, from, to string) (int, error) {
	slot, err := b.WorstPick(round, from)
	if err != nil {
		return 0, err
	}
	return slot, b.TransferPick(round, slot, from, to)
}

// TransferSpecificPick moves the pick in round that originally belonged to
// originalOwner. It returns the slot that moved.
func (b *Board) TransferSpecificPick(round int, originalOwner, from, to string) (int, error) {
	if round < 1 || round > NumRounds {
		return 0, NewValidationError("round", "round %d is not between 1 and %d", round, NumRounds)
	}
	slot := slices.Index(b.Order, originalOwner) + 1
	if slot == 0 {
		return 0, NewValidationError("originalOwner", "'%s' is not in the draft order", originalOwner)
	}
	return slot, b.TransferPick(round, slot, from, to)
}

// PickMove is one pick changing hands as part of a trade. When Slot and
// OriginalOwner are both empty the worst pick rule picks the slot.
type PickMove struct {
	Round         int    `json:"round"`
	Slot          int    `json:"slot,omitempty"`
	OriginalOwner string `json:"originalOwner,omitempty"`
	From          string `json:"from"`
	To            string `json:"to"`
}

type Trade struct {
	Description string     `json:"description"`
	Moves       []PickMove `json:"moves"`
}

// ApplyTrade returns a new board with every move of the trade applied. The
// receiver is never modified, so a failing move leaves no partial trade.
func (b *Board) ApplyTrade(t *Trade) (*Board, error) {
	if len(t.Moves) == 0 {
		return nil, NewValidationError("moves", "trade has no picks")
	}

	next := b.Clone()
	for i, m := range t.Moves {
		var err error
		switch {
		case m.Slot != 0:
			err = next.TransferPick(m.Round, m.Slot, m.From, m.To)
		case m.OriginalOwner != "":
			_, err = next.TransferSpecificPick(m.Round, m.OriginalOwner, m.From, m.To)
		default:
			_, err = next.TransferWorstPick(m.Round, m.From, m.To)
		}
		if err != nil {
			return nil, fmt.Errorf("move %d of trade: %w", i+1, err)
		}
	}
	return next, nil
}

// OwnerCounts returns how many picks each manager currently holds.
func (b *Board) OwnerCounts() map[string]int {
	counts := make(map[string]int, len(b.Order))
	for _, o := range b.Order {
		counts[o] = 0
	}
	for _, p := range b.Picks {
		counts[p.CurrentOwner]++
	}
	return counts
}

// Validate checks the board's structure: every round has one pick per slot,
// original owners follow the draft order and every path runs from the
// original owner to the current owner.
func (b *Board) Validate() error {
	if len(b.Picks) != NumPicks {
		return NewValidationError("picks", "board has %d picks, expected %d", len(b.Picks), NumPicks)
	}
	if len(b.Order) != NumTeams {
		return NewValidationError("order", "draft order needs %d managers, got %d", NumTeams, len(b.Order))
	}

	for r := 1; r <= NumRounds; r++ {
		seen := make(map[int]bool, NumTeams)
		for _, p := range b.Round(r) {
			if p.Round != r {
				return NewValidationError("picks", "round %d contains a pick from round %d", r, p.Round)
			}
			if p.Slot < 1 || p.Slot > NumTeams || seen[p.Slot] {
				return NewValidationError("picks", "round %d has an invalid or repeated slot %d", r, p.Slot)
			}
			seen[p.Slot] = true
			if err := p.validate(b.Order); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *DraftPick) validate(order []string) error {
	where := fmt.Sprintf("round %d slot %d", p.Round, p.Slot)
	if p.OriginalOwner != order[p.Slot-1] {
		return NewValidationError("picks", "%s should originally belong to %s, not %s", where, order[p.Slot-1], p.OriginalOwner)
	}
	if len(p.Path) == 0 || p.Path[0] != p.OriginalOwner || p.Path[len(p.Path)-1] != p.CurrentOwner {
		return NewValidationError("picks", "%s has a path that doesn't run from %s to %s", where, p.OriginalOwner, p.CurrentOwner)
	}
	if p.Traded != (p.CurrentOwner != p.OriginalOwner) {
		return NewValidationError("picks", "%s has the wrong traded flag", where)
	}
	if p.Traded && len(p.Path) < 2 {
		return NewValidationError("picks", "%s is traded but has no trade history", where)
	}
	return nil
}

// PickDiff is a pick whose current owner differs between two boards.
type PickDiff struct {
	Round  int    `json:"round"`
	Slot   int    `json:"slot"`
	Ours   string `json:"ours"`
	Theirs string `json:"theirs"`
}

// Diff compares current owners with another board, in round and slot order.
func (b *Board) Diff(other *Board) []PickDiff {
	diffs := make([]PickDiff, 0)
	for r := 1; r <= NumRounds; r++ {
		for s := 1; s <= NumTeams; s++ {
			ours, err1 := b.Pick(r, s)
			theirs, err2 := other.Pick(r, s)
			var o, t string
			if err1 == nil {
				o = ours.CurrentOwner
			}
			if err2 == nil {
				t = theirs.CurrentOwner
			}
			if o != t {
				diffs = append(diffs, PickDiff{Round: r, Slot: s, Ours: o, Theirs: t})
			}
		}
	}
	return diffs
}
