package model

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

type Role string

const (
	ROLE_OWNER        Role = "owner"
	ROLE_COMMISSIONER Role = "commissioner"
)

type Manager struct {
	DisplayName   string `yaml:"displayName" json:"displayName"`
	TeamName      string `yaml:"teamName" json:"teamName"`
	TeamSlug      string `yaml:"teamSlug" json:"teamSlug"`
	Role          Role   `yaml:"role" json:"role"`
	DraftPosition int    `yaml:"draftPosition" json:"draftPosition"`
	ColorKey      string `yaml:"colorKey" json:"colorKey"`
	YahooTeamKey  string `yaml:"yahooTeamKey" json:"yahooTeamKey"`
	Email         string `yaml:"email" json:"-"`
}

func (m *Manager) IsCommissioner() bool {
	return m.Role == ROLE_COMMISSIONER
}

//go:embed data/league.yaml
var defaultLeague []byte

type leagueFile struct {
	League   string    `yaml:"league"`
	Season   int       `yaml:"season"`
	Managers []Manager `yaml:"managers"`
}

// Directory is the read-only registry of the league's managers. It is loaded
// once at startup and shared by everything that needs to know who is who.
type Directory struct {
	league  string
	season  int
	byOrder []*Manager
	bySlug  map[string]*Manager
	byEmail map[string]*Manager
	byKey   map[string]*Manager
	byName  map[string]*Manager
}

func DefaultDirectory() (*Directory, error) {
	return LoadDirectory(defaultLeague)
}

// LoadDirectory parses a league file and makes sure it describes exactly
// NumTeams managers with unique names, slugs, emails and team keys, draft positions
// 1 through NumTeams and a single commissioner.
func LoadDirectory(data []byte) (*Directory, error) {
	var lf leagueFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("error parsing league file: %w", err)
	}

	if len(lf.Managers) != NumTeams {
		return nil, NewValidationError("managers", "expected %d managers, found %d", NumTeams, len(lf.Managers))
	}

	d := &Directory{
		league:  lf.League,
		season:  lf.Season,
		byOrder: make([]*Manager, NumTeams),
		bySlug:  make(map[string]*Manager),
		byEmail: make(map[string]*Manager),
		byKey:   make(map[string]*Manager),
		byName:  make(map[string]*Manager),
	}

	commissioners := 0
	for i := range lf.Managers {
		m := &lf.Managers[i]
		m.Email = normalizeEmail(m.Email)

		if m.DisplayName == "" || m.TeamSlug == "" || m.Email == "" || m.YahooTeamKey == "" {
			return nil, NewValidationError("managers", "manager %d is missing a name, slug, email or team key", i+1)
		}
		if !strings.Contains(m.YahooTeamKey, ".t.") {
			return nil, NewValidationError("yahooTeamKey", "'%s' is not a team key", m.YahooTeamKey)
		}
		if m.DraftPosition < 1 || m.DraftPosition > NumTeams {
			return nil, NewValidationError("draftPosition", "%s has draft position %d", m.DisplayName, m.DraftPosition)
		}
		if d.byOrder[m.DraftPosition-1] != nil {
			return nil, NewValidationError("draftPosition", "draft position %d is used twice", m.DraftPosition)
		}
		if _, found := d.byName[normalizeName(m.DisplayName)]; found {
			return nil, NewValidationError("displayName", "name '%s' is used twice", m.DisplayName)
		}
		if _, found := d.bySlug[m.TeamSlug]; found {
			return nil, NewValidationError("teamSlug", "slug '%s' is used twice", m.TeamSlug)
		}
		if _, found := d.byEmail[m.Email]; found {
			return nil, NewValidationError("email", "email '%s' is used twice", m.Email)
		}
		if _, found := d.byKey[m.YahooTeamKey]; found {
			return nil, NewValidationError("yahooTeamKey", "team key '%s' is used twice", m.YahooTeamKey)
		}

		switch m.Role {
		case ROLE_COMMISSIONER:
			commissioners++
		case ROLE_OWNER:
		default:
			return nil, NewValidationError("role", "%s has unknown role '%s'", m.DisplayName, m.Role)
		}

		d.byOrder[m.DraftPosition-1] = m
		d.bySlug[m.TeamSlug] = m
		d.byEmail[m.Email] = m
		d.byKey[m.YahooTeamKey] = m
		d.byName[normalizeName(m.DisplayName)] = m
	}

	if commissioners != 1 {
		return nil, NewValidationError("role", "expected one commissioner, found %d", commissioners)
	}

	return d, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (d *Directory) League() string {
	return d.league
}

func (d *Directory) Season() int {
	return d.season
}

func (d *Directory) BySlug(slug string) (*Manager, bool) {
	m, found := d.bySlug[slug]
	return m, found
}

func (d *Directory) ByEmail(email string) (*Manager, bool) {
	m, found := d.byEmail[normalizeEmail(email)]
	return m, found
}

func (d *Directory) ByTeamKey(key string) (*Manager, bool) {
	m, found := d.byKey[key]
	return m, found
}

func (d *Directory) ByDraftPosition(pos int) (*Manager, bool) {
	if pos < 1 || pos > len(d.byOrder) {
		return nil, false
	}
	return d.byOrder[pos-1], true
}

// ByDisplayName matches names case-insensitively.
func (d *Directory) ByDisplayName(name string) (*Manager, bool) {
	m, found := d.byName[normalizeName(name)]
	return m, found
}

// All returns the managers in draft order.
func (d *Directory) All() []*Manager {
	return slices.Clone(d.byOrder)
}

// DraftOrder returns display names in draft order, the first entry picks first.
func (d *Directory) DraftOrder() []string {
	order := make([]string, 0, len(d.byOrder))
	for _, m := range d.byOrder {
		order = append(order, m.DisplayName)
	}
	return order
}

func (d *Directory) Commissioner() *Manager {
	for _, m := range d.byOrder {
		if m.IsCommissioner() {
			return m
		}
	}
	return nil
}
