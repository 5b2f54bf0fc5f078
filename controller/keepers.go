package controller

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/tunnelsnakes/sandlot/model"
)

func (c *controller) GetTeamKeepers(ctx context.Context, slug string) (*model.TeamKeepers, error) {
	m, ok := c.directory.BySlug(slug)
	if !ok {
		return nil, fmt.Errorf("team '%s': %w", slug, model.ErrUnknownManager)
	}

	roster, err := c.db.ListRoster(ctx, m.YahooTeamKey)
	if err != nil {
		return nil, err
	}
	return model.NewTeamKeepers(m, roster), nil
}

func (c *controller) UpdateKeeperStatus(ctx context.Context, callerEmail string, rosterPlayerID int32, status model.KeeperStatus) (*model.RosterPlayer, error) {
	m, r, err := c.authorizeRosterChange(ctx, callerEmail, rosterPlayerID)
	if err != nil {
		return nil, err
	}
	return c.setKeeperStatus(ctx, m, r, status)
}

func (c *controller) CycleKeeperStatus(ctx context.Context, callerEmail string, rosterPlayerID int32) (*model.RosterPlayer, error) {
	m, r, err := c.authorizeRosterChange(ctx, callerEmail, rosterPlayerID)
	if err != nil {
		return nil, err
	}
	return c.setKeeperStatus(ctx, m, r, model.NextStatus(r.KeeperStatus))
}

// authorizeRosterChange makes sure the caller manages the team the roster
// player is on.
func (c *controller) authorizeRosterChange(ctx context.Context, callerEmail string, rosterPlayerID int32) (*model.Manager, *model.RosterPlayer, error) {
	m, ok := c.directory.ByEmail(callerEmail)
	if !ok {
		return nil, nil, model.ErrUnknownManager
	}

	r, err := c.db.GetRosterPlayer(ctx, rosterPlayerID)
	if err != nil {
		return nil, nil, err
	}

	if r.YahooTeamKey != m.YahooTeamKey {
		return nil, nil, fmt.Errorf("%s can't change roster player %d: %w", m.DisplayName, rosterPlayerID, model.ErrNotOwner)
	}
	return m, r, nil
}

func (c *controller) setKeeperStatus(ctx context.Context, m *model.Manager, r *model.RosterPlayer, status model.KeeperStatus) (*model.RosterPlayer, error) {
	updated, err := c.db.UpdateKeeperStatus(ctx, r.ID, m.YahooTeamKey, status)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("manager", m.TeamSlug).
		Int32("roster_player", r.ID).
		Str("from", string(r.KeeperStatus)).
		Str("to", string(status)).
		Msg("keeper status changed")
	return updated, nil
}
