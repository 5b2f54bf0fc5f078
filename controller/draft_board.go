package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/tunnelsnakes/sandlot/db"
	"github.com/tunnelsnakes/sandlot/model"
)

// GetDraftBoard returns the stored board, creating it from the directory's
// draft order the first time.
func (c *controller) GetDraftBoard(ctx context.Context) (*model.Board, error) {
	b, err := c.db.GetDraftBoard(ctx)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, db.ErrDraftBoardNotFound) {
		return nil, err
	}

	b, err = model.NewBoard(c.directory.DraftOrder())
	if err != nil {
		return nil, fmt.Errorf("error creating draft board: %w", err)
	}
	if err := c.db.SaveDraftBoard(ctx, b); err != nil {
		return nil, err
	}
	log.Info().Strs("order", b.Order).Msg("draft board created")
	return b, nil
}

func (c *controller) RecordTrade(ctx context.Context, callerEmail string, t *model.Trade) (*model.Board, error) {
	m, ok := c.directory.ByEmail(callerEmail)
	if !ok {
		return nil, model.ErrUnknownManager
	}
	if !m.IsCommissioner() {
		return nil, model.ErrNotCommissioner
	}

	b, err := c.GetDraftBoard(ctx)
	if err != nil {
		return nil, err
	}

	next, err := b.ApplyTrade(t)
	if err != nil {
		return nil, err
	}

	if err := c.db.SaveDraftTrade(ctx, next, t, m.DisplayName); err != nil {
		return nil, err
	}

	log.Info().
		Str("recorded_by", m.TeamSlug).
		Str("description", t.Description).
		Int("moves", len(t.Moves)).
		Msg("draft pick trade recorded")
	return next, nil
}
