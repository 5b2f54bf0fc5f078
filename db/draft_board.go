package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/tunnelsnakes/sandlot/model"
)

func (db *postgresDB) GetDraftBoard(ctx context.Context) (*model.Board, error) {
	const query = `SELECT round, slot, original_owner, current_owner, traded, path
		FROM draft_picks ORDER BY round, slot`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying draft picks: %w", err)
	}
	defer rows.Close()

	b := &model.Board{Picks: make([]model.DraftPick, 0, model.NumPicks)}
	for rows.Next() {
		var p model.DraftPick
		if err := rows.Scan(&p.Round, &p.Slot, &p.OriginalOwner, &p.CurrentOwner, &p.Traded, &p.Path); err != nil {
			return nil, fmt.Errorf("error scanning draft pick: %w", err)
		}
		b.Picks = append(b.Picks, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(b.Picks) == 0 {
		return nil, ErrDraftBoardNotFound
	}

	// The first round has every slot's original owner, which is the draft order.
	for _, p := range b.Round(1) {
		b.Order = append(b.Order, p.OriginalOwner)
	}

	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("stored draft board is invalid: %w", err)
	}
	return b, nil
}

func (db *postgresDB) SaveDraftBoard(ctx context.Context, b *model.Board) error {
	if err := b.Validate(); err != nil {
		return err
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := db.saveBoard(ctx, tx, b); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error commiting draft board: %w", err)
	}
	return nil
}

func (db *postgresDB) SaveDraftTrade(ctx context.Context, b *model.Board, t *model.Trade, recordedBy string) error {
	const insertTrade = `INSERT INTO draft_trades (description, recorded_by, moves)
		VALUES (@description, @recordedBy, @moves)`

	if err := b.Validate(); err != nil {
		return err
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	args := pgx.NamedArgs{
		"description": t.Description,
		"recordedBy":  recordedBy,
		"moves":       t.Moves,
	}
	if _, err := tx.Exec(ctx, insertTrade, args); err != nil {
		return fmt.Errorf("error recording trade: %w", err)
	}

	if err := db.saveBoard(ctx, tx, b); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error commiting trade: %w", err)
	}
	return nil
}

func (db *postgresDB) saveBoard(ctx context.Context, tx pgx.Tx, b *model.Board) error {
	const upsert = `INSERT INTO draft_picks (
		round,
		slot,
		original_owner,
		current_owner,
		traded,
		path,
		updated
	) VALUES (
		@round,
		@slot,
		@originalOwner,
		@currentOwner,
		@traded,
		@path,
		@updated
	) ON CONFLICT (round, slot) DO UPDATE
		SET original_owner=EXCLUDED.original_owner,
			current_owner=EXCLUDED.current_owner,
			traded=EXCLUDED.traded,
			path=EXCLUDED.path,
			updated=EXCLUDED.updated
		WHERE draft_picks.current_owner <> EXCLUDED.current_owner
			OR draft_picks.path <> EXCLUDED.path
			OR draft_picks.original_owner <> EXCLUDED.original_owner`

	now := db.now()
	batch := &pgx.Batch{}
	for _, p := range b.Picks {
		batch.Queue(upsert, namedArgsForPick(&p, now))
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("error saving draft picks: %w", err)
	}
	return nil
}

func namedArgsForPick(p *model.DraftPick, updated pgtype.Timestamptz) pgx.NamedArgs {
	return pgx.NamedArgs{
		"round":         p.Round,
		"slot":          p.Slot,
		"originalOwner": p.OriginalOwner,
		"currentOwner":  p.CurrentOwner,
		"traded":        p.Traded,
		"path":          p.Path,
		"updated":       updated,
	}
}
