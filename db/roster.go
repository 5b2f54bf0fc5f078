package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/tunnelsnakes/sandlot/model"
)

const rosterColumns = `r.id, r.player_id, r.yahoo_team_key, r.keeper_status,
	r.keeper_cost_round, r.keeper_cost_label, r.keeper_cost_source, r.updated`

const rosterQuery = `SELECT ` + rosterColumns + `, ` + playerColumns + `
	FROM roster_players r JOIN players p ON p.id = r.player_id`

func (db *postgresDB) AddRosterPlayer(ctx context.Context, r *model.RosterPlayer) error {
	const query = `INSERT INTO roster_players (
		player_id,
		yahoo_team_key,
		keeper_status,
		keeper_cost_round,
		keeper_cost_label,
		keeper_cost_source
	) VALUES (
		@playerID,
		@teamKey,
		@status,
		@costRound,
		@costLabel,
		@costSource
	) RETURNING id, updated`

	status := r.KeeperStatus
	if status == "" {
		status = model.STATUS_UNDECIDED
	}

	args := pgx.NamedArgs{
		"playerID":   r.PlayerID,
		"teamKey":    r.YahooTeamKey,
		"status":     string(status),
		"costRound":  nullInt4(int32(r.KeeperCostRound)),
		"costLabel":  r.KeeperCostLabel,
		"costSource": string(r.KeeperCostSource),
	}

	var updated pgtype.Timestamptz
	if err := db.pool.QueryRow(ctx, query, args).Scan(&r.ID, &updated); err != nil {
		return fmt.Errorf("error adding player %d to roster %s: %w", r.PlayerID, r.YahooTeamKey, err)
	}
	r.KeeperStatus = status
	r.Updated = updated.Time
	return nil
}

func (db *postgresDB) UpsertRosterPlayer(ctx context.Context, playerID int32, teamKey string) (bool, error) {
	// A player moving teams keeps his cost, the keeper lineage follows the
	// player. The keep decision belongs to the old manager, so it starts over.
	const query = `INSERT INTO roster_players (player_id, yahoo_team_key, keeper_status, updated)
		VALUES (@playerID, @teamKey, @status, @updated)
		ON CONFLICT (player_id) DO UPDATE
		SET yahoo_team_key=EXCLUDED.yahoo_team_key,
			keeper_status=EXCLUDED.keeper_status,
			updated=EXCLUDED.updated
		WHERE roster_players.yahoo_team_key <> EXCLUDED.yahoo_team_key`

	args := pgx.NamedArgs{
		"playerID": playerID,
		"teamKey":  teamKey,
		"status":   string(model.STATUS_UNDECIDED),
		"updated":  db.now(),
	}
	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return false, fmt.Errorf("error putting player %d on roster %s: %w", playerID, teamKey, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (db *postgresDB) GetRosterPlayer(ctx context.Context, id int32) (*model.RosterPlayer, error) {
	query := rosterQuery + ` WHERE r.id=@id`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id})
	r, err := scanRosterPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRosterPlayerNotFound
		}
		return nil, fmt.Errorf("error scanning roster player %d: %w", id, err)
	}
	return r, nil
}

func (db *postgresDB) ListRoster(ctx context.Context, teamKey string) ([]model.RosterPlayer, error) {
	query := rosterQuery + ` WHERE r.yahoo_team_key=@teamKey ORDER BY p.full_name, r.id`
	return db.queryRoster(ctx, query, pgx.NamedArgs{"teamKey": teamKey})
}

func (db *postgresDB) ListRosterPlayers(ctx context.Context) ([]model.RosterPlayer, error) {
	query := rosterQuery + ` ORDER BY r.yahoo_team_key, p.full_name, r.id`
	return db.queryRoster(ctx, query, pgx.NamedArgs{})
}

func (db *postgresDB) UpdateKeeperStatus(ctx context.Context, id int32, teamKey string, status model.KeeperStatus) (*model.RosterPlayer, error) {
	const teamQuery = `SELECT yahoo_team_key FROM roster_players WHERE id=@id`

	// Every row of the team is locked, not just the target, so two requests for
	// the same team can't both pass the quota check.
	const lockQuery = `SELECT r.id, r.keeper_status, p.eligible_positions
		FROM roster_players r JOIN players p ON p.id = r.player_id
		WHERE r.yahoo_team_key=@teamKey
		ORDER BY r.id
		FOR UPDATE OF r`

	const update = `UPDATE roster_players SET keeper_status=@status, updated=@updated WHERE id=@id`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var current string
	if err := tx.QueryRow(ctx, teamQuery, pgx.NamedArgs{"id": id}).Scan(&current); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRosterPlayerNotFound
		}
		return nil, fmt.Errorf("error looking up team for roster player %d: %w", id, err)
	}
	if current != teamKey {
		return nil, fmt.Errorf("roster player %d is on %s, not %s: %w", id, current, teamKey, model.ErrNotOwner)
	}

	rows, err := tx.Query(ctx, lockQuery, pgx.NamedArgs{"teamKey": teamKey})
	if err != nil {
		return nil, fmt.Errorf("error locking roster %s: %w", teamKey, err)
	}
	roster := make([]model.RosterPlayer, 0, 32)
	var eligible []model.Position
	found := false
	for rows.Next() {
		var r model.RosterPlayer
		var s string
		var positions DBPositionList
		if err := rows.Scan(&r.ID, &s, &positions); err != nil {
			rows.Close()
			return nil, fmt.Errorf("error scanning locked roster row: %w", err)
		}
		r.KeeperStatus = model.KeeperStatus(s)
		if r.ID == id {
			eligible = positions.positions
			found = true
		}
		roster = append(roster, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading locked roster %s: %w", teamKey, err)
	}
	if !found {
		// Moved to another team between the two queries.
		return nil, fmt.Errorf("roster player %d left %s: %w", id, teamKey, model.ErrNotOwner)
	}

	if err := model.CheckKeeperChange(roster, id, eligible, status); err != nil {
		return nil, err
	}

	args := pgx.NamedArgs{
		"id":      id,
		"status":  string(status),
		"updated": db.now(),
	}
	if _, err := tx.Exec(ctx, update, args); err != nil {
		return nil, fmt.Errorf("error updating keeper status of %d: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("error commiting keeper status: %w", err)
	}

	return db.GetRosterPlayer(ctx, id)
}

func (db *postgresDB) UpdateKeeperCost(ctx context.Context, id int32, round int, label string, source model.CostSource) error {
	const query = `UPDATE roster_players
		SET keeper_cost_round=@round,
			keeper_cost_label=@label,
			keeper_cost_source=@source,
			updated=@updated
		WHERE id=@id`

	if round < 0 || round > model.MaxCostRound {
		return model.NewValidationError("round", "keeper cost round %d is not between 1 and %d", round, model.MaxCostRound)
	}

	args := pgx.NamedArgs{
		"id":      id,
		"round":   nullInt4(int32(round)),
		"label":   label,
		"source":  string(source),
		"updated": db.now(),
	}
	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error updating keeper cost of %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRosterPlayerNotFound
	}
	return nil
}

func (db *postgresDB) queryRoster(ctx context.Context, query string, args pgx.NamedArgs) ([]model.RosterPlayer, error) {
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error running roster query: %w", err)
	}
	defer rows.Close()

	results := make([]model.RosterPlayer, 0, 32)
	for rows.Next() {
		r, err := scanRosterPlayer(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *r)
	}
	return results, rows.Err()
}

func scanRosterPlayer(row pgx.Row) (*model.RosterPlayer, error) {
	var r model.RosterPlayer
	var p model.Player
	var pd playerScanDest
	var status, source string
	var costRound pgtype.Int4
	var updated pgtype.Timestamptz

	targets := []any{
		&r.ID,
		&r.PlayerID,
		&r.YahooTeamKey,
		&status,
		&costRound,
		&r.KeeperCostLabel,
		&source,
		&updated,
	}
	targets = append(targets, pd.targets(&p)...)

	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	pd.apply(&p)

	r.KeeperStatus = model.KeeperStatus(status)
	r.KeeperCostRound = int(costRound.Int32)
	r.KeeperCostSource = model.CostSource(source)
	r.Updated = updated.Time
	r.Player = &p
	return &r, nil
}
