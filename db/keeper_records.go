package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tunnelsnakes/sandlot/model"
)

func (db *postgresDB) SaveKeeperRecords(ctx context.Context, season int, records []model.KeeperRecord) error {
	const deleteQuery = `DELETE FROM keeper_records WHERE season=@season`
	const insertQuery = `INSERT INTO keeper_records (
		season,
		player_name,
		original_team,
		years_kept,
		round
	) VALUES (
		@season,
		@playerName,
		@originalTeam,
		@yearsKept,
		@round
	)`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, deleteQuery, pgx.NamedArgs{"season": season}); err != nil {
		return fmt.Errorf("error clearing %d keeper records: %w", season, err)
	}

	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(insertQuery, pgx.NamedArgs{
			"season":       season,
			"playerName":   r.PlayerName,
			"originalTeam": r.OriginalTeam,
			"yearsKept":    r.YearsKept,
			"round":        r.Round,
		})
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("error inserting %d keeper records: %w", season, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error commiting keeper records: %w", err)
	}
	return nil
}

func (db *postgresDB) ListKeeperRecords(ctx context.Context, season int) ([]model.KeeperRecord, error) {
	const query = `SELECT id, season, player_name, original_team, years_kept, round
		FROM keeper_records WHERE season=@season ORDER BY player_name`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"season": season})
	if err != nil {
		return nil, fmt.Errorf("error querying %d keeper records: %w", season, err)
	}
	defer rows.Close()

	records := make([]model.KeeperRecord, 0, 72)
	for rows.Next() {
		var r model.KeeperRecord
		if err := rows.Scan(&r.ID, &r.Season, &r.PlayerName, &r.OriginalTeam, &r.YearsKept, &r.Round); err != nil {
			return nil, fmt.Errorf("error scanning keeper record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
