package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/tunnelsnakes/sandlot/model"
)

const playerColumns = `p.id, p.yahoo_player_key, p.mlb_id, p.full_name, p.mlb_team,
	p.primary_position, p.eligible_positions, p.fantasypros_ecr, p.career_ab,
	p.career_ip, p.mlb_debut_date, p.is_na_eligible, p.na_eligibility_reason,
	p.created, p.updated`

func (db *postgresDB) GetPlayer(ctx context.Context, id int32) (*model.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players p WHERE p.id=@id`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id})
	p, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("error scanning player %d: %w", id, err)
	}
	return p, nil
}

func (db *postgresDB) GetPlayerByYahooKey(ctx context.Context, key string) (*model.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players p WHERE p.yahoo_player_key=@key`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"key": key})
	p, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("error scanning player %s: %w", key, err)
	}
	return p, nil
}

func (db *postgresDB) SavePlayer(ctx context.Context, p *model.Player) error {
	if p == nil {
		return errors.New("SavePlayer - player is nil")
	}
	if p.ID == 0 {
		return db.insertPlayer(ctx, p)
	}
	return db.updatePlayer(ctx, p)
}

func (db *postgresDB) ListPlayers(ctx context.Context) ([]model.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players p ORDER BY p.full_name, p.id`
	return db.queryPlayers(ctx, query, pgx.NamedArgs{})
}

func (db *postgresDB) FindPlayersByName(ctx context.Context, name string) ([]model.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players p WHERE lower(p.full_name) = lower(@name) ORDER BY p.id`
	return db.queryPlayers(ctx, query, pgx.NamedArgs{"name": name})
}

// SearchPlayers does a full text search on the name. An empty name matches
// everyone, nil team and POS_UNKNOWN match any team and position.
func (db *postgresDB) SearchPlayers(ctx context.Context, name string, pos model.Position, team *model.MLBTeam) ([]model.Player, error) {
	const query = `SELECT ` + playerColumns + ` FROM players p
		WHERE p.fts_player @@ websearch_to_tsquery('simple', @q)
			AND p.mlb_team ILIKE @team
			AND (p.primary_position ILIKE @pos OR (',' || p.eligible_positions || ',') ILIKE @eligible)
		ORDER BY p.full_name, p.id
		LIMIT 50`

	const teamAndPosQuery = `SELECT ` + playerColumns + ` FROM players p
		WHERE p.mlb_team ILIKE @team
			AND (p.primary_position ILIKE @pos OR (',' || p.eligible_positions || ',') ILIKE @eligible)
		ORDER BY p.full_name, p.id
		LIMIT 50`

	teamQ := "%"
	if team != nil {
		teamQ = team.String()
	}
	posQ := "%"
	eligibleQ := "%"
	if pos != model.POS_UNKNOWN {
		posQ = string(pos)
		eligibleQ = "%," + string(pos) + ",%"
	}

	args := pgx.NamedArgs{
		"q":        name,
		"team":     teamQ,
		"pos":      posQ,
		"eligible": eligibleQ,
	}

	qq := query
	if name == "" {
		qq = teamAndPosQuery
	}
	return db.queryPlayers(ctx, qq, args)
}

func (db *postgresDB) UpdatePlayerECR(ctx context.Context, id int32, ecr int32) error {
	const query = `UPDATE players SET fantasypros_ecr=@ecr, updated=@updated WHERE id=@id`

	args := pgx.NamedArgs{
		"id":      id,
		"ecr":     nullInt4(ecr),
		"updated": db.now(),
	}
	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error updating ecr for player %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func (db *postgresDB) UpdatePlayerNA(ctx context.Context, p *model.Player) error {
	const query = `UPDATE players
		SET mlb_id=@mlbID,
			eligible_positions=@eligiblePositions,
			career_ab=@careerAB,
			career_ip=@careerIP,
			mlb_debut_date=@debut,
			is_na_eligible=@naEligible,
			na_eligibility_reason=@naReason,
			updated=@updated
		WHERE id=@id`

	args := pgx.NamedArgs{
		"id":                p.ID,
		"mlbID":             pgtype.Int8{Int64: p.MLBID, Valid: p.MLBID != 0},
		"eligiblePositions": &DBPositionList{positions: p.EligiblePositions},
		"careerAB":          p.CareerAB,
		"careerIP":          p.CareerIP,
		"debut":             pgtype.Date{Time: p.MLBDebutDate, Valid: !p.MLBDebutDate.IsZero()},
		"naEligible":        p.IsNAEligible,
		"naReason":          nullString(string(p.NAReason)),
		"updated":           db.now(),
	}
	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error updating na eligibility for player %d: %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func (db *postgresDB) queryPlayers(ctx context.Context, query string, args pgx.NamedArgs) ([]model.Player, error) {
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error running player query: %w", err)
	}
	defer rows.Close()

	results := make([]model.Player, 0, 16)
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *p)
	}
	return results, rows.Err()
}

func scanPlayer(row pgx.Row) (*model.Player, error) {
	var result model.Player
	var dest playerScanDest
	if err := row.Scan(dest.targets(&result)...); err != nil {
		return nil, err
	}
	dest.apply(&result)
	return &result, nil
}

// playerScanDest holds the nullable and custom typed columns of a player while
// scanning, so the same column list can be used by joined queries.
type playerScanDest struct {
	yahooKey sql.NullString
	mlbID    pgtype.Int8
	team     DBMLBTeam
	pos      DBPosition
	eligible DBPositionList
	ecr      pgtype.Int4
	debut    pgtype.Date
	naReason sql.NullString
	created  pgtype.Timestamptz
	updated  pgtype.Timestamptz
}

func (d *playerScanDest) targets(p *model.Player) []any {
	return []any{
		&p.ID,
		&d.yahooKey,
		&d.mlbID,
		&p.FullName,
		&d.team,
		&d.pos,
		&d.eligible,
		&d.ecr,
		&p.CareerAB,
		&p.CareerIP,
		&d.debut,
		&p.IsNAEligible,
		&d.naReason,
		&d.created,
		&d.updated,
	}
}

func (d *playerScanDest) apply(p *model.Player) {
	p.YahooPlayerKey = valueOrEmpty(d.yahooKey)
	p.MLBID = d.mlbID.Int64
	p.Team = d.team.team
	p.PrimaryPosition = d.pos.position
	p.EligiblePositions = d.eligible.positions
	p.ECR = d.ecr.Int32
	p.MLBDebutDate = d.debut.Time
	p.NAReason = model.NAReason(valueOrEmpty(d.naReason))
	p.Created = d.created.Time
	p.Updated = d.updated.Time
}

func (db *postgresDB) insertPlayer(ctx context.Context, p *model.Player) error {
	const query = `INSERT INTO players (
		yahoo_player_key,
		mlb_id,
		full_name,
		mlb_team,
		primary_position,
		eligible_positions,
		fantasypros_ecr,
		career_ab,
		career_ip,
		mlb_debut_date,
		is_na_eligible,
		na_eligibility_reason
	) VALUES (
		@yahooKey,
		@mlbID,
		@fullName,
		@team,
		@position,
		@eligiblePositions,
		@ecr,
		@careerAB,
		@careerIP,
		@debut,
		@naEligible,
		@naReason
	) RETURNING id, created, updated`

	var created, updated pgtype.Timestamptz
	args := namedArgsForPlayer(p, db.now())
	err := db.pool.QueryRow(ctx, query, args).Scan(&p.ID, &created, &updated)
	if err != nil {
		return fmt.Errorf("error inserting player (%s): %w", p.FullName, err)
	}
	p.Created = created.Time
	p.Updated = updated.Time
	return nil
}

func (db *postgresDB) updatePlayer(ctx context.Context, p *model.Player) error {
	const query = `UPDATE players
		SET yahoo_player_key=@yahooKey,
			mlb_id=@mlbID,
			full_name=@fullName,
			mlb_team=@team,
			primary_position=@position,
			eligible_positions=@eligiblePositions,
			fantasypros_ecr=@ecr,
			career_ab=@careerAB,
			career_ip=@careerIP,
			mlb_debut_date=@debut,
			is_na_eligible=@naEligible,
			na_eligibility_reason=@naReason,
			updated=@updated
		WHERE id=@id`

	args := namedArgsForPlayer(p, db.now())
	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error updating player (%d): %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func namedArgsForPlayer(p *model.Player, updated pgtype.Timestamptz) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":                p.ID,
		"yahooKey":          nullString(p.YahooPlayerKey),
		"mlbID":             pgtype.Int8{Int64: p.MLBID, Valid: p.MLBID != 0},
		"fullName":          p.FullName,
		"team":              &DBMLBTeam{team: p.Team},
		"position":          &DBPosition{position: p.PrimaryPosition},
		"eligiblePositions": &DBPositionList{positions: p.EligiblePositions},
		"ecr":               nullInt4(p.ECR),
		"careerAB":          p.CareerAB,
		"careerIP":          p.CareerIP,
		"debut": pgtype.Date{
			Time:  p.MLBDebutDate,
			Valid: !p.MLBDebutDate.IsZero(),
		},
		"naEligible": p.IsNAEligible,
		"naReason":   nullString(string(p.NAReason)),
		"updated":    updated,
	}
}
