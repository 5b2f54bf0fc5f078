package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tunnelsnakes/sandlot/model"
)

var (
	ErrPlayerNotFound       error = errors.New("player not found")
	ErrRosterPlayerNotFound error = errors.New("roster player not found")
	ErrDraftBoardNotFound   error = errors.New("draft board has not been created")
)

func New(ctx context.Context, connString string, clock clock.Clock) (DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	return &postgresDB{pool: pool, clock: clock}, nil
}

type postgresDB struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

func (db *postgresDB) now() pgtype.Timestamptz {
	return pgtype.Timestamptz{
		Time:             db.clock.Now().UTC(),
		InfinityModifier: pgtype.Finite,
		Valid:            true,
	}
}

func valueOrEmpty(v sql.NullString) string {
	if v.Valid {
		return v.String
	}
	return ""
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// nullInt4 maps the zero value to NULL.
func nullInt4(v int32) pgtype.Int4 {
	return pgtype.Int4{Int32: v, Valid: v != 0}
}

type DBPosition struct {
	position model.Position
}

func (p *DBPosition) ScanText(v pgtype.Text) error {
	p.position = model.ParsePosition(v.String)
	return nil
}

func (p *DBPosition) TextValue() (pgtype.Text, error) {
	return pgtype.Text{
		String: string(p.position),
		Valid:  true,
	}, nil
}

type DBPositionList struct {
	positions []model.Position
}

func (p *DBPositionList) ScanText(v pgtype.Text) error {
	p.positions = model.ParsePositionList(v.String)
	return nil
}

func (p *DBPositionList) TextValue() (pgtype.Text, error) {
	return pgtype.Text{
		String: model.FormatPositionList(p.positions),
		Valid:  true,
	}, nil
}

type DBMLBTeam struct {
	team *model.MLBTeam
}

func (t *DBMLBTeam) ScanText(v pgtype.Text) error {
	t.team = model.ParseTeam(v.String)
	return nil
}

func (t *DBMLBTeam) TextValue() (pgtype.Text, error) {
	team := t.team
	if team == nil {
		team = model.TEAM_FA
	}
	return pgtype.Text{
		String: team.String(),
		Valid:  true,
	}, nil
}
