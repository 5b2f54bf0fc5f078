package mockdb

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tunnelsnakes/sandlot/model"
)

type DB struct {
	mock.Mock
}

func (db *DB) GetPlayer(ctx context.Context, id int32) (*model.Player, error) {
	args := db.Called(ctx, id)

	var p *model.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Player)
	}

	return p, args.Error(1)
}

func (db *DB) GetPlayerByYahooKey(ctx context.Context, key string) (*model.Player, error) {
	args := db.Called(ctx, key)

	var p *model.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Player)
	}

	return p, args.Error(1)
}

func (db *DB) SavePlayer(ctx context.Context, p *model.Player) error {
	args := db.Called(ctx, p)
	return args.Error(0)
}

func (db *DB) ListPlayers(ctx context.Context) ([]model.Player, error) {
	args := db.Called(ctx)
	return players(args, 0), args.Error(1)
}

func (db *DB) FindPlayersByName(ctx context.Context, name string) ([]model.Player, error) {
	args := db.Called(ctx, name)
	return players(args, 0), args.Error(1)
}

func (db *DB) SearchPlayers(ctx context.Context, name string, pos model.Position, team *model.MLBTeam) ([]model.Player, error) {
	args := db.Called(ctx, name, pos, team)
	return players(args, 0), args.Error(1)
}

func (db *DB) UpdatePlayerECR(ctx context.Context, id int32, ecr int32) error {
	args := db.Called(ctx, id, ecr)
	return args.Error(0)
}

func (db *DB) UpdatePlayerNA(ctx context.Context, p *model.Player) error {
	args := db.Called(ctx, p)
	return args.Error(0)
}

func (db *DB) AddRosterPlayer(ctx context.Context, r *model.RosterPlayer) error {
	args := db.Called(ctx, r)
	return args.Error(0)
}

func (db *DB) UpsertRosterPlayer(ctx context.Context, playerID int32, teamKey string) (bool, error) {
	args := db.Called(ctx, playerID, teamKey)
	return args.Bool(0), args.Error(1)
}

func (db *DB) GetRosterPlayer(ctx context.Context, id int32) (*model.RosterPlayer, error) {
	args := db.Called(ctx, id)

	var r *model.RosterPlayer
	if args.Get(0) != nil {
		r = args.Get(0).(*model.RosterPlayer)
	}
	return r, args.Error(1)
}

func (db *DB) ListRoster(ctx context.Context, teamKey string) ([]model.RosterPlayer, error) {
	args := db.Called(ctx, teamKey)
	return roster(args, 0), args.Error(1)
}

func (db *DB) ListRosterPlayers(ctx context.Context) ([]model.RosterPlayer, error) {
	args := db.Called(ctx)
	return roster(args, 0), args.Error(1)
}

func (db *DB) UpdateKeeperStatus(ctx context.Context, id int32, teamKey string, status model.KeeperStatus) (*model.RosterPlayer, error) {
	args := db.Called(ctx, id, teamKey, status)

	var r *model.RosterPlayer
	if args.Get(0) != nil {
		r = args.Get(0).(*model.RosterPlayer)
	}
	return r, args.Error(1)
}

func (db *DB) UpdateKeeperCost(ctx context.Context, id int32, round int, label string, source model.CostSource) error {
	args := db.Called(ctx, id, round, label, source)
	return args.Error(0)
}

func (db *DB) SaveKeeperRecords(ctx context.Context, season int, records []model.KeeperRecord) error {
	args := db.Called(ctx, season, records)
	return args.Error(0)
}

func (db *DB) ListKeeperRecords(ctx context.Context, season int) ([]model.KeeperRecord, error) {
	args := db.Called(ctx, season)

	var r []model.KeeperRecord
	if args.Get(0) != nil {
		r = args.Get(0).([]model.KeeperRecord)
	}
	return r, args.Error(1)
}

func (db *DB) GetDraftBoard(ctx context.Context) (*model.Board, error) {
	args := db.Called(ctx)

	var b *model.Board
	if args.Get(0) != nil {
		b = args.Get(0).(*model.Board)
	}
	return b, args.Error(1)
}

func (db *DB) SaveDraftBoard(ctx context.Context, b *model.Board) error {
	args := db.Called(ctx, b)
	return args.Error(0)
}

func (db *DB) SaveDraftTrade(ctx context.Context, b *model.Board, t *model.Trade, recordedBy string) error {
	args := db.Called(ctx, b, t, recordedBy)
	return args.Error(0)
}

func players(args mock.Arguments, i int) []model.Player {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).([]model.Player)
}

func roster(args mock.Arguments, i int) []model.RosterPlayer {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).([]model.RosterPlayer)
}
