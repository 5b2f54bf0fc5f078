package mockcontroller

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/tunnelsnakes/sandlot/model"
	"golang.org/x/oauth2"
)

type C struct {
	mock.Mock
}

func (c *C) GetManagers() []*model.Manager {
	args := c.Called()

	var res []*model.Manager
	if args.Get(0) != nil {
		res = args.Get(0).([]*model.Manager)
	}
	return res
}

func (c *C) GetPlayer(ctx context.Context, id int32) (*model.Player, error) {
	args := c.Called(ctx, id)

	var p *model.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Player)
	}

	return p, args.Error(1)
}

func (c *C) Search(ctx context.Context, query string) ([]model.Player, error) {
	args := c.Called(ctx, query)

	var res []model.Player
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Player)
	}

	return res, args.Error(1)
}

func (c *C) GetTeamKeepers(ctx context.Context, slug string) (*model.TeamKeepers, error) {
	args := c.Called(ctx, slug)

	var res *model.TeamKeepers
	if args.Get(0) != nil {
		res = args.Get(0).(*model.TeamKeepers)
	}
	return res, args.Error(1)
}

func (c *C) UpdateKeeperStatus(ctx context.Context, callerEmail string, rosterPlayerID int32, status model.KeeperStatus) (*model.RosterPlayer, error) {
	args := c.Called(ctx, callerEmail, rosterPlayerID, status)
	return rosterPlayer(args), args.Error(1)
}

func (c *C) CycleKeeperStatus(ctx context.Context, callerEmail string, rosterPlayerID int32) (*model.RosterPlayer, error) {
	args := c.Called(ctx, callerEmail, rosterPlayerID)
	return rosterPlayer(args), args.Error(1)
}

func (c *C) RecomputeKeeperCosts(ctx context.Context) (*model.BatchReport, error) {
	args := c.Called(ctx)
	return report(args), args.Error(1)
}

func (c *C) ClassifyNAEligibility(ctx context.Context) (*model.BatchReport, error) {
	args := c.Called(ctx)
	return report(args), args.Error(1)
}

func (c *C) ImportECR(ctx context.Context, r io.Reader) (*model.BatchReport, error) {
	args := c.Called(ctx, r)
	return report(args), args.Error(1)
}

func (c *C) SeedDraftCosts(ctx context.Context) (*model.BatchReport, error) {
	args := c.Called(ctx)
	return report(args), args.Error(1)
}

func (c *C) SyncRosters(ctx context.Context) (*model.BatchReport, error) {
	args := c.Called(ctx)
	return report(args), args.Error(1)
}

func (c *C) RunPeriodicRosterSync(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	c.Called(frequency, shutdown, wg)
}

func (c *C) ImportKeeperRecords(ctx context.Context, r io.Reader, season int) (int, error) {
	args := c.Called(ctx, r, season)
	return args.Int(0), args.Error(1)
}

func (c *C) ListKeeperRecords(ctx context.Context, season int) ([]model.KeeperRecord, error) {
	args := c.Called(ctx, season)

	var res []model.KeeperRecord
	if args.Get(0) != nil {
		res = args.Get(0).([]model.KeeperRecord)
	}
	return res, args.Error(1)
}

func (c *C) GetDraftBoard(ctx context.Context) (*model.Board, error) {
	args := c.Called(ctx)
	return board(args), args.Error(1)
}

func (c *C) RecordTrade(ctx context.Context, callerEmail string, t *model.Trade) (*model.Board, error) {
	args := c.Called(ctx, callerEmail, t)
	return board(args), args.Error(1)
}

func (c *C) OAuthStart() (string, error) {
	args := c.Called()
	return args.String(0), args.Error(1)
}

func (c *C) OAuthExchange(ctx context.Context, state, code string) (*oauth2.Token, error) {
	args := c.Called(ctx, state, code)

	var t *oauth2.Token
	if args.Get(0) != nil {
		t = args.Get(0).(*oauth2.Token)
	}
	return t, args.Error(1)
}

func rosterPlayer(args mock.Arguments) *model.RosterPlayer {
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*model.RosterPlayer)
}

func report(args mock.Arguments) *model.BatchReport {
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*model.BatchReport)
}

func board(args mock.Arguments) *model.Board {
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*model.Board)
}
