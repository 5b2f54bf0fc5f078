package testutils

import (
	"context"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/rs/zerolog/log"
	"github.com/tunnelsnakes/sandlot/containers"
	"github.com/tunnelsnakes/sandlot/db"
	"github.com/tunnelsnakes/sandlot/model"
)

// Players that are on the fake Yahoo roster of YahooTeamKey. They are saved by
// NewTestDB but not rostered, tests decide where they play.
var (
	BobbyWitt = &model.Player{
		YahooPlayerKey:    "469.p.10835",
		FullName:          "Bobby Witt Jr.",
		Team:              model.TEAM_KC,
		PrimaryPosition:   model.POS_SS,
		EligiblePositions: []model.Position{model.POS_SS, model.POS_UTIL},
		ECR:               2,
		CareerAB:          2210,
		MLBDebutDate:      time.Date(2022, time.April, 7, 0, 0, 0, 0, time.UTC),
	}
	PaulSkenes = &model.Player{
		YahooPlayerKey:    "469.p.12345",
		FullName:          "Paul Skenes",
		Team:              model.TEAM_PIT,
		PrimaryPosition:   model.POS_SP,
		EligiblePositions: []model.Position{model.POS_SP, model.POS_P},
		ECR:               9,
	}
	KevinMcGonigle = &model.Player{
		YahooPlayerKey:    "469.p.13500",
		FullName:          "Kevin McGonigle",
		Team:              model.TEAM_DET,
		PrimaryPosition:   model.POS_SS,
		EligiblePositions: []model.Position{model.POS_SS, model.POS_UTIL},
		ECR:               150,
	}
)

type TestDB struct {
	container *containers.DBContainer
	DB        db.DB
	Clock     clock.Clock
}

func NewTestDB() *TestDB {
	container := containers.NewDBContainer()
	clock := clock.New()

	db, err := db.New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to db in test container")
	}

	if err := InsertTestPlayers(db); err != nil {
		log.Fatal().Err(err).Msg("error populating db in test container")
	}

	return &TestDB{
		container: container,
		DB:        db,
		Clock:     clock,
	}
}

func (db *TestDB) Shutdown() {
	db.container.Shutdown()
}

func InsertTestPlayers(db db.DB) error {
	players := []*model.Player{
		BobbyWitt,
		PaulSkenes,
		KevinMcGonigle,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, p := range players {
		err := db.SavePlayer(ctx, p)
		if err != nil {
			return err
		}
	}

	return nil
}
