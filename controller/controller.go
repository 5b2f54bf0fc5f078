package controller

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/tunnelsnakes/sandlot/db"
	"github.com/tunnelsnakes/sandlot/model"
	"github.com/tunnelsnakes/sandlot/platforms/mlbstats"
	"github.com/tunnelsnakes/sandlot/platforms/yahoo"
	"golang.org/x/oauth2"
)

// C encapsulates business logic without worrying about any web layers
type C interface {
	GetManagers() []*model.Manager
	GetPlayer(ctx context.Context, id int32) (*model.Player, error)
	// Search supports "team:SEA" and "pos:SS" filters along with the name.
	Search(ctx context.Context, query string) ([]model.Player, error)

	GetTeamKeepers(ctx context.Context, slug string) (*model.TeamKeepers, error)
	// Sets the keeper status of a roster player. The caller, identified by
	// email, must manage the team the player is on.
	UpdateKeeperStatus(ctx context.Context, callerEmail string, rosterPlayerID int32, status model.KeeperStatus) (*model.RosterPlayer, error)
	// Moves the roster player to the next status in the cycle.
	CycleKeeperStatus(ctx context.Context, callerEmail string, rosterPlayerID int32) (*model.RosterPlayer, error)

	// Batch jobs. Each is safe to run again and reports what it did.
	RecomputeKeeperCosts(ctx context.Context) (*model.BatchReport, error)
	ClassifyNAEligibility(ctx context.Context) (*model.BatchReport, error)
	// Loads FantasyPros rankings (in CSV format) as each player's ECR.
	ImportECR(ctx context.Context, r io.Reader) (*model.BatchReport, error)
	SeedDraftCosts(ctx context.Context) (*model.BatchReport, error)
	SyncRosters(ctx context.Context) (*model.BatchReport, error)
	RunPeriodicRosterSync(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup)
	// Replaces the keeper records of a season with the ones in the CSV. Returns
	// the number of records saved.
	ImportKeeperRecords(ctx context.Context, r io.Reader, season int) (int, error)
	ListKeeperRecords(ctx context.Context, season int) ([]model.KeeperRecord, error)

	GetDraftBoard(ctx context.Context) (*model.Board, error)
	// Applies the trade to the draft board. Only the commissioner may do this.
	RecordTrade(ctx context.Context, callerEmail string, t *model.Trade) (*model.Board, error)

	OAuthStart() (string, error)
	OAuthExchange(ctx context.Context, state, code string) (*oauth2.Token, error)
}

type Config struct {
	Clock     clock.Clock
	DB        db.DB
	Directory *model.Directory
	MLBStats  mlbstats.Client

	Yahoo             *yahoo.Client
	YahooConfig       *oauth2.Config
	YahooRefreshToken string
	PreviousLeagueKey string

	KeeperSeason         int
	ExternalRequestDelay time.Duration
	WriteDelay           time.Duration
}

type controller struct {
	clock     clock.Clock
	db        db.DB
	directory *model.Directory
	mlbStats  mlbstats.Client

	yahoo             *yahoo.Client
	yahooConfig       *oauth2.Config
	previousLeagueKey string

	keeperSeason         int
	externalRequestDelay time.Duration
	writeDelay           time.Duration

	mu          sync.Mutex
	yahooToken  *oauth2.Token
	oauthStates map[string]*oauthState
}

func New(cfg Config) (C, error) {
	if cfg.Clock == nil || cfg.DB == nil || cfg.Directory == nil {
		return nil, errors.New("clock, db and directory are required")
	}

	c := &controller{
		clock:                cfg.Clock,
		db:                   cfg.DB,
		directory:            cfg.Directory,
		mlbStats:             cfg.MLBStats,
		yahoo:                cfg.Yahoo,
		yahooConfig:          cfg.YahooConfig,
		previousLeagueKey:    cfg.PreviousLeagueKey,
		keeperSeason:         cfg.KeeperSeason,
		externalRequestDelay: cfg.ExternalRequestDelay,
		writeDelay:           cfg.WriteDelay,
		oauthStates:          make(map[string]*oauthState),
	}
	if cfg.YahooRefreshToken != "" {
		// Expired so the first request exchanges it for an access token.
		c.yahooToken = &oauth2.Token{RefreshToken: cfg.YahooRefreshToken}
	}
	return c, nil
}

func (c *controller) GetManagers() []*model.Manager {
	return c.directory.All()
}
