package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tunnelsnakes/sandlot/config"
	"github.com/tunnelsnakes/sandlot/controller"
	"github.com/tunnelsnakes/sandlot/db"
	"github.com/tunnelsnakes/sandlot/model"
	"github.com/tunnelsnakes/sandlot/platforms/mlbstats"
	"github.com/tunnelsnakes/sandlot/platforms/yahoo"
	"github.com/tunnelsnakes/sandlot/web"
	"golang.org/x/oauth2"
)

const (
	rosterSyncFrequency = 24 * time.Hour
	tokenTTL            = 180 * 24 * time.Hour
)

const usage = `usage: sandlot [command]

commands:
  serve                          run the web server (default)
  recompute-costs                recompute keeper costs from last season's records
  classify-na                    refresh NA eligibility from the MLB Stats API
  import-ecr <file>              load FantasyPros rankings as each player's ECR
  seed-draft-costs               seed costs from last season's Yahoo draft
  import-keepers <file> <season> replace a season's keeper records
  sync-rosters                   pull every team's roster from Yahoo
  issue-token <email>            print an API token for a manager`

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Fatal().Err(err).Msg("error loading .env file")
	}

	cfg := config.Load()
	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cmd := "serve"
	args := os.Args[1:]
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	directory, err := model.DefaultDirectory()
	if err != nil {
		log.Fatal().Err(err).Msg("error loading league directory")
	}

	// Doesn't need the database.
	if cmd == "issue-token" {
		if err := issueToken(cfg, directory, args); err != nil {
			log.Fatal().Err(err).Msg("error issuing token")
		}
		return
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	clock := clock.New()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	db, err := db.New(ctx, cfg.ConnString, clock)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to DB")
	}

	ctrl, err := controller.New(controller.Config{
		Clock:                clock,
		DB:                   db,
		Directory:            directory,
		MLBStats:             mlbstats.New(cfg.MLBStatsURL),
		Yahoo:                yahoo.New(),
		YahooConfig:          yahooConfig(cfg),
		YahooRefreshToken:    cfg.YahooRefreshToken,
		PreviousLeagueKey:    cfg.YahooPreviousLeagueKey,
		KeeperSeason:         cfg.KeeperSeason,
		ExternalRequestDelay: cfg.ExternalRequestDelay,
		WriteDelay:           cfg.WriteDelay,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("error creating a new controller")
	}

	switch cmd {
	case "serve":
		serve(cfg, clock, ctrl)
	case "recompute-costs":
		runBatch(ctrl.RecomputeKeeperCosts(ctx))
	case "classify-na":
		runBatch(ctrl.ClassifyNAEligibility(ctx))
	case "seed-draft-costs":
		runBatch(ctrl.SeedDraftCosts(ctx))
	case "sync-rosters":
		runBatch(ctrl.SyncRosters(ctx))
	case "import-ecr":
		if len(args) != 1 {
			exitUsage()
		}
		f, err := os.Open(args[0])
		if err != nil {
			log.Fatal().Err(err).Msg("error opening rankings file")
		}
		defer f.Close()
		runBatch(ctrl.ImportECR(ctx, f))
	case "import-keepers":
		if len(args) != 2 {
			exitUsage()
		}
		season, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal().Err(err).Msg("season must be a year")
		}
		f, err := os.Open(args[0])
		if err != nil {
			log.Fatal().Err(err).Msg("error opening keeper records file")
		}
		defer f.Close()
		count, err := ctrl.ImportKeeperRecords(ctx, f, season)
		if err != nil {
			log.Fatal().Err(err).Msg("error importing keeper records")
		}
		log.Info().Int("season", season).Int("saved", count).Msg("keeper records imported")
	default:
		exitUsage()
	}
}

func serve(cfg *config.Config, clock clock.Clock, ctrl controller.C) {
	if err := cfg.ValidateServer(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	server, err := web.NewServer(web.Config{
		Port:           cfg.Port,
		JWTSecret:      cfg.JWTSecret,
		AdminPassword:  cfg.AdminPassword,
		RateLimit:      cfg.RateLimitPerMinute,
		AllowedOrigins: cfg.AllowedOrigins,
		TrustProxy:     cfg.TrustProxy,
		Clock:          clock,
	}, ctrl)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating new web server")
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt)
	go func() {
		<-intChannel
		close(shutdown)

		if err := waitTimeout(wg, 10*time.Second); err != nil {
			log.Error().Msg("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	// Keep rosters current with Yahoo once a day.
	wg.Add(1)
	go ctrl.RunPeriodicRosterSync(rosterSyncFrequency, shutdown, wg)

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	log.Info().Msg("server shutdown")
}

// runBatch prints a batch report as JSON. A job that stopped part way still
// prints what it finished before exiting with an error.
func runBatch(report *model.BatchReport, err error) {
	if report != nil {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(report); encErr != nil {
			log.Error().Err(encErr).Msg("error printing report")
		}
	}
	if err != nil {
		log.Fatal().Err(err).Msg("batch failed")
	}
}

func issueToken(cfg *config.Config, directory *model.Directory, args []string) error {
	if len(args) != 1 {
		exitUsage()
	}
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}

	m, ok := directory.ByEmail(args[0])
	if !ok {
		return fmt.Errorf("%s: %w", args[0], model.ErrUnknownManager)
	}

	tkn, err := web.NewToken([]byte(cfg.JWTSecret), m.Email, time.Now(), tokenTTL)
	if err != nil {
		return err
	}
	fmt.Println(tkn)
	return nil
}

func yahooConfig(cfg *config.Config) *oauth2.Config {
	if !cfg.YahooConfigured() {
		return nil
	}
	return &oauth2.Config{
		ClientID:     cfg.YahooClientID,
		ClientSecret: cfg.YahooClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://api.login.yahoo.com/oauth2/request_auth",
			TokenURL: "https://api.login.yahoo.com/oauth2/get_token",
		},
		RedirectURL: cfg.OAuthRedirectURL,
	}
}

func exitUsage() {
	fmt.Fprintln(os.Stderr, usage)
	os.Exit(2)
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
