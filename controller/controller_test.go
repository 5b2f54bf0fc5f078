package controller

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/itbasis/go-clock"
	"github.com/tunnelsnakes/sandlot/db"
	"github.com/tunnelsnakes/sandlot/model"
	"github.com/tunnelsnakes/sandlot/platforms/mlbstats"
	"github.com/tunnelsnakes/sandlot/platforms/yahoo"
	"github.com/tunnelsnakes/sandlot/testutils"
)

// A global testDB instance to use for all of the tests instead of setting up a new one each time.
var testDB *testutils.TestDB

// TestMain controls the main for the tests and allows for setup and shutdown of the tests
func TestMain(m *testing.M) {
	defer func() {
		// Catch all panics to make sure the shutdown is successfully run
		if r := recover(); r != nil {
			if testDB != nil {
				testDB.Shutdown()
			}
			fmt.Printf("panic - %v\n", r)
		}
	}()

	// Setup the global testDB variable
	testDB = testutils.NewTestDB()
	defer testDB.Shutdown()
	code := m.Run()
	os.Exit(code)
}

const (
	pudgeEmail = "pudge@thesandlot.example"
	pudgeTeam  = "469.l.24701.t.3"
	nickEmail  = "nick@thesandlot.example"
	chrisEmail = "chris@thesandlot.example"
)

func testDirectory(t *testing.T) *model.Directory {
	t.Helper()
	d, err := model.DefaultDirectory()
	if err != nil {
		t.Fatalf("error loading directory: %v", err)
	}
	return d
}

// newTestController builds a controller around the db with the fake outside
// services of tc, which may be nil when the test doesn't need them.
func newTestController(t *testing.T, database db.DB, tc *testutils.TestController) *controller {
	t.Helper()
	cfg := Config{
		Clock:             clock.NewMock(),
		DB:                database,
		Directory:         testDirectory(t),
		KeeperSeason:      2025,
		PreviousLeagueKey: testutils.YahooPrevLeagueKey,
	}
	if tc != nil {
		cfg.Yahoo = yahoo.NewForTest(tc.YahooURL())
		cfg.YahooConfig = tc.YahooConfig
		cfg.YahooRefreshToken = tc.YahooRefreshToken
		cfg.MLBStats = mlbstats.NewForTest(tc.MLBStatsURL())
	}

	c, err := New(cfg)
	if err != nil {
		t.Fatalf("error constructing controller: %v", err)
	}
	return c.(*controller)
}

func TestNew_missingDependencies(t *testing.T) {
	_, err := New(Config{Clock: clock.NewMock()})
	if err == nil {
		t.Errorf("expected an error when db and directory are missing")
	}
}

// errorsEqual compares errors by message.
func errorsEqual(e1, e2 error) bool {
	if e1 == nil || e2 == nil {
		return e1 == e2
	}
	return e1.Error() == e2.Error()
}

func assertAnomaly(t *testing.T, r *model.BatchReport, kind model.AnomalyKind, subject string) {
	t.Helper()
	for _, a := range r.Anomalies {
		if a.Kind == kind && a.Subject == subject {
			return
		}
	}
	t.Errorf("expected a %s anomaly for '%s', got %v", kind, subject, r.Anomalies)
}

var errDB = errors.New("connection reset by peer")
