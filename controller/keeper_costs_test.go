package controller

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/tunnelsnakes/sandlot/db/mockdb"
	"github.com/tunnelsnakes/sandlot/model"
)

func rosterPlayer(id int32, name string, ecr int32, round int, label string) model.RosterPlayer {
	return model.RosterPlayer{
		ID:              id,
		PlayerID:        id + 100,
		YahooTeamKey:    pudgeTeam,
		KeeperStatus:    model.STATUS_UNDECIDED,
		KeeperCostRound: round,
		KeeperCostLabel: label,
		Player:          &model.Player{ID: id + 100, FullName: name, ECR: ecr},
	}
}

func TestRecomputeKeeperCosts(t *testing.T) {
	records := []model.KeeperRecord{
		{Season: 2025, PlayerName: "Bobby Witt Jr.", OriginalTeam: "Pudge", YearsKept: 2, Round: 1},
		{Season: 2025, PlayerName: "Shohei Ohtani (Batter)", OriginalTeam: "Nick", YearsKept: 1, Round: 1},
		{Season: 2025, PlayerName: "Paul  Skenes", OriginalTeam: "Pudge", YearsKept: 1, Round: 2},
		{Season: 2025, PlayerName: "Ronald Acuna Jr.", OriginalTeam: "Web", YearsKept: 3, Round: 1},
		{Season: 2025, PlayerName: "Corbin Carroll", OriginalTeam: "Tom", YearsKept: 1, Round: 3},
		{Season: 2025, PlayerName: "Adley Rutschman", OriginalTeam: "Smalls", YearsKept: 1, Round: 6},
	}
	manual := rosterPlayer(5, "Corbin Carroll", 20, 4, "4th round, commissioner")
	manual.KeeperCostSource = model.COST_SOURCE_MANUAL
	roster := []model.RosterPlayer{
		rosterPlayer(1, "Bobby Witt Jr", 2, 0, ""),
		rosterPlayer(2, "Shohei Ohtani", 0, 0, ""),
		// already has the right cost
		rosterPlayer(3, "Paul Skenes", 9, 1, "2nd yr keeper — ECR"),
		rosterPlayer(4, "Kevin McGonigle", 150, 0, ""),
		manual,
	}

	mockDB := &mockdb.DB{}
	ctrl := newTestController(t, mockDB, nil)

	mockDB.On("ListKeeperRecords", mock.Anything, 2025).Return(records, nil)
	mockDB.On("ListRosterPlayers", mock.Anything).Return(roster, nil)
	mockDB.On("UpdateKeeperCost", mock.Anything, int32(1), 1, "3rd yr keeper — ECR", model.COST_SOURCE_KEEPER_ECR).Return(nil)
	mockDB.On("UpdateKeeperCost", mock.Anything, int32(2), 23, "2nd yr keeper — ECR", model.COST_SOURCE_KEEPER_ECR).Return(errDB)

	report, err := ctrl.RecomputeKeeperCosts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Job != jobRecomputeKeeperCosts || report.RunID == "" {
		t.Errorf("report is missing its job or run id: %+v", report)
	}
	if report.Processed != 5 || report.Updated != 1 || report.Unchanged != 1 || report.Skipped != 2 {
		t.Errorf("unexpected counts: %+v", report)
	}
	if len(report.Anomalies) != 3 {
		t.Fatalf("expected 3 anomalies, got %v", report.Anomalies)
	}
	assertAnomaly(t, report, model.ANOMALY_WRITE_FAILED, "Shohei Ohtani")

	missing := report.Anomalies[1:]
	wantMissing := []model.Anomaly{
		{Kind: model.ANOMALY_MISSING_ROSTER, Subject: "Adley Rutschman", Detail: "kept by Smalls in 2025 but not on a roster"},
		{Kind: model.ANOMALY_MISSING_ROSTER, Subject: "Ronald Acuna Jr.", Detail: "kept by Web (Web Gems) in 2025 but not on a roster"},
	}
	for i, want := range wantMissing {
		if missing[i].Kind != want.Kind || missing[i].Subject != want.Subject || missing[i].Detail != want.Detail {
			t.Errorf("missing roster anomaly %d: expected %+v, got %+v", i, want, missing[i])
		}
	}

	mockDB.AssertExpectations(t)
	mockDB.AssertNotCalled(t, "UpdateKeeperCost", mock.Anything, int32(3), mock.Anything, mock.Anything, mock.Anything)
	mockDB.AssertNotCalled(t, "UpdateKeeperCost", mock.Anything, int32(4), mock.Anything, mock.Anything, mock.Anything)
	mockDB.AssertNotCalled(t, "UpdateKeeperCost", mock.Anything, int32(5), mock.Anything, mock.Anything, mock.Anything)
}

// The missing roster anomalies come out in name order on every run.
func TestRecomputeKeeperCosts_missingRosterOrder(t *testing.T) {
	names := []string{"Zack Wheeler", "Mookie Betts", "Aaron Judge", "Julio Rodriguez", "Bryce Harper", "Corey Seager"}
	records := make([]model.KeeperRecord, 0, len(names))
	for _, n := range names {
		records = append(records, model.KeeperRecord{Season: 2025, PlayerName: n, OriginalTeam: "Nick", YearsKept: 1, Round: 2})
	}

	for run := 0; run < 5; run++ {
		mockDB := &mockdb.DB{}
		ctrl := newTestController(t, mockDB, nil)
		mockDB.On("ListKeeperRecords", mock.Anything, 2025).Return(records, nil)
		mockDB.On("ListRosterPlayers", mock.Anything).Return([]model.RosterPlayer{}, nil)

		report, err := ctrl.RecomputeKeeperCosts(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := make([]string, 0, len(report.Anomalies))
		for _, a := range report.Anomalies {
			got = append(got, a.Subject)
		}
		want := []string{"Aaron Judge", "Bryce Harper", "Corey Seager", "Julio Rodriguez", "Mookie Betts", "Zack Wheeler"}
		if !slices.Equal(got, want) {
			t.Fatalf("run %d: expected %v, got %v", run, want, got)
		}
	}
}

func TestRecomputeKeeperCosts_loadErrors(t *testing.T) {
	tests := map[string]struct {
		recordsErr error
		rosterErr  error
	}{
		"records fail": {recordsErr: errDB},
		"roster fails": {rosterErr: errDB},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			mockDB := &mockdb.DB{}
			ctrl := newTestController(t, mockDB, nil)
			mockDB.On("ListKeeperRecords", mock.Anything, 2025).Return(nil, tc.recordsErr)
			mockDB.On("ListRosterPlayers", mock.Anything).Return(nil, tc.rosterErr).Maybe()

			report, err := ctrl.RecomputeKeeperCosts(context.Background())
			if !errors.Is(err, errDB) {
				t.Errorf("expected the db error, got %v", err)
			}
			if report != nil {
				t.Errorf("expected no report, got %+v", report)
			}
			mockDB.AssertNotCalled(t, "UpdateKeeperCost", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestKeeperRecordsByName_longestKeptWins(t *testing.T) {
	records := []model.KeeperRecord{
		{PlayerName: "Bobby Witt Jr.", YearsKept: 1},
		{PlayerName: "Bobby Witt, Jr", YearsKept: 3},
		{PlayerName: "Bobby  Witt Jr.", YearsKept: 2},
	}

	byName := keeperRecordsByName(records)
	if len(byName) != 1 {
		t.Fatalf("expected one name, got %v", byName)
	}
	if rec := byName["Bobby Witt Jr."]; rec == nil || rec.YearsKept != 3 {
		t.Errorf("expected the record kept 3 years, got %v", rec)
	}
}

func TestImportKeeperRecords(t *testing.T) {
	tests := map[string]struct {
		input   string
		season  int
		records []model.KeeperRecord
		err     error
	}{
		"valid": {
			input: "PLAYER,TEAM,YEARS KEPT,ROUND\n" +
				"Bobby Witt Jr.,Pudge,2,1\n" +
				"\"Ohtani, Shohei\", Nick ,1,3\n",
			season: 2025,
			records: []model.KeeperRecord{
				{Season: 2025, PlayerName: "Bobby Witt Jr.", OriginalTeam: "Pudge", YearsKept: 2, Round: 1},
				{Season: 2025, PlayerName: "Ohtani, Shohei", OriginalTeam: "Nick", YearsKept: 1, Round: 3},
			},
		},
		"manager name case": {
			input:  "PLAYER,TEAM,YEARS KEPT,ROUND\nPaul Skenes,pudge,1,5\nBobby Witt Jr.,Smalls,2,1\n",
			season: 2025,
			records: []model.KeeperRecord{
				{Season: 2025, PlayerName: "Paul Skenes", OriginalTeam: "Pudge", YearsKept: 1, Round: 5},
				{Season: 2025, PlayerName: "Bobby Witt Jr.", OriginalTeam: "Smalls", YearsKept: 2, Round: 1},
			},
		},
		"columns in any order": {
			input:  "Round,Player,Years Kept,Team\n5,Paul Skenes,1,Pudge\n",
			season: 2025,
			records: []model.KeeperRecord{
				{Season: 2025, PlayerName: "Paul Skenes", OriginalTeam: "Pudge", YearsKept: 1, Round: 5},
			},
		},
		"missing column": {
			input:  "PLAYER,TEAM,ROUND\nPaul Skenes,Pudge,5\n",
			season: 2025,
			err:    model.NewValidationError("header", "missing required columns; player: 0, team: 1, years kept: -1, round: 2"),
		},
		"round too late": {
			input:  "PLAYER,TEAM,YEARS KEPT,ROUND\nPaul Skenes,Pudge,1,24\n",
			season: 2025,
			err:    model.NewValidationError("line 2", "round '24' is not between 1 and 23"),
		},
		"zero years": {
			input:  "PLAYER,TEAM,YEARS KEPT,ROUND\nPaul Skenes,Pudge,1,5\nBobby Witt Jr.,Pudge,0,1\n",
			season: 2025,
			err:    model.NewValidationError("line 3", "years kept '0' is not a positive number"),
		},
		"empty name": {
			input:  "PLAYER,TEAM,YEARS KEPT,ROUND\n ,Pudge,1,5\n",
			season: 2025,
			err:    model.NewValidationError("line 2", "player name is empty"),
		},
		"bad season": {
			input:  "PLAYER,TEAM,YEARS KEPT,ROUND\n",
			season: 0,
			err:    model.NewValidationError("season", "season 0 is not valid"),
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			mockDB := &mockdb.DB{}
			ctrl := newTestController(t, mockDB, nil)
			if tc.err == nil {
				mockDB.On("SaveKeeperRecords", mock.Anything, tc.season, tc.records).Return(nil)
			}

			n, err := ctrl.ImportKeeperRecords(context.Background(), strings.NewReader(tc.input), tc.season)
			if !errorsEqual(tc.err, err) {
				t.Fatalf("expected error '%v', got '%v'", tc.err, err)
			}
			if tc.err != nil {
				var validation *model.ValidationError
				if !errors.As(err, &validation) {
					t.Errorf("expected a validation error, got %T", err)
				}
				mockDB.AssertNotCalled(t, "SaveKeeperRecords", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			if n != len(tc.records) {
				t.Errorf("expected %d records, got %d", len(tc.records), n)
			}
			mockDB.AssertExpectations(t)
		})
	}
}

// Running the recompute twice against the database changes nothing the
// second time.
func TestRecomputeKeeperCosts_idempotent(t *testing.T) {
	ctx := context.Background()
	ctrl := newTestController(t, testDB.DB, nil)
	ctrl.keeperSeason = 2019

	p := &model.Player{FullName: "Benny Rodriguez", Team: model.TEAM_LAD, PrimaryPosition: model.POS_OF, ECR: 30}
	if err := testDB.DB.SavePlayer(ctx, p); err != nil {
		t.Fatalf("error saving player: %v", err)
	}
	r := &model.RosterPlayer{PlayerID: p.ID, YahooTeamKey: "469.l.24701.t.11", KeeperStatus: model.STATUS_UNDECIDED}
	if err := testDB.DB.AddRosterPlayer(ctx, r); err != nil {
		t.Fatalf("error adding roster player: %v", err)
	}
	records := []model.KeeperRecord{{Season: 2019, PlayerName: "Benny Rodriguez", OriginalTeam: "Thomas", YearsKept: 1, Round: 4}}
	if err := testDB.DB.SaveKeeperRecords(ctx, 2019, records); err != nil {
		t.Fatalf("error saving keeper records: %v", err)
	}

	first, err := ctrl.RecomputeKeeperCosts(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Updated != 1 {
		t.Errorf("expected one update on the first run, got %+v", first)
	}

	second, err := ctrl.RecomputeKeeperCosts(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Updated != 0 || second.Unchanged != 1 {
		t.Errorf("expected nothing to change on the second run, got %+v", second)
	}

	got, err := testDB.DB.GetRosterPlayer(ctx, r.ID)
	if err != nil {
		t.Fatalf("error getting roster player: %v", err)
	}
	if got.KeeperCostRound != 3 || got.KeeperCostLabel != "2nd yr keeper — ECR" || got.KeeperCostSource != model.COST_SOURCE_KEEPER_ECR {
		t.Errorf("unexpected cost: %d '%s' %s", got.KeeperCostRound, got.KeeperCostLabel, got.KeeperCostSource)
	}
}
