package controller

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/tunnelsnakes/sandlot/db"
	"github.com/tunnelsnakes/sandlot/db/mockdb"
	"github.com/tunnelsnakes/sandlot/model"
)

func TestUpdateKeeperStatus(t *testing.T) {
	quotaErr := &model.QuotaExceededError{Status: model.STATUS_KEEPING, Limit: 6, Current: 6}
	movedErr := fmt.Errorf("roster player 1 left %s: %w", pudgeTeam, model.ErrNotOwner)

	tests := map[string]struct {
		email    string
		rosterID int32
		team     string // team of the roster player, empty if not found
		status   model.KeeperStatus
		dbErr    error // returned by UpdateKeeperStatus
		err      error
		updateEx bool
	}{
		"owner keeps":      {email: pudgeEmail, rosterID: 1, team: pudgeTeam, status: model.STATUS_KEEPING, updateEx: true},
		"email any case":   {email: " PUDGE@TheSandlot.example ", rosterID: 1, team: pudgeTeam, status: model.STATUS_NOT_KEEPING, updateEx: true},
		"unknown caller":   {email: "smalls@thesandlot.example", rosterID: 1, team: pudgeTeam, status: model.STATUS_KEEPING, err: model.ErrUnknownManager},
		"not the owner":    {email: nickEmail, rosterID: 1, team: pudgeTeam, status: model.STATUS_KEEPING, err: model.ErrNotOwner},
		"commissioner too": {email: chrisEmail, rosterID: 1, team: pudgeTeam, status: model.STATUS_KEEPING, err: model.ErrNotOwner},
		"no roster player": {email: pudgeEmail, rosterID: 99, status: model.STATUS_KEEPING, err: db.ErrRosterPlayerNotFound},
		"quota exceeded":   {email: pudgeEmail, rosterID: 1, team: pudgeTeam, status: model.STATUS_KEEPING, dbErr: quotaErr, err: quotaErr, updateEx: true},
		"moved mid write":  {email: pudgeEmail, rosterID: 1, team: pudgeTeam, status: model.STATUS_KEEPING, dbErr: movedErr, err: model.ErrNotOwner, updateEx: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			mockDB := &mockdb.DB{}
			ctrl := newTestController(t, mockDB, nil)

			if tc.team != "" {
				r := &model.RosterPlayer{ID: tc.rosterID, YahooTeamKey: tc.team, KeeperStatus: model.STATUS_UNDECIDED}
				mockDB.On("GetRosterPlayer", mock.Anything, tc.rosterID).Return(r, nil).Maybe()
			} else {
				mockDB.On("GetRosterPlayer", mock.Anything, tc.rosterID).Return(nil, db.ErrRosterPlayerNotFound).Maybe()
			}

			updated := &model.RosterPlayer{ID: tc.rosterID, YahooTeamKey: tc.team, KeeperStatus: tc.status}
			if tc.updateEx {
				if tc.dbErr != nil {
					mockDB.On("UpdateKeeperStatus", mock.Anything, tc.rosterID, pudgeTeam, tc.status).Return(nil, tc.dbErr)
				} else {
					mockDB.On("UpdateKeeperStatus", mock.Anything, tc.rosterID, pudgeTeam, tc.status).Return(updated, nil)
				}
			}

			res, err := ctrl.UpdateKeeperStatus(context.Background(), tc.email, tc.rosterID, tc.status)
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Errorf("expected error '%v', got '%v'", tc.err, err)
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if res.KeeperStatus != tc.status {
					t.Errorf("expected status %s, got %s", tc.status, res.KeeperStatus)
				}
			}

			mockDB.AssertExpectations(t)
			if !tc.updateEx {
				mockDB.AssertNotCalled(t, "UpdateKeeperStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestCycleKeeperStatus(t *testing.T) {
	tests := map[string]struct {
		current model.KeeperStatus
		next    model.KeeperStatus
	}{
		"undecided":   {current: model.STATUS_UNDECIDED, next: model.STATUS_KEEPING},
		"keeping":     {current: model.STATUS_KEEPING, next: model.STATUS_KEEPING_NA},
		"keeping na":  {current: model.STATUS_KEEPING_NA, next: model.STATUS_NOT_KEEPING},
		"not keeping": {current: model.STATUS_NOT_KEEPING, next: model.STATUS_UNDECIDED},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			mockDB := &mockdb.DB{}
			ctrl := newTestController(t, mockDB, nil)

			r := &model.RosterPlayer{ID: 7, YahooTeamKey: pudgeTeam, KeeperStatus: tc.current}
			mockDB.On("GetRosterPlayer", mock.Anything, int32(7)).Return(r, nil)
			mockDB.On("UpdateKeeperStatus", mock.Anything, int32(7), pudgeTeam, tc.next).
				Return(&model.RosterPlayer{ID: 7, YahooTeamKey: pudgeTeam, KeeperStatus: tc.next}, nil)

			res, err := ctrl.CycleKeeperStatus(context.Background(), pudgeEmail, 7)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.KeeperStatus != tc.next {
				t.Errorf("expected %s, got %s", tc.next, res.KeeperStatus)
			}
			mockDB.AssertExpectations(t)
		})
	}
}

func TestGetTeamKeepers(t *testing.T) {
	mockDB := &mockdb.DB{}
	ctrl := newTestController(t, mockDB, nil)

	roster := []model.RosterPlayer{
		{ID: 1, KeeperStatus: model.STATUS_KEEPING},
		{ID: 2, KeeperStatus: model.STATUS_KEEPING},
		{ID: 3, KeeperStatus: model.STATUS_KEEPING_NA},
		{ID: 4, KeeperStatus: model.STATUS_NOT_KEEPING},
	}
	mockDB.On("ListRoster", mock.Anything, pudgeTeam).Return(roster, nil)

	tk, err := ctrl.GetTeamKeepers(context.Background(), "pudge")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tk.Manager.DisplayName != "Pudge" {
		t.Errorf("expected Pudge, got %s", tk.Manager.DisplayName)
	}
	if tk.Keeping != 3 || tk.KeepingNA != 1 {
		t.Errorf("expected 3 keepers and 1 NA keeper, got %d and %d", tk.Keeping, tk.KeepingNA)
	}
	if tk.Progress != 50 || tk.NAProgress != 25 {
		t.Errorf("expected progress 50/25, got %d/%d", tk.Progress, tk.NAProgress)
	}
	if !tk.CanKeep || !tk.CanKeepNA {
		t.Errorf("expected room for more keepers")
	}

	_, err = ctrl.GetTeamKeepers(context.Background(), "smalls")
	if !errors.Is(err, model.ErrUnknownManager) {
		t.Errorf("expected ErrUnknownManager, got %v", err)
	}
}

// The quota has to hold against the real database: five keepers, the sixth
// is fine, the seventh fails and nothing changes.
func TestUpdateKeeperStatus_quotaEndToEnd(t *testing.T) {
	ctx := context.Background()
	ctrl := newTestController(t, testDB.DB, nil)

	// Tyler's team is otherwise unused by the controller tests.
	const email = "tyler@thesandlot.example"
	const teamKey = "469.l.24701.t.12"

	ids := make([]int32, 0, 12)
	for i := 0; i < 12; i++ {
		p := &model.Player{
			FullName:        "Quota Test " + string(rune('A'+i)),
			Team:            model.TEAM_SEA,
			PrimaryPosition: model.POS_OF,
		}
		if err := testDB.DB.SavePlayer(ctx, p); err != nil {
			t.Fatalf("error saving player: %v", err)
		}
		status := model.STATUS_UNDECIDED
		if i < 5 {
			status = model.STATUS_KEEPING
		}
		r := &model.RosterPlayer{PlayerID: p.ID, YahooTeamKey: teamKey, KeeperStatus: status}
		if err := testDB.DB.AddRosterPlayer(ctx, r); err != nil {
			t.Fatalf("error adding roster player: %v", err)
		}
		ids = append(ids, r.ID)
	}

	if _, err := ctrl.UpdateKeeperStatus(ctx, email, ids[5], model.STATUS_KEEPING); err != nil {
		t.Fatalf("sixth keeper should be allowed: %v", err)
	}

	for _, status := range []model.KeeperStatus{model.STATUS_KEEPING, model.STATUS_KEEPING_NA} {
		_, err := ctrl.UpdateKeeperStatus(ctx, email, ids[6], status)
		var quota *model.QuotaExceededError
		var validation *model.ValidationError
		// The NA attempt fails on eligibility first since nobody has the tag.
		if !errors.As(err, &quota) && !(status == model.STATUS_KEEPING_NA && errors.As(err, &validation)) {
			t.Errorf("seventh keeper (%s) should fail, got %v", status, err)
		}
	}

	tk, err := ctrl.GetTeamKeepers(ctx, "tyler")
	if err != nil {
		t.Fatalf("error getting keepers: %v", err)
	}
	if tk.Keeping != model.MaxKeepers || tk.CanKeep {
		t.Errorf("expected a full keeper list, got %d", tk.Keeping)
	}
}
