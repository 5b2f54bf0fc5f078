package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/tunnelsnakes/sandlot/db"
	"github.com/tunnelsnakes/sandlot/db/mockdb"
	"github.com/tunnelsnakes/sandlot/model"
)

func TestGetDraftBoard_createsOnce(t *testing.T) {
	mockDB := &mockdb.DB{}
	ctrl := newTestController(t, mockDB, nil)

	mockDB.On("GetDraftBoard", mock.Anything).Return(nil, db.ErrDraftBoardNotFound).Once()
	mockDB.On("SaveDraftBoard", mock.Anything, mock.AnythingOfType("*model.Board")).Return(nil).Once()

	b, err := ctrl.GetDraftBoard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Order[0] != "Pudge" || b.Order[1] != "Nick" {
		t.Errorf("board should follow the draft order, got %v", b.Order)
	}
	p, err := b.Pick(1, 1)
	if err != nil || p.CurrentOwner != "Pudge" || p.Traded {
		t.Errorf("unexpected first pick: %+v, %v", p, err)
	}

	mockDB.On("GetDraftBoard", mock.Anything).Return(b, nil)
	if _, err := ctrl.GetDraftBoard(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mockDB.AssertExpectations(t)
	mockDB.AssertNumberOfCalls(t, "SaveDraftBoard", 1)
}

func TestGetDraftBoard_dbError(t *testing.T) {
	mockDB := &mockdb.DB{}
	ctrl := newTestController(t, mockDB, nil)
	mockDB.On("GetDraftBoard", mock.Anything).Return(nil, errDB)

	if _, err := ctrl.GetDraftBoard(context.Background()); !errors.Is(err, errDB) {
		t.Errorf("expected the db error, got %v", err)
	}
	mockDB.AssertNotCalled(t, "SaveDraftBoard", mock.Anything, mock.Anything)
}

func TestRecordTrade(t *testing.T) {
	trade := &model.Trade{
		Description: "Pudge sends his 9th to Nick for Nick's 13th",
		Moves: []model.PickMove{
			{Round: 9, From: "Pudge", To: "Nick"},
			{Round: 13, From: "Nick", To: "Pudge"},
		},
	}

	tests := map[string]struct {
		email string
		trade *model.Trade
		err   error
		saved bool
	}{
		"commissioner":   {email: chrisEmail, trade: trade, saved: true},
		"owner can't":    {email: pudgeEmail, trade: trade, err: model.ErrNotCommissioner},
		"unknown caller": {email: "hamilton@thesandlot.example", trade: trade, err: model.ErrUnknownManager},
		"empty trade":    {email: chrisEmail, trade: &model.Trade{Description: "nothing"}, err: model.NewValidationError("moves", "trade has no picks")},
		"pick not owned": {email: chrisEmail, trade: &model.Trade{Moves: []model.PickMove{{Round: 3, Slot: 2, From: "Pudge", To: "Nick"}}}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			mockDB := &mockdb.DB{}
			ctrl := newTestController(t, mockDB, nil)

			b, err := model.NewBoard(testDirectory(t).DraftOrder())
			if err != nil {
				t.Fatalf("error creating board: %v", err)
			}
			mockDB.On("GetDraftBoard", mock.Anything).Return(b, nil).Maybe()
			mockDB.On("SaveDraftTrade", mock.Anything, mock.AnythingOfType("*model.Board"), tc.trade, "Chris").Return(nil).Maybe()

			next, err := ctrl.RecordTrade(context.Background(), tc.email, tc.trade)
			if !tc.saved {
				if err == nil {
					t.Fatalf("expected an error")
				}
				if tc.err != nil && !errors.Is(err, tc.err) && !errorsEqual(tc.err, err) {
					t.Errorf("expected error '%v', got '%v'", tc.err, err)
				}
				mockDB.AssertNotCalled(t, "SaveDraftTrade", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			p, _ := next.Pick(9, 1)
			if p.CurrentOwner != "Nick" || !p.Traded {
				t.Errorf("round 9 should now be Nick's: %+v", p)
			}
			p, _ = next.Pick(13, 2)
			if p.CurrentOwner != "Pudge" {
				t.Errorf("round 13 should now be Pudge's: %+v", p)
			}
			orig, _ := b.Pick(9, 1)
			if orig.CurrentOwner != "Pudge" {
				t.Errorf("the stored board should not change")
			}
			mockDB.AssertCalled(t, "SaveDraftTrade", mock.Anything, next, tc.trade, "Chris")
		})
	}
}
