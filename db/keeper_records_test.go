package db

import (
	"context"
	"testing"

	"github.com/tunnelsnakes/sandlot/model"
)

func TestDB_keeperRecords(t *testing.T) {
	ctx := context.Background()
	season := 1900 + int(nextID())

	records := []model.KeeperRecord{
		{PlayerName: "Corbin Carroll", OriginalTeam: "Chris", YearsKept: 2, Round: 3},
		{PlayerName: "Bobby Witt Jr.", OriginalTeam: "Mike", YearsKept: 1, Round: 1},
	}
	err := testDB.SaveKeeperRecords(ctx, season, records)
	assertFatalf(t, err == nil, "error saving records: %v", err)

	res, err := testDB.ListKeeperRecords(ctx, season)
	assertFatalf(t, err == nil, "error listing records: %v", err)
	assertEquals(t, "num records", 2, len(res))
	assertEquals(t, "first record", "Bobby Witt Jr.", res[0].PlayerName)
	assertEquals(t, "season", season, res[0].Season)
	assertEquals(t, "years kept", 1, res[0].YearsKept)

	// Saving again replaces the season.
	err = testDB.SaveKeeperRecords(ctx, season, records[:1])
	assertFatalf(t, err == nil, "error saving records: %v", err)
	res, err = testDB.ListKeeperRecords(ctx, season)
	assertFatalf(t, err == nil, "error listing records: %v", err)
	assertEquals(t, "num records", 1, len(res))

	res, err = testDB.ListKeeperRecords(ctx, season+5000)
	assertFatalf(t, err == nil, "error listing records: %v", err)
	assertEquals(t, "num records in empty season", 0, len(res))
}
