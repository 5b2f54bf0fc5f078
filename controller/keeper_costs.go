package controller

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tunnelsnakes/sandlot/model"
)

const jobRecomputeKeeperCosts = "recompute-keeper-costs"

// RecomputeKeeperCosts sets the cost of every returning keeper from last
// season's keeper records and the player's current ECR. Players who weren't
// kept last season are left alone, their cost comes from the draft, and so
// are costs entered by hand.
func (c *controller) RecomputeKeeperCosts(ctx context.Context) (*model.BatchReport, error) {
	records, err := c.db.ListKeeperRecords(ctx, c.keeperSeason)
	if err != nil {
		return nil, fmt.Errorf("error loading %d keeper records: %w", c.keeperSeason, err)
	}

	roster, err := c.db.ListRosterPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading rosters: %w", err)
	}

	report := c.newBatchReport(jobRecomputeKeeperCosts)
	byName := keeperRecordsByName(records)
	matched := make(map[string]bool, len(byName))

	for _, r := range roster {
		report.Processed++

		name := model.NormalizeKeeperName(r.Player.FullName)
		rec, ok := byName[name]
		if !ok {
			report.Skipped++
			continue
		}
		matched[name] = true

		if r.KeeperCostSource == model.COST_SOURCE_MANUAL {
			report.Skipped++
			continue
		}

		label, round := model.KeeperCost(rec, r.Player.ECR)
		if label == r.KeeperCostLabel && round == r.KeeperCostRound {
			report.Unchanged++
			continue
		}

		if err := c.db.UpdateKeeperCost(ctx, r.ID, round, label, model.COST_SOURCE_KEEPER_ECR); err != nil {
			report.AddAnomaly(model.AnomalyFromError(r.Player.FullName,
				&model.TransientWriteError{Subject: r.Player.FullName, Err: err}))
		} else {
			report.Updated++
		}

		if err := c.throttle(ctx, c.writeDelay); err != nil {
			c.finishBatchReport(report)
			return report, err
		}
	}

	for _, name := range slices.Sorted(maps.Keys(byName)) {
		if matched[name] {
			continue
		}
		rec := byName[name]
		report.AddAnomaly(model.Anomaly{
			Kind:    model.ANOMALY_MISSING_ROSTER,
			Subject: rec.PlayerName,
			Detail:  fmt.Sprintf("kept by %s in %d but not on a roster", c.keptBy(rec), rec.Season),
		})
	}

	c.finishBatchReport(report)
	return report, nil
}

func (c *controller) keptBy(rec *model.KeeperRecord) string {
	if m, ok := c.directory.ByDisplayName(rec.OriginalTeam); ok {
		return fmt.Sprintf("%s (%s)", m.DisplayName, m.TeamName)
	}
	return rec.OriginalTeam
}

// keeperRecordsByName keys the records by normalized name. When two records
// normalize to the same name the one kept longest wins.
func keeperRecordsByName(records []model.KeeperRecord) map[string]*model.KeeperRecord {
	result := make(map[string]*model.KeeperRecord, len(records))
	for i := range records {
		rec := &records[i]
		name := model.NormalizeKeeperName(rec.PlayerName)
		if prev, ok := result[name]; ok {
			log.Warn().Str("name", name).Msg("more than one keeper record for player")
			if prev.YearsKept >= rec.YearsKept {
				continue
			}
		}
		result[name] = rec
	}
	return result
}

func (c *controller) ImportKeeperRecords(ctx context.Context, r io.Reader, season int) (int, error) {
	if season < 1 {
		return 0, model.NewValidationError("season", "season %d is not valid", season)
	}

	reader, err := newKeeperRecordsCSVReader(r)
	if err != nil {
		return 0, err
	}

	records := make([]model.KeeperRecord, 0, 72)
	for {
		rec, err := reader.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, err
		}
		rec.Season = season
		if m, ok := c.directory.ByDisplayName(rec.OriginalTeam); ok {
			rec.OriginalTeam = m.DisplayName
		} else {
			log.Warn().Str("player", rec.PlayerName).Str("team", rec.OriginalTeam).Msg("keeper record names an unknown manager")
		}
		records = append(records, *rec)
	}

	if err := c.db.SaveKeeperRecords(ctx, season, records); err != nil {
		return 0, err
	}

	log.Info().Int("season", season).Int("records", len(records)).Msg("keeper records imported")
	return len(records), nil
}

func (c *controller) ListKeeperRecords(ctx context.Context, season int) ([]model.KeeperRecord, error) {
	return c.db.ListKeeperRecords(ctx, season)
}

type keeperRecordsCSVReader struct {
	csvReader *csv.Reader
	line      int
	nameIdx   int
	teamIdx   int
	yearsIdx  int
	roundIdx  int
}

func newKeeperRecordsCSVReader(r io.Reader) (*keeperRecordsCSVReader, error) {
	kr := &keeperRecordsCSVReader{
		csvReader: csv.NewReader(r),
		line:      1,
		nameIdx:   -1,
		teamIdx:   -1,
		yearsIdx:  -1,
		roundIdx:  -1,
	}
	kr.csvReader.TrimLeadingSpace = true

	header, err := kr.csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading keeper records CSV file header: %v", err)
	}

	for i, h := range header {
		switch strings.ToUpper(strings.TrimSpace(h)) {
		case "PLAYER":
			kr.nameIdx = i
		case "TEAM":
			kr.teamIdx = i
		case "YEARS KEPT":
			kr.yearsIdx = i
		case "ROUND":
			kr.roundIdx = i
		}
	}

	if kr.nameIdx == -1 || kr.teamIdx == -1 || kr.yearsIdx == -1 || kr.roundIdx == -1 {
		return nil, model.NewValidationError("header", "missing required columns; player: %d, team: %d, years kept: %d, round: %d",
			kr.nameIdx, kr.teamIdx, kr.yearsIdx, kr.roundIdx)
	}

	return kr, nil
}

func (kr *keeperRecordsCSVReader) readLine() (*model.KeeperRecord, error) {
	record, err := kr.csvReader.Read()
	if errors.Is(err, io.EOF) {
		return nil, err
	}
	kr.line++
	field := fmt.Sprintf("line %d", kr.line)
	if err != nil {
		return nil, model.NewValidationError(field, "%v", err)
	}

	rec := &model.KeeperRecord{
		PlayerName:   strings.TrimSpace(record[kr.nameIdx]),
		OriginalTeam: strings.TrimSpace(record[kr.teamIdx]),
	}
	if rec.PlayerName == "" {
		return nil, model.NewValidationError(field, "player name is empty")
	}

	rec.YearsKept, err = strconv.Atoi(strings.TrimSpace(record[kr.yearsIdx]))
	if err != nil || rec.YearsKept < 1 {
		return nil, model.NewValidationError(field, "years kept '%s' is not a positive number", record[kr.yearsIdx])
	}

	rec.Round, err = strconv.Atoi(strings.TrimSpace(record[kr.roundIdx]))
	if err != nil || rec.Round < 1 || rec.Round > model.MaxCostRound {
		return nil, model.NewValidationError(field, "round '%s' is not between 1 and %d", record[kr.roundIdx], model.MaxCostRound)
	}

	return rec, nil
}
