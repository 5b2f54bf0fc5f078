package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/tunnelsnakes/sandlot/model"
)

const jobSeedDraftCosts = "seed-draft-costs"

// SeedDraftCosts sets the keeper cost of every rostered player from last
// season's Yahoo draft: the round he was drafted in, or the last round for
// players picked up as free agents. Costs entered by hand are never replaced.
func (c *controller) SeedDraftCosts(ctx context.Context) (*model.BatchReport, error) {
	if c.previousLeagueKey == "" {
		return nil, errors.New("previous season's yahoo league key is not configured")
	}

	httpClient, err := c.yahooHTTPClient(ctx)
	if err != nil {
		return nil, err
	}

	results, err := c.yahoo.GetDraftResults(ctx, httpClient, c.previousLeagueKey)
	if err != nil {
		return nil, fmt.Errorf("error getting draft results for %s: %w", c.previousLeagueKey, err)
	}

	// Player keys change prefix every season, the number after ".p." doesn't.
	drafted := make(map[string]model.DraftResult, len(results))
	for _, r := range results {
		drafted[model.YahooPlayerID(r.PlayerKey)] = r
	}

	roster, err := c.db.ListRosterPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading rosters: %w", err)
	}

	report := c.newBatchReport(jobSeedDraftCosts)
	for _, r := range roster {
		report.Processed++

		id := model.YahooPlayerID(r.Player.YahooPlayerKey)
		if id == "" || r.KeeperCostSource == model.COST_SOURCE_MANUAL {
			report.Skipped++
			continue
		}

		round := model.MaxCostRound
		label := model.FACostLabel()
		source := model.COST_SOURCE_FA
		if d, ok := drafted[id]; ok {
			// NA round picks cost the last regular round.
			round = min(d.Round, model.MaxCostRound)
			label = model.DraftedCostLabel(d.Round)
			source = model.COST_SOURCE_DRAFT
		}

		if r.KeeperCostRound == round && r.KeeperCostLabel == label && r.KeeperCostSource == source {
			report.Unchanged++
			continue
		}

		if err := c.db.UpdateKeeperCost(ctx, r.ID, round, label, source); err != nil {
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

	c.finishBatchReport(report)
	return report, nil
}
