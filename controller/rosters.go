package controller

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tunnelsnakes/sandlot/db"
	"github.com/tunnelsnakes/sandlot/model"
)

const jobSyncRosters = "sync-rosters"

// SyncRosters copies every team's current Yahoo roster into the database.
// Players new to the league are added. Players who changed teams are moved
// with their cost, and their keeper status starts over as undecided so the
// new team's keeper limits hold. The NA tag of a known player is left as the
// NA classifier set it.
func (c *controller) SyncRosters(ctx context.Context) (*model.BatchReport, error) {
	httpClient, err := c.yahooHTTPClient(ctx)
	if err != nil {
		return nil, err
	}

	report := c.newBatchReport(jobSyncRosters)
	for i, m := range c.directory.All() {
		if i > 0 {
			if err := c.throttle(ctx, c.externalRequestDelay); err != nil {
				c.finishBatchReport(report)
				return report, err
			}
		}

		players, err := c.yahoo.GetRoster(ctx, httpClient, m.YahooTeamKey)
		if err != nil {
			report.AddAnomaly(model.AnomalyFromError(m.TeamName, fmt.Errorf("error getting roster: %w", err)))
			continue
		}

		for _, yp := range players {
			report.Processed++
			changed, err := c.syncRosterPlayer(ctx, &yp, m.YahooTeamKey)
			if err != nil {
				report.AddAnomaly(model.AnomalyFromError(yp.FullName, err))
				continue
			}
			if changed {
				report.Updated++
			} else {
				report.Unchanged++
			}
		}
	}

	c.finishBatchReport(report)
	return report, nil
}

func (c *controller) syncRosterPlayer(ctx context.Context, yp *model.YahooPlayer, teamKey string) (bool, error) {
	p, err := c.db.GetPlayerByYahooKey(ctx, yp.Key)
	if err != nil && !errors.Is(err, db.ErrPlayerNotFound) {
		return false, fmt.Errorf("error looking up player: %w", err)
	}

	changed := false
	if p == nil {
		p = &model.Player{
			YahooPlayerKey:    yp.Key,
			FullName:          yp.FullName,
			Team:              yp.Team,
			PrimaryPosition:   yp.PrimaryPosition,
			EligiblePositions: yp.EligiblePositions,
		}
		changed = true
	} else {
		eligible := slices.Clone(yp.EligiblePositions)
		hadNA := p.HasNATag()
		orig := p.EligiblePositions
		p.EligiblePositions = eligible
		p.SetNATag(false)
		p.SetNATag(hadNA)

		if p.FullName != yp.FullName ||
			!p.Team.Equals(yp.Team) ||
			p.PrimaryPosition != yp.PrimaryPosition ||
			!slices.Equal(orig, p.EligiblePositions) {
			changed = true
		}
		p.FullName = yp.FullName
		p.Team = yp.Team
		p.PrimaryPosition = yp.PrimaryPosition
	}

	if changed {
		if err := c.db.SavePlayer(ctx, p); err != nil {
			return false, &model.TransientWriteError{Subject: yp.FullName, Err: err}
		}
	}

	moved, err := c.db.UpsertRosterPlayer(ctx, p.ID, teamKey)
	if err != nil {
		return false, &model.TransientWriteError{Subject: yp.FullName, Err: err}
	}
	return changed || moved, nil
}

// RunPeriodicRosterSync syncs rosters from Yahoo every frequency until
// shutdown is closed.
func (c *controller) RunPeriodicRosterSync(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	ticker := c.clock.Ticker(frequency)
	defer ticker.Stop()
	defer wg.Done()

	for {
		select {
		case <-shutdown:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			if _, err := c.SyncRosters(ctx); err != nil {
				log.Error().Err(err).Msg("periodic roster sync failed")
			}
			cancel()
		}
	}
}
