package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/tunnelsnakes/sandlot/model"
)

const jobClassifyNA = "classify-na-eligibility"

// ClassifyNAEligibility looks up every rostered player in the MLB Stats API
// and records whether he can be kept in an NA slot. Players that can't be
// matched to exactly one MLB person keep their current verdict.
func (c *controller) ClassifyNAEligibility(ctx context.Context) (*model.BatchReport, error) {
	if c.mlbStats == nil {
		return nil, errors.New("mlb stats client is not configured")
	}

	roster, err := c.db.ListRosterPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading rosters: %w", err)
	}

	report := c.newBatchReport(jobClassifyNA)
	for i := range roster {
		p := roster[i].Player
		report.Processed++

		if i > 0 {
			if err := c.throttle(ctx, c.externalRequestDelay); err != nil {
				c.finishBatchReport(report)
				return report, err
			}
		}

		changed, err := c.classifyPlayer(ctx, p)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				c.finishBatchReport(report)
				return report, ctxErr
			}
			if errors.Is(err, errNoMLBMatch) {
				report.AddAnomaly(model.Anomaly{
					Kind:    model.ANOMALY_NO_MATCH,
					Subject: p.FullName,
					Detail:  "no MLB player with that name",
				})
			} else {
				report.AddAnomaly(model.AnomalyFromError(p.FullName, err))
			}
			continue
		}

		if changed {
			report.Updated++
		} else {
			report.Unchanged++
		}
	}

	c.finishBatchReport(report)
	return report, nil
}

var errNoMLBMatch = errors.New("no mlb match")

// classifyPlayer returns true when the player's NA verdict or stats changed
// and were saved.
func (c *controller) classifyPlayer(ctx context.Context, p *model.Player) (bool, error) {
	id := p.MLBID
	if id == 0 {
		var err error
		id, err = c.findMLBPerson(ctx, p)
		if err != nil {
			return false, err
		}
		if err := c.throttle(ctx, c.externalRequestDelay); err != nil {
			return false, err
		}
	}

	person, stats, err := c.mlbStats.GetCareerStats(ctx, id)
	if err != nil {
		return false, fmt.Errorf("error getting career stats: %w", err)
	}

	primary := person.PrimaryPosition
	if primary == model.POS_UNKNOWN {
		primary = p.PrimaryPosition
	}
	eligible, reason := model.ClassifyNA(person.DebutDate, stats.AtBats, stats.InningsPitched, primary)

	changed := p.SetNATag(eligible)
	changed = changed ||
		p.MLBID != person.ID ||
		p.CareerAB != stats.AtBats ||
		p.CareerIP != stats.InningsPitched ||
		!p.MLBDebutDate.Equal(person.DebutDate) ||
		p.IsNAEligible != eligible ||
		p.NAReason != reason
	if !changed {
		return false, nil
	}

	p.MLBID = person.ID
	p.CareerAB = stats.AtBats
	p.CareerIP = stats.InningsPitched
	p.MLBDebutDate = person.DebutDate
	p.IsNAEligible = eligible
	p.NAReason = reason

	if err := c.db.UpdatePlayerNA(ctx, p); err != nil {
		return false, &model.TransientWriteError{Subject: p.FullName, Err: err}
	}
	return true, nil
}

// findMLBPerson searches by name and narrows several candidates down by the
// player's team.
func (c *controller) findMLBPerson(ctx context.Context, p *model.Player) (int64, error) {
	name := model.NormalizeKeeperName(p.FullName)
	people, err := c.mlbStats.SearchPeople(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("error searching for '%s': %w", name, err)
	}

	switch len(people) {
	case 0:
		return 0, errNoMLBMatch
	case 1:
		return people[0].ID, nil
	}

	candidates := make([]string, 0, len(people))
	var onTeam []model.MLBPerson
	for _, person := range people {
		candidates = append(candidates, fmt.Sprintf("%s (%d, %s)", person.FullName, person.ID, person.Team))
		if p.Team != nil && p.Team != model.TEAM_FA && p.Team.Equals(person.Team) {
			onTeam = append(onTeam, person)
		}
	}
	if len(onTeam) == 1 {
		return onTeam[0].ID, nil
	}

	return 0, &model.AmbiguousMatchError{Name: name, Candidates: candidates}
}
