package controller

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tunnelsnakes/sandlot/model"
)

func (c *controller) newBatchReport(job string) *model.BatchReport {
	r := &model.BatchReport{
		RunID:     uuid.NewString(),
		Job:       job,
		Started:   c.clock.Now(),
		Anomalies: make([]model.Anomaly, 0),
	}
	log.Info().Str("run_id", r.RunID).Str("job", job).Msg("batch starting")
	return r
}

func (c *controller) finishBatchReport(r *model.BatchReport) {
	r.Finished = c.clock.Now()
	for _, a := range r.Anomalies {
		log.Warn().
			Str("run_id", r.RunID).
			Str("kind", string(a.Kind)).
			Str("subject", a.Subject).
			Msg(a.Detail)
	}
	log.Info().
		Str("run_id", r.RunID).
		Str("job", r.Job).
		Int("processed", r.Processed).
		Int("updated", r.Updated).
		Int("unchanged", r.Unchanged).
		Int("skipped", r.Skipped).
		Int("anomalies", len(r.Anomalies)).
		Dur("took", r.Finished.Sub(r.Started)).
		Msg("batch finished")
}

// throttle waits between requests to an outside service. It returns early with
// the context's error if the context is done first.
func (c *controller) throttle(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := c.clock.Timer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
