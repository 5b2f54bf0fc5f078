package model

import (
	"errors"
	"time"
)

type AnomalyKind string

const (
	// A keeper record from last season with no player on a roster this season.
	ANOMALY_MISSING_ROSTER AnomalyKind = "missing_roster"
	ANOMALY_WRITE_FAILED   AnomalyKind = "write_failed"
	ANOMALY_NO_MATCH       AnomalyKind = "no_match"
	ANOMALY_AMBIGUOUS      AnomalyKind = "ambiguous"
	ANOMALY_LOOKUP_FAILED  AnomalyKind = "lookup_failed"
)

// Anomaly is something a batch job couldn't handle on its own and needs a
// person to look at. Anomalies never stop a batch.
type Anomaly struct {
	Kind    AnomalyKind `json:"kind"`
	Subject string      `json:"subject"`
	Detail  string      `json:"detail"`
}

// AnomalyFromError picks the anomaly kind from the error's type.
func AnomalyFromError(subject string, err error) Anomaly {
	kind := ANOMALY_LOOKUP_FAILED
	var ambiguous *AmbiguousMatchError
	var write *TransientWriteError
	switch {
	case errors.As(err, &ambiguous):
		kind = ANOMALY_AMBIGUOUS
	case errors.As(err, &write):
		kind = ANOMALY_WRITE_FAILED
	}
	return Anomaly{Kind: kind, Subject: subject, Detail: err.Error()}
}

// BatchReport summarizes one run of a batch job. Skipped counts the inputs
// that the job deliberately left alone, e.g. players who are not returning
// keepers when recomputing keeper costs.
type BatchReport struct {
	RunID     string    `json:"runId"`
	Job       string    `json:"job"`
	Started   time.Time `json:"started"`
	Finished  time.Time `json:"finished"`
	Processed int       `json:"processed"`
	Updated   int       `json:"updated"`
	Unchanged int       `json:"unchanged"`
	Skipped   int       `json:"skipped"`
	Anomalies []Anomaly `json:"anomalies"`
}

func (r *BatchReport) AddAnomaly(a Anomaly) {
	r.Anomalies = append(r.Anomalies, a)
}

func (r *BatchReport) CountAnomalies(kind AnomalyKind) int {
	n := 0
	for _, a := range r.Anomalies {
		if a.Kind == kind {
			n++
		}
	}
	return n
}
