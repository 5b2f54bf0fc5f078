package controller

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tunnelsnakes/sandlot/model"
)

const jobImportECR = "import-ecr"

// ImportECR sets every player's ECR from a FantasyPros rankings CSV. Names are
// compared after folding accents and punctuation away. When one name belongs
// to more than one ranked player the team decides. Rows without a rank are
// skipped, rows with a rank that isn't a number are reported.
func (c *controller) ImportECR(ctx context.Context, r io.Reader) (*model.BatchReport, error) {
	rankings, unread, err := readRankings(r)
	if err != nil {
		return nil, err
	}

	players, err := c.db.ListPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading players: %w", err)
	}

	report := c.newBatchReport(jobImportECR)
	for _, a := range unread {
		report.AddAnomaly(a)
	}
	for _, p := range players {
		report.Processed++

		line, err := matchRanking(rankings, &p)
		if err != nil {
			if errors.Is(err, errNoRanking) {
				report.AddAnomaly(model.Anomaly{
					Kind:    model.ANOMALY_NO_MATCH,
					Subject: p.FullName,
					Detail:  "not in the rankings",
				})
			} else {
				report.AddAnomaly(model.AnomalyFromError(p.FullName, err))
			}
			continue
		}

		if p.ECR == line.rank {
			report.Unchanged++
			continue
		}

		if err := c.db.UpdatePlayerECR(ctx, p.ID, line.rank); err != nil {
			report.AddAnomaly(model.AnomalyFromError(p.FullName,
				&model.TransientWriteError{Subject: p.FullName, Err: err}))
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

var (
	errNoRanking = errors.New("no ranking")
	errNoRank    = errors.New("row has no rank")
)

type badRankError struct {
	name string
	rank string
}

func (e *badRankError) Error() string {
	return fmt.Sprintf("rank '%s' is not a number", e.rank)
}

func rankingKey(name string) string {
	return model.FoldName(model.NormalizeKeeperName(name))
}

// readRankings reads the whole file keyed by folded player name. Rows it
// couldn't use come back as anomalies.
func readRankings(r io.Reader) (map[string][]*csvLine, []model.Anomaly, error) {
	reader, err := newFantasyProsCSVReader(r)
	if err != nil {
		return nil, nil, err
	}

	result := make(map[string][]*csvLine)
	var unread []model.Anomaly
	for {
		line, err := reader.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if errors.Is(err, errNoRank) {
				continue
			}
			var badRank *badRankError
			if errors.As(err, &badRank) {
				unread = append(unread, model.Anomaly{
					Kind:    model.ANOMALY_LOOKUP_FAILED,
					Subject: badRank.name,
					Detail:  badRank.Error(),
				})
				continue
			}
			return nil, nil, err
		}

		key := rankingKey(line.name)
		result[key] = append(result[key], line)
	}

	return result, unread, nil
}

func matchRanking(rankings map[string][]*csvLine, p *model.Player) (*csvLine, error) {
	lines := rankings[rankingKey(p.FullName)]
	switch len(lines) {
	case 0:
		return nil, errNoRanking
	case 1:
		return lines[0], nil
	}

	candidates := make([]string, 0, len(lines))
	var onTeam []*csvLine
	for _, l := range lines {
		candidates = append(candidates, l.String())
		if p.Team != nil && p.Team.Equals(l.team) {
			onTeam = append(onTeam, l)
		}
	}
	if len(onTeam) == 1 {
		return onTeam[0], nil
	}
	return nil, &model.AmbiguousMatchError{Name: p.FullName, Candidates: candidates}
}

type fantasyprosCSVReader struct {
	csvReader *csv.Reader
	rankIdx   int
	nameIdx   int
	teamIdx   int
	posIdx    int
}

type csvLine struct {
	rank int32
	name string
	team *model.MLBTeam
	pos  []model.Position
}

func (l *csvLine) String() string {
	return fmt.Sprintf("%d - %s %s %s", l.rank, l.name, l.team.String(), model.FormatPositionList(l.pos))
}

func newFantasyProsCSVReader(r io.Reader) (*fantasyprosCSVReader, error) {
	// Some exports start with a byte order mark.
	br := bufio.NewReader(r)
	if bom, _, err := br.ReadRune(); err == nil && bom != '\ufeff' {
		br.UnreadRune()
	}

	fp := &fantasyprosCSVReader{
		csvReader: csv.NewReader(br),
		rankIdx:   -1,
		nameIdx:   -1,
		teamIdx:   -1,
		posIdx:    -1,
	}
	fp.csvReader.FieldsPerRecord = -1

	header, err := fp.csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading fantasypros CSV file header: %v", err)
	}

	for i, p := range header {
		p = strings.TrimSpace(p)
		if p == "RK" {
			fp.rankIdx = i
		} else if p == "PLAYER NAME" {
			fp.nameIdx = i
		} else if p == "TEAM" {
			fp.teamIdx = i
		} else if p == "POS" {
			fp.posIdx = i
		}
	}

	if fp.rankIdx == -1 || fp.nameIdx == -1 || fp.teamIdx == -1 || fp.posIdx == -1 {
		return nil, model.NewValidationError("header", "error finding required columns; rank: %d, name: %d, team: %d, pos: %d",
			fp.rankIdx, fp.nameIdx, fp.teamIdx, fp.posIdx)
	}

	return fp, nil
}

func (fp *fantasyprosCSVReader) readLine() (*csvLine, error) {
	record, err := fp.csvReader.Read()
	if errors.Is(err, io.EOF) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("error reading line in rankings file (%v): %w", record, err)
	}

	maxIdx := max(fp.rankIdx, fp.nameIdx, fp.teamIdx, fp.posIdx)
	if len(record) <= maxIdx {
		return nil, model.NewValidationError("rankings", "line has %d columns, expected at least %d (%v)", len(record), maxIdx+1, record)
	}

	line := csvLine{}
	line.name = strings.TrimSpace(record[fp.nameIdx])

	rk := strings.TrimSpace(record[fp.rankIdx])
	if rk == "" {
		return nil, errNoRank
	}
	rank, err := strconv.Atoi(rk)
	if err != nil || rank < 1 {
		return nil, &badRankError{name: line.name, rank: rk}
	}
	line.rank = int32(rank)

	t := strings.TrimSpace(record[fp.teamIdx])
	line.team = model.ParseTeam(t)
	if line.team == model.TEAM_FA && t != "" && !strings.EqualFold(t, "FA") {
		return nil, model.NewValidationError("rankings", "bad team name '%s' for %s", t, line.name)
	}

	line.pos = model.ParsePositionList(record[fp.posIdx])

	return &line, nil
}
