// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/danielhkuo/party-vote/coordinator"
	"github.com/danielhkuo/party-vote/models"
)

// SubScoreCount is the number of criteria on the vote form.
const SubScoreCount = 5

// DefaultSubScore is the form's starting value for every criterion.
const DefaultSubScore = 3

// Recorder is the slice of the sync coordinator the services need.
type Recorder interface {
	Write(ctx context.Context, table string, row models.Row) coordinator.WriteResult
	Read(ctx context.Context, table string) models.Table
}

// DefaultScores returns the sub-scores used when a vote omits them.
func DefaultScores() []int {
	scores := make([]int, SubScoreCount)
	for i := range scores {
		scores[i] = DefaultSubScore
	}
	return scores
}

type voteInput struct {
	Performer string `json:"performer" validate:"required"`
	Scores    []int  `json:"scores" validate:"len=5,dive,min=0,max=5"`
}

// VoteResult is the outcome of an accepted vote.
type VoteResult struct {
	Accepted        bool
	Performer       string
	Total           int
	WrittenRemotely bool
}

type VoteService struct {
	rec Recorder
	log *slog.Logger
	now func() time.Time
}

func NewVoteService(rec Recorder, log *slog.Logger) *VoteService {
	if log == nil {
		log = slog.Default()
	}
	return &VoteService{rec: rec, log: log, now: time.Now}
}

// SubmitVote validates and records one vote. The performer name is trimmed
// and uppercased; the score is the sum of the sub-scores.
func (s *VoteService) SubmitVote(ctx context.Context, performerName string, subScores []int) (VoteResult, error) {
	in := voteInput{Performer: strings.ToUpper(strings.TrimSpace(performerName)), Scores: subScores}
	if err := check(in); err != nil {
		return VoteResult{}, err
	}

	total := 0
	for _, v := range in.Scores {
		total += v
	}

	vote := models.VoteRecord{
		PerformerName: in.Performer,
		Score:         total,
		Timestamp:     s.now().Format(models.TimeLayout),
	}
	res := s.rec.Write(ctx, models.TableVotes, vote.Row())

	s.log.Info("vote recorded",
		"performer", vote.PerformerName,
		"total", total,
		"remote", res.WrittenRemotely,
	)

	return VoteResult{
		Accepted:        true,
		Performer:       vote.PerformerName,
		Total:           total,
		WrittenRemotely: res.WrittenRemotely,
	}, nil
}

// ListVotes returns every decodable vote in insertion order.
func (s *VoteService) ListVotes(ctx context.Context) ([]models.VoteRecord, error) {
	t := s.rec.Read(ctx, models.TableVotes)

	votes, bad, err := models.DecodeVotes(t)
	if err != nil {
		return nil, fmt.Errorf("failed to decode votes: %w", err)
	}
	for _, rowErr := range bad {
		s.log.Warn("skipping malformed vote row", "error", rowErr)
	}
	return votes, nil
}

// ComputeRanking groups votes by performer and orders them by mean score,
// highest first. Ties keep the order in which performers first appear.
// topN <= 0 returns every performer.
func (s *VoteService) ComputeRanking(ctx context.Context, topN int) ([]models.RankingEntry, error) {
	votes, err := s.ListVotes(ctx)
	if err != nil {
		return nil, err
	}
	return Rank(votes, topN), nil
}

// Rank computes the ranking for an already decoded vote list.
func Rank(votes []models.VoteRecord, topN int) []models.RankingEntry {
	type group struct {
		sum   int
		count int
	}

	var order []string
	groups := make(map[string]*group)
	for _, v := range votes {
		g, ok := groups[v.PerformerName]
		if !ok {
			g = &group{}
			groups[v.PerformerName] = g
			order = append(order, v.PerformerName)
		}
		g.sum += v.Score
		g.count++
	}

	entries := make([]models.RankingEntry, 0, len(order))
	for _, name := range order {
		g := groups[name]
		entries = append(entries, models.RankingEntry{
			PerformerName: name,
			MeanScore:     float64(g.sum) / float64(g.count),
			VoteCount:     g.count,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].MeanScore > entries[j].MeanScore
	})

	if topN > 0 && len(entries) > topN {
		entries = entries[:topN]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
