// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/danielhkuo/party-vote/models"
)

type dedicationInput struct {
	Message string `json:"message" validate:"required"`
}

// DedicationResult is the outcome of an accepted dedication.
type DedicationResult struct {
	Accepted        bool
	Author          string
	WrittenRemotely bool
}

type DedicationService struct {
	rec Recorder
	log *slog.Logger
}

func NewDedicationService(rec Recorder, log *slog.Logger) *DedicationService {
	if log == nil {
		log = slog.Default()
	}
	return &DedicationService{rec: rec, log: log}
}

// SubmitDedication records a guest message. A blank author is stored as
// models.AnonymousAuthor; a blank message is rejected.
func (s *DedicationService) SubmitDedication(ctx context.Context, author, message string) (DedicationResult, error) {
	if err := check(dedicationInput{Message: strings.TrimSpace(message)}); err != nil {
		return DedicationResult{}, err
	}

	author = strings.TrimSpace(author)
	if author == "" {
		author = models.AnonymousAuthor
	}

	d := models.DedicationRecord{Author: author, Message: message}
	res := s.rec.Write(ctx, models.TableDedications, d.Row())

	s.log.Info("dedication recorded",
		"author", author,
		"length", len(message),
		"remote", res.WrittenRemotely,
	)

	return DedicationResult{Accepted: true, Author: author, WrittenRemotely: res.WrittenRemotely}, nil
}

// ListDedications returns every message, newest first.
func (s *DedicationService) ListDedications(ctx context.Context) ([]models.DedicationRecord, error) {
	t := s.rec.Read(ctx, models.TableDedications)

	out, bad, err := models.DecodeDedications(t)
	if err != nil {
		return nil, fmt.Errorf("failed to decode dedications: %w", err)
	}
	for _, rowErr := range bad {
		s.log.Warn("skipping malformed dedication row", "error", rowErr)
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
