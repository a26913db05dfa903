// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/party-vote/cliparse"
	"github.com/danielhkuo/party-vote/middleware"
	"github.com/danielhkuo/party-vote/models"
)

type StatusHandler struct {
	cfg cliparse.Config
}

func NewStatusHandler(cfg cliparse.Config) *StatusHandler {
	return &StatusHandler{cfg: cfg}
}

// GetStatus handles GET /status. It does not probe the store; remote is
// whatever the session's coordinator last observed.
func (h *StatusHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{
		Remote:           sess.Coordinator.State().String(),
		SessionID:        sess.ID,
		SessionAge:       humanize.Time(sess.CreatedAt),
		LocalVotes:       sess.Cache().Len(models.TableVotes),
		LocalDedications: sess.Cache().Len(models.TableDedications),
		ConflictStrategy: h.cfg.ConflictStrategy,
		ProbePolicy:      h.cfg.ProbePolicy,
	})
}
