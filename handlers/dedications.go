// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/party-vote/middleware"
	"github.com/danielhkuo/party-vote/models"
	"github.com/danielhkuo/party-vote/services"
)

type DedicationHandler struct{}

func NewDedicationHandler() *DedicationHandler {
	return &DedicationHandler{}
}

// SubmitDedication handles POST /dedications
func (h *DedicationHandler) SubmitDedication(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req models.SubmitDedicationRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	res, err := sess.Dedications.SubmitDedication(r.Context(), req.Author, req.Message)
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		middleware.ValidationResponse(w, "Message cannot be blank", verr.Fields)
		return
	}
	if err != nil {
		slog.Error("failed to submit dedication", "error", err, "session", sess.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit dedication")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitDedicationResponse{
		Accepted:        res.Accepted,
		Author:          res.Author,
		WrittenRemotely: res.WrittenRemotely,
	})
}

// ListDedications handles GET /dedications
func (h *DedicationHandler) ListDedications(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	feed, err := sess.Dedications.ListDedications(r.Context())
	if err != nil {
		slog.Error("failed to list dedications", "error", err, "session", sess.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to list dedications")
		return
	}

	resp := models.DedicationFeedResponse{
		Dedications: feed,
		Empty:       len(feed) == 0,
		Remote:      sess.Coordinator.State().String(),
	}
	if resp.Empty {
		resp.Message = models.NothingYet
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}
