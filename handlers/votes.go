// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/party-vote/middleware"
	"github.com/danielhkuo/party-vote/models"
	"github.com/danielhkuo/party-vote/services"
)

// DefaultPodiumSize is the number of performers on the podium.
const DefaultPodiumSize = 3

type VoteHandler struct{}

func NewVoteHandler() *VoteHandler {
	return &VoteHandler{}
}

// SubmitVote handles POST /votes
func (h *VoteHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// The form starts every criterion at 3
	if req.Scores == nil {
		req.Scores = services.DefaultScores()
	}

	res, err := sess.Votes.SubmitVote(r.Context(), req.Performer, req.Scores)
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		middleware.ValidationResponse(w, "Invalid vote", verr.Fields)
		return
	}
	if err != nil {
		slog.Error("failed to submit vote", "error", err, "session", sess.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit vote")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitVoteResponse{
		Accepted:        res.Accepted,
		Performer:       res.Performer,
		Total:           res.Total,
		WrittenRemotely: res.WrittenRemotely,
	})
}

// ListVotes handles GET /votes
func (h *VoteHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	votes, err := sess.Votes.ListVotes(r.Context())
	if err != nil {
		slog.Error("failed to list votes", "error", err, "session", sess.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to list votes")
		return
	}

	resp := models.VoteListResponse{
		Votes:  votes,
		Empty:  len(votes) == 0,
		Remote: sess.Coordinator.State().String(),
	}
	if resp.Empty {
		resp.Message = models.NothingYet
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetRanking handles GET /ranking?top=N
func (h *VoteHandler) GetRanking(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	top := DefaultPodiumSize
	if raw := r.URL.Query().Get("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "top must be an integer")
			return
		}
		top = n
	}

	// One read feeds both the podium and the full table
	votes, err := sess.Votes.ListVotes(r.Context())
	if err != nil {
		slog.Error("failed to compute ranking", "error", err, "session", sess.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to compute ranking")
		return
	}

	resp := models.RankingResponse{
		Podium: services.Rank(votes, top),
		Votes:  votes,
		Empty:  len(votes) == 0,
		Remote: sess.Coordinator.State().String(),
	}
	if resp.Empty {
		resp.Message = models.NothingYet
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}
