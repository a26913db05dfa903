// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/party-vote/cliparse"
	"github.com/danielhkuo/party-vote/handlers"
	"github.com/danielhkuo/party-vote/middleware"
	"github.com/danielhkuo/party-vote/session"
)

func NewRouter(mgr *session.Manager, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	voteHandler := handlers.NewVoteHandler()
	dedicationHandler := handlers.NewDedicationHandler()
	exportHandler := handlers.NewExportHandler()
	statusHandler := handlers.NewStatusHandler(cfg)

	withSession := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.WithSession(mgr, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Votes and ranking
	mux.HandleFunc("POST /votes", withSession(voteHandler.SubmitVote))
	mux.HandleFunc("GET /votes", withSession(voteHandler.ListVotes))
	mux.HandleFunc("GET /ranking", withSession(voteHandler.GetRanking))

	// Dedications
	mux.HandleFunc("POST /dedications", withSession(dedicationHandler.SubmitDedication))
	mux.HandleFunc("GET /dedications", withSession(dedicationHandler.ListDedications))

	// Local cache export
	mux.HandleFunc("GET /export/{file}", withSession(exportHandler.DownloadCSV))

	// Connectivity indicator
	mux.HandleFunc("GET /status", withSession(statusHandler.GetStatus))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("party-vote API v1"))
	})

	return mux
}
