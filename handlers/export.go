// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/party-vote/export"
	"github.com/danielhkuo/party-vote/middleware"
)

type ExportHandler struct{}

func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// DownloadCSV handles GET /export/{file}, where file is "<table>.csv".
// Only the session's local copy is exported.
func (h *ExportHandler) DownloadCSV(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	table, found := strings.CutSuffix(r.PathValue("file"), ".csv")
	if !found || !export.Exportable(table) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Unknown table")
		return
	}

	snapshot := sess.Cache().Snapshot(table)
	body, err := export.CSV(snapshot)
	if err != nil {
		slog.Error("failed to export table", "error", err, "table", table, "session", sess.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to export table")
		return
	}

	slog.Info("table exported",
		"table", table,
		"rows", snapshot.Len(),
		"size", humanize.Bytes(uint64(len(body))),
		"session", sess.ID,
	)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(table)))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
