// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/party-vote/models"
	"github.com/danielhkuo/party-vote/testutil"
)

func TestDownloadCSV(t *testing.T) {
	cfg := getTestConfig()
	votes := NewVoteHandler()
	exports := NewExportHandler()

	store := newMemoryStore()
	testutil.SeedTable(t, store, models.TableVotes, models.Row{"OTHER", "9", "20:00:00"})
	c := &client{mgr: newManager(store, cfg)}

	w := c.do(t, votes.SubmitVote, testutil.MakeRequest("POST", "/votes",
		models.SubmitVoteRequest{Performer: "ana", Scores: []int{4, 4, 4, 4, 4}}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	req := httptest.NewRequest("GET", "/export/votos.csv", nil)
	req.SetPathValue("file", "votos.csv")
	w = c.do(t, exports.DownloadCSV, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	if ct := w.Header().Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Errorf("Unexpected Content-Type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="votos.csv"` {
		t.Errorf("Unexpected Content-Disposition %q", cd)
	}

	records, err := csv.NewReader(w.Body).ReadAll()
	if err != nil {
		t.Fatalf("Invalid CSV: %v", err)
	}
	// Only the session's own vote, never the shared table
	if len(records) != 2 {
		t.Fatalf("Expected header + 1 row, got %d", len(records))
	}
	if records[1][0] != "ANA" || records[1][1] != "20" {
		t.Errorf("Unexpected row %v", records[1])
	}
}

func TestDownloadCSV_UnknownTable(t *testing.T) {
	cfg := getTestConfig()
	exports := NewExportHandler()

	for _, file := range []string{"sheet.csv", "votos.json", "votos"} {
		c := &client{mgr: newManager(newMemoryStore(), cfg)}
		req := httptest.NewRequest("GET", "/export/"+file, nil)
		req.SetPathValue("file", file)

		w := c.do(t, exports.DownloadCSV, req)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	}
}
