// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danielhkuo/party-vote/models"
	"github.com/danielhkuo/party-vote/testutil"
)

// TestConcurrentVoteSubmissions verifies that guests voting at the same time
// from different sessions all end up in the shared table
func TestConcurrentVoteSubmissions(t *testing.T) {
	store := testutil.NewTestStore(t)

	numVoters := 10
	cfg := getTestConfig()
	// Each lost race means another voter committed, so this many retries
	// always suffices
	cfg.MaxWriteRetries = numVoters
	cfg.StoreTimeout = 10 * time.Second
	handler := NewVoteHandler()
	mgr := newManager(store, cfg)

	var remoteCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(voterIdx int) {
			defer wg.Done()

			c := &client{mgr: mgr}
			req := testutil.MakeRequest("POST", "/votes", models.SubmitVoteRequest{
				Performer: "Singer" + string(rune('A'+voterIdx%3)),
				Scores:    []int{voterIdx % 6, 3, 3, 3, 3},
			}, nil)

			w := c.do(t, handler.SubmitVote, req)
			if w.Code != http.StatusCreated {
				t.Errorf("Voter %d: expected 201, got %d", voterIdx, w.Code)
				return
			}

			var resp models.SubmitVoteResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Errorf("Voter %d: bad response: %v", voterIdx, err)
				return
			}
			if resp.WrittenRemotely {
				remoteCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if got := remoteCount.Load(); got != int32(numVoters) {
		t.Errorf("Expected %d remote writes, got %d", numVoters, got)
	}

	table, err := store.Read(context.Background(), models.TableVotes)
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != numVoters {
		t.Errorf("Expected %d votes in the shared table, got %d", numVoters, table.Len())
	}
	if mgr.Len() != numVoters {
		t.Errorf("Expected %d sessions, got %d", numVoters, mgr.Len())
	}
}
