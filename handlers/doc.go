// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the party-vote API.

# Handler Types

Each handler is a struct; only StatusHandler carries config:

  - VoteHandler: Vote submission, vote table and ranking
  - DedicationHandler: Dedication submission and message feed
  - ExportHandler: CSV download of the session's local tables
  - StatusHandler: Connectivity indicator and session summary

Handlers are created via constructor functions:

	voteHandler := handlers.NewVoteHandler()
	statusHandler := handlers.NewStatusHandler(cfg)

Every handler expects to run inside middleware.WithSession and works on
the session found in the request context.

# Votes

	POST /votes            → SubmitVote ({performer, scores}, scores default to 3 each)
	GET  /votes            → ListVotes (full table, insertion order)
	GET  /ranking?top=N    → GetRanking (podium of N, default 3, plus full table)

# Dedications

	POST /dedications → SubmitDedication ({author, message})
	GET  /dedications → ListDedications (newest first)

# Degraded Mode

Responses carry "remote" (up, down or unknown) and, for submissions,
"written_remotely". When the shared store is down a session keeps working
against its own local cache; listings then show only what that session
submitted. Empty listings return "empty": true with a "Nothing yet" message.

# Export

	GET /export/votos.csv
	GET /export/dedicatorias.csv

Downloads are served as attachments and always come from the local cache.
*/
package handlers
