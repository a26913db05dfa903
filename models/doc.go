// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines records, tables, and API request/response types.

# Tables

A Table is a named, ordered sequence of rows with a header:

	votos:        Artista, Puntos, Hora
	dedicatorias: Nombre, Mensaje

Tables are append-only from the application's point of view. Insertion
order defines recency, so "newest first" is reverse iteration.

# Records

  - VoteRecord: performer (trimmed, uppercase), score (0-25), time (HH:MM:SS)
  - DedicationRecord: author ("Anonymous" when empty), message

Records encode to rows with Row() and decode with DecodeVotes and
DecodeDedications. A missing header column is a *MissingColumnError; a
single malformed row is reported as a *RowError and skipped.

# Request Types

  - SubmitVoteRequest: performer, scores (five values, 0-5 each)
  - SubmitDedicationRequest: author, message

# Response Types

  - SubmitVoteResponse: accepted, performer, total, written_remotely
  - SubmitDedicationResponse: accepted, author, written_remotely
  - RankingResponse: podium, votes, empty, remote
  - VoteListResponse, DedicationFeedResponse: listing plus empty flag
  - StatusResponse: connectivity indicator and session counters
  - ErrorResponse: error, message, details
*/
package models
