// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package services holds the vote and dedication use cases. Both validate
input, turn it into a record and hand the row to the session's sync
coordinator; neither knows whether the row reached the shared store.

	votes := services.NewVoteService(sess.Coordinator, log)
	res, err := votes.SubmitVote(ctx, " ana ", []int{5, 4, 3, 5, 5})
	// res.Performer == "ANA", res.Total == 22

	podium, err := votes.ComputeRanking(ctx, 3)

Invalid input returns a *ValidationError whose Fields map is keyed by the
JSON field name (performer, scores[2], message).
*/
package services
