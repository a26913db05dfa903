// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package coordinator decides, per operation, whether a session talks to the
shared record store or only to its local cache.

# Connectivity State

A Coordinator starts UNKNOWN and is probed by the first operation of a
probe window. Any ConnectivityError or SchemaError from the store moves it
to DOWN; from then on the store is bypassed until the window ends. Under
PolicySession the window is the session, under PolicyView every call to
BeginView starts a new one.

# Writes

Every row is appended to the local cache first, so a write never fails:

	res := c.Write(ctx, models.TableVotes, vote.Row())
	if !res.WrittenRemotely {
		// kept locally only
	}

The remote append is a whole-table read, append and replace. With
StrategyReplace concurrent writers may overwrite each other. With
StrategyOptimistic (the default) a VersionedStore replace is retried on
ErrVersionConflict up to MaxRetries times.

# Reads

Read returns the remote table while the store is reachable and the cache
snapshot otherwise. The two are never merged.
*/
package coordinator
