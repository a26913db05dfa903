// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session keeps per-guest state between requests.

A Session owns a LocalCache and a SyncCoordinator built over the shared
record store, plus the vote and dedication services bound to them. It is
identified by a random UUID carried in the pv_session cookie as
"<id>.<hmac>", so a client cannot pick another guest's session.

	mgr := session.NewManager(store, session.Config{Salt: salt, TTL: 12 * time.Hour})
	go mgr.Run(ctx) // drops idle sessions
	defer mgr.Close()

	sess, created := mgr.Resolve(cookieValue)

Sessions idle for longer than the TTL are dropped together with their
local cache.
*/
package session
