// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth signs and verifies session cookies.

Guests are not authenticated; the only secret in play is the session
cookie, which binds a browser to its session-local cache.

# Session Cookies

Cookie values are the session ID followed by an HMAC-SHA256 signature:

	value := auth.SignSessionID(sessionID, salt)
	id, err := auth.VerifySessionCookie(value, salt)

The signature is URL-safe base64 without padding. Since it's deterministic,
the same ID and salt always produce the same value, so nothing needs to be
stored to validate a cookie.

VerifySessionCookie returns ErrInvalidToken for malformed values and
ErrInvalidSignature when the signature does not match.
*/
package auth
