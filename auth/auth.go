// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

var (
	ErrInvalidSignature = errors.New("invalid session signature")
	ErrInvalidToken     = errors.New("invalid token format")
)

// signature computes the URL-safe HMAC of a session ID
func signature(sessionID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(sessionID))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner cookies
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// SignSessionID returns the cookie value for a session: "<id>.<hmac>".
// Deterministic, so the server never stores the signature.
func SignSessionID(sessionID, salt string) string {
	return sessionID + "." + signature(sessionID, salt)
}

// VerifySessionCookie checks a cookie value produced by SignSessionID and
// returns the session ID it carries.
func VerifySessionCookie(value, salt string) (string, error) {
	idx := strings.LastIndexByte(value, '.')
	if idx <= 0 || idx == len(value)-1 {
		return "", ErrInvalidToken
	}
	sessionID, sig := value[:idx], value[idx+1:]

	expected := signature(sessionID, salt)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", ErrInvalidSignature
	}
	return sessionID, nil
}
