// Package session owns the authenticated identity of the portal client.
//
// A Manager exchanges credentials for a bearer token, persists the token in a
// TokenStore, and keeps the in-memory Session consistent with it. The platform client
// reads the token from the same store for every request and reports 401 responses to a
// Signal; the Manager subscribes to that Signal and tears the session down, so an
// authorization failure on any request logs the user out.
//
// Concurrent operations are not serialized. If a Restore and a Login are in flight at
// the same time, whichever response arrives last decides the session.
package session
