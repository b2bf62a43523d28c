// Package devserver is an in-memory implementation of the portal API for local
// development and end-to-end tests of the alumni CLI.
//
// It serves the same routes the client calls (POST /auth/login, POST /auth/register,
// GET /users/me) under a configurable prefix, issues HS256 JWT bearer tokens, hashes
// passwords with bcrypt and rate-limits login attempts per client IP. Nothing is
// persisted; restarting the server forgets every account.
package devserver
