// Package auth issues and validates the HS256 bearer tokens that guard the
// mutating routes, and hashes and verifies user passwords with bcrypt.
package auth
