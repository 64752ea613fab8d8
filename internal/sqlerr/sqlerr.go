// Package sqlerr specifically handles database driver errors.
//
// It parses SQLSTATE codes coming from pgx (directly or through gorm) and
// converts them into user-friendly HTTP errors (e.g., a unique violation on
// tags becomes a 400 TAG_ALREADY_EXISTS).
package sqlerr
