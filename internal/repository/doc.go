// Package repository implements data access for the Cloud Notes API on top
// of PostgreSQL.
//
// Each repository wraps a database.Querier (a pgx pool or transaction) and
// returns domain models from internal/model. Driver errors are translated to
// the database package sentinels at this boundary, so the service layer only
// ever sees database.ErrNotFound, database.ErrDuplicate, and friends.
//
// Lookup methods return (nil, nil) when the record does not exist; callers
// decide whether absence is an error.
//
// Note rows are soft-deleted: every read and write against notes carries a
// `deleted_at IS NULL` predicate, and ownership checks are folded into the
// same WHERE clause so a wrong owner and a missing row are indistinguishable.
package repository
