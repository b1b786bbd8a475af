// Package store provides SQLite-backed history of executed queries.
//
// Every run of a compiled query against an endpoint is appended to the
// runs table with:
//   - a UUIDv7 run id
//   - a logical seq assigned at insert time
//   - the query name, text and a domain-separated SHA-256 of the text
//   - the endpoint, outcome, row count and the raw result document
//
// # Ordering
//
// Reads order by seq, never by wall time, so two listings of the same
// database are identical.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
package store
