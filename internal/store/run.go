package store

import (
	"bytes"
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

// QueryHashDomain separates query text hashes from any other digest.
const QueryHashDomain = "rdfconfig/query/v1"

// ErrRunNotFound is returned by GetRun for an unknown id.
var ErrRunNotFound = errors.New("run not found")

// Status is the outcome of a run.
type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
)

// Run is one recorded query execution.
type Run struct {
	ID        string          `json:"id"`
	Seq       int64           `json:"seq"`
	QueryName string          `json:"query_name"`
	QueryHash string          `json:"query_hash"`
	Query     string          `json:"query"`
	Endpoint  string          `json:"endpoint"`
	Status    Status          `json:"status"`
	RowCount  int             `json:"row_count"`
	Result    json.RawMessage `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// QueryHash returns the content hash of a query text.
func QueryHash(query string) string {
	return hashWithDomain(QueryHashDomain, []byte(query))
}

func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// RecordRun appends run to the history. ID, Seq and QueryHash are
// assigned here; the stored copy is returned.
func (s *Store) RecordRun(ctx context.Context, run Run) (Run, error) {
	if run.Status != StatusOK && run.Status != StatusError {
		return Run{}, fmt.Errorf("record run: invalid status %q", run.Status)
	}
	result, err := compactResult(run.Result)
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}
	id, err := s.newID()
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return Run{}, fmt.Errorf("record run: next seq: %w", err)
	}

	run.ID = id
	run.Seq = seq
	run.QueryHash = QueryHash(run.Query)
	run.Result = json.RawMessage(result)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, query_name, query_hash, query, endpoint, status, row_count, result, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.Seq,
		run.QueryName,
		run.QueryHash,
		run.Query,
		run.Endpoint,
		string(run.Status),
		run.RowCount,
		result,
		run.Error,
	)
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("record run: commit: %w", err)
	}
	return run, nil
}

// ListRuns returns recorded runs ordered by seq, restricted to one query
// when queryName is not empty. Returns an empty slice, not nil.
func (s *Store) ListRuns(ctx context.Context, queryName string) ([]Run, error) {
	const cols = `SELECT id, seq, query_name, query_hash, query, endpoint, status, row_count, result, error FROM runs`

	var (
		rows *sql.Rows
		err  error
	)
	if queryName == "" {
		rows, err = s.db.QueryContext(ctx, cols+` ORDER BY seq ASC`)
	} else {
		rows, err = s.db.QueryContext(ctx, cols+` WHERE query_name = ? ORDER BY seq ASC`, queryName)
	}
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun returns the run with the given id, or ErrRunNotFound.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, query_name, query_hash, query, endpoint, status, row_count, result, error
		FROM runs
		WHERE id = ?
	`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run    Run
		status string
		result string
	)
	err := sc.Scan(&run.ID, &run.Seq, &run.QueryName, &run.QueryHash, &run.Query,
		&run.Endpoint, &status, &run.RowCount, &result, &run.Error)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, err
	}
	if err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.Status = Status(status)
	run.Result = json.RawMessage(result)
	return run, nil
}

// compactResult strips insignificant whitespace so equal results are
// stored byte-identically.
func compactResult(raw json.RawMessage) (string, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return "{}", nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", fmt.Errorf("compact result: %w", err)
	}
	return buf.String(), nil
}
