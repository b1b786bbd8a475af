package store

import (
	"path/filepath"
	"testing"

	"github.com/tnishi/rdf-config/internal/testutil"
)

// createTestStore opens a fresh store with deterministic run ids.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	ids := &testutil.SequentialIDs{}
	s, err := Open(path, WithIDGenerator(ids.Next))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func okRun(name, query string, rows int) Run {
	return Run{
		QueryName: name,
		Query:     query,
		Endpoint:  "https://example.org/sparql",
		Status:    StatusOK,
		RowCount:  rows,
		Result:    []byte(`{"head": {"vars": ["name"]}, "results": {"bindings": []}}`),
	}
}
