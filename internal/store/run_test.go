package store

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRun_AssignsIdentity(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run, err := s.RecordRun(ctx, okRun("person", "SELECT ?name WHERE {}", 2))
	require.NoError(t, err)

	assert.Equal(t, "run-0001", run.ID)
	assert.Equal(t, int64(1), run.Seq)
	assert.Equal(t, QueryHash("SELECT ?name WHERE {}"), run.QueryHash)
	assert.Len(t, run.QueryHash, 64)
	assert.JSONEq(t, `{"head":{"vars":["name"]},"results":{"bindings":[]}}`, string(run.Result))
	assert.Equal(t, `{"head":{"vars":["name"]},"results":{"bindings":[]}}`, string(run.Result))
}

func TestRecordRun_DefaultIDIsUUIDv7(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	run, err := s.RecordRun(context.Background(), okRun("person", "q", 0))
	require.NoError(t, err)

	id, err := uuid.Parse(run.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}

func TestRecordRun_SeqIsMonotonic(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		run, err := s.RecordRun(ctx, okRun("person", "q", i))
		require.NoError(t, err)
		assert.Equal(t, int64(i), run.Seq)
	}
}

func TestRecordRun_ErrorRun(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run, err := s.RecordRun(ctx, Run{
		QueryName: "book",
		Query:     "q",
		Endpoint:  "https://example.org/sparql",
		Status:    StatusError,
		Error:     "endpoint returned 500 Internal Server Error",
	})
	require.NoError(t, err)
	assert.Equal(t, "{}", string(run.Result))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run, got)
}

func TestRecordRun_Rejects(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.RecordRun(ctx, Run{QueryName: "x", Status: "pending"})
	assert.ErrorContains(t, err, `invalid status "pending"`)

	bad := okRun("x", "q", 0)
	bad.Result = []byte(`{not json`)
	_, err = s.RecordRun(ctx, bad)
	assert.ErrorContains(t, err, "compact result")
}

func TestListRuns_OrderAndFilter(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"person", "book", "person"} {
		_, err := s.RecordRun(ctx, okRun(name, "q-"+name, 1))
		require.NoError(t, err)
	}

	all, err := s.ListRuns(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"run-0001", "run-0002", "run-0003"}, []string{all[0].ID, all[1].ID, all[2].ID})

	people, err := s.ListRuns(ctx, "person")
	require.NoError(t, err)
	require.Len(t, people, 2)
	assert.Equal(t, int64(1), people[0].Seq)
	assert.Equal(t, int64(3), people[1].Seq)

	none, err := s.ListRuns(ctx, "missing")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestListRuns_JSONRoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.RecordRun(ctx, okRun("person", "q", 1))
	require.NoError(t, err)
	runs, err := s.ListRuns(ctx, "")
	require.NoError(t, err)

	data, err := json.Marshal(runs[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"result":{"head":{"vars":["name"]}`)
}

func TestGetRun_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.GetRun(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRunNotFound))
}

func TestRecordRun_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	s1, err := Open(path)
	require.NoError(t, err)
	_, err = s1.RecordRun(ctx, okRun("person", "q", 1))
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	run, err := s2.RecordRun(ctx, okRun("person", "q", 1))
	require.NoError(t, err)
	assert.Equal(t, int64(2), run.Seq)
}

func TestQueryHash_DomainSeparated(t *testing.T) {
	assert.Equal(t, QueryHash("q"), QueryHash("q"))
	assert.NotEqual(t, QueryHash("q"), QueryHash("q "))
	assert.NotEqual(t, hashWithDomain("other", []byte("q")), QueryHash("q"))
}
