package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "drill.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpenCreatesTable(t *testing.T) {
	s := openTestStore(t)

	var name string
	err := s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='kv'",
	).Scan(&name)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if name != "kv" {
		t.Errorf("table name = %q, want 'kv'", name)
	}
}

// portContract runs the behaviour every backend must share.
func portContract(t *testing.T, p Port) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := p.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok, "absent key")

	require.NoError(t, p.Set(ctx, "a", `{"x":1}`))
	v, ok, err := p.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"x":1}`, v)

	require.NoError(t, p.Set(ctx, "a", "second"))
	v, _, _ = p.Get(ctx, "a")
	assert.Equal(t, "second", v, "set overwrites")

	require.NoError(t, p.Remove(ctx, "a"))
	_, ok, _ = p.Get(ctx, "a")
	assert.False(t, ok, "removed key")

	require.NoError(t, p.Remove(ctx, "a"), "removing absent key")
}

func TestSQLitePort(t *testing.T) {
	portContract(t, openTestStore(t))
}

func TestMemoryPort(t *testing.T) {
	portContract(t, NewMemory())
}

func TestRedisPort(t *testing.T) {
	addr := os.Getenv("DRILL_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("DRILL_TEST_REDIS_ADDR not set")
	}
	r, err := NewRedis(context.Background(), addr)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })

	portContract(t, WithPrefix(r, "drill-test"))
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drill.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "schedule", "{}"))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	v, ok, err := s.Get(ctx, "schedule")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "{}", v)
}

func TestKeys(t *testing.T) {
	ctx := context.Background()
	for name, p := range map[string]interface {
		Port
		Lister
	}{
		"sqlite": openTestStore(t),
		"memory": NewMemory(),
	} {
		t.Run(name, func(t *testing.T) {
			for _, k := range []string{"go:streak", "go:schedule", "sql:schedule"} {
				require.NoError(t, p.Set(ctx, k, "1"))
			}
			keys, err := p.Keys(ctx, "go:")
			require.NoError(t, err)
			assert.Equal(t, []string{"go:schedule", "go:streak"}, keys)
		})
	}
}

func TestWithPrefix(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	goCourse := WithPrefix(mem, "go")
	sqlCourse := WithPrefix(mem, "sql")

	require.NoError(t, goCourse.Set(ctx, KeySchedule, "go-data"))
	require.NoError(t, sqlCourse.Set(ctx, KeySchedule, "sql-data"))

	raw, ok, _ := mem.Get(ctx, "go:schedule")
	assert.True(t, ok)
	assert.Equal(t, "go-data", raw)

	v, _, _ := sqlCourse.Get(ctx, KeySchedule)
	assert.Equal(t, "sql-data", v, "courses are isolated")

	keys, err := goCourse.Keys(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"schedule"}, keys)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	p := WithPrefix(mem, "go")
	for _, k := range RecordKeys() {
		require.NoError(t, p.Set(ctx, k, "{}"))
	}
	require.NoError(t, mem.Set(ctx, "sql:schedule", "{}"))

	require.NoError(t, Reset(ctx, p))

	keys, _ := mem.Keys(ctx, "")
	assert.Equal(t, []string{"sql:schedule"}, keys)
}

type failingPort struct{ err error }

func (f failingPort) Get(context.Context, string) (string, bool, error) {
	return "", false, opErr("get", "k", f.err)
}
func (f failingPort) Set(context.Context, string, string) error { return opErr("set", "k", f.err) }
func (f failingPort) Remove(context.Context, string) error      { return opErr("remove", "k", f.err) }

func TestOpErrorMatchesUnavailable(t *testing.T) {
	cause := errors.New("disk full")
	err := failingPort{err: cause}.Set(context.Background(), "k", "v")

	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, err, cause)
	var opErr *OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "set", opErr.Op)
}

type doc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestDocsRoundTrip(t *testing.T) {
	ctx := context.Background()
	d := NewDocs(NewMemory(), nil)

	_, ok := Load[doc](ctx, d, "progress")
	assert.False(t, ok)

	assert.True(t, d.Save(ctx, "progress", doc{Name: "a", Count: 2}))
	got, ok := Load[doc](ctx, d, "progress")
	assert.True(t, ok)
	assert.Equal(t, doc{Name: "a", Count: 2}, got)

	assert.True(t, d.Delete(ctx, "progress"))
	_, ok = Load[doc](ctx, d, "progress")
	assert.False(t, ok)
}

func TestDocsCorruptRecordIsRemoved(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	require.NoError(t, mem.Set(ctx, "schedule", "{not json"))
	d := NewDocs(mem, nil)

	got, ok := Load[map[string]doc](ctx, d, "schedule")
	assert.False(t, ok)
	assert.Nil(t, got)

	_, present, _ := mem.Get(ctx, "schedule")
	assert.False(t, present, "corrupt record should be removed")
}

func TestDocsFailingPort(t *testing.T) {
	ctx := context.Background()
	d := NewDocs(failingPort{err: errors.New("offline")}, nil)

	_, ok := Load[doc](ctx, d, "streak")
	assert.False(t, ok)
	assert.False(t, d.Save(ctx, "streak", doc{}))
	assert.False(t, d.Delete(ctx, "streak"))
}
