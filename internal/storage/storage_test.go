package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"
)

func testKV(t *testing.T, kv KV) {
	t.Helper()

	_, ok, err := kv.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set("k", "v1"))
	require.NoError(t, kv.Set("k", "v2"))

	v, ok, err := kv.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v2", v)

	require.NoError(t, kv.Delete("k"))
	require.NoError(t, kv.Delete("k"))

	_, ok, err = kv.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMem(t *testing.T) {
	testKV(t, NewMem())
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	testKV(t, NewFile(path))
}

func TestFile_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	require.NoError(t, NewFile(path).Set("cart", `{"items":[]}`))

	v, ok, err := NewFile(path).Get("cart")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"items":[]}`, v)
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.sqlite")

	s, err := OpenSQL("sqlite3", path)
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	testKV(t, s)
}
