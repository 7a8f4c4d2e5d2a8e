// Package testutil provides shared test helpers for setting up stores.
package testutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/rlimports/autovitrine/internal/store"
)

// Logger returns a quiet slog logger for tests.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// TestStore creates a temporary bolt-backed store that is automatically
// cleaned up.
func TestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open("bolt", filepath.Join(t.TempDir(), "autovitrine-test.db"), Logger())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

// TestKV opens a raw backend of the given kind ("bolt" or "sqlite") on a
// temporary file.
func TestKV(t *testing.T, backend string) store.KV {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kv-test.db")
	var (
		kv  store.KV
		err error
	)
	switch backend {
	case "sqlite":
		kv, err = store.OpenSQLite(path)
	default:
		kv, err = store.OpenBolt(path)
	}
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { kv.Close() })
	return kv
}
