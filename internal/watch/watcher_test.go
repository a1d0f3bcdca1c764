package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/findsweep/internal/config"
)

func watchConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Project.Root = t.TempDir()
	cfg.Watch.DebounceMs = 30
	return cfg
}

func TestWatcherFiresAfterFileChange(t *testing.T) {
	cfg := watchConfig(t)
	settled := make(chan struct{}, 1)

	w, err := New(cfg, func() {
		select {
		case settled <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	require.NoError(t, w.Start(cfg.Project.Root))
	defer func() { require.NoError(t, w.Stop()) }()

	path := filepath.Join(cfg.Project.Root, "file.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\n"), 0o644))

	select {
	case <-settled:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never fired after file change")
	}

	events, triggers, _ := w.Stats()
	assert.GreaterOrEqual(t, events, int64(1))
	assert.GreaterOrEqual(t, triggers, int64(1))
}

func TestWatcherBurstCollapsesToOneTrigger(t *testing.T) {
	cfg := watchConfig(t)
	cfg.Watch.DebounceMs = 100
	settled := make(chan struct{}, 16)

	w, err := New(cfg, func() { settled <- struct{}{} })
	require.NoError(t, err)
	require.NoError(t, w.Start(cfg.Project.Root))
	defer func() { require.NoError(t, w.Stop()) }()

	for i := 0; i < 5; i++ {
		path := filepath.Join(cfg.Project.Root, "burst.txt")
		require.NoError(t, os.WriteFile(path, []byte{byte('a' + i)}, 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-settled:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never fired after burst")
	}

	// The quiet period has passed; no further trigger should be pending.
	select {
	case <-settled:
		t.Error("burst produced more than one trigger")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherIgnoresExcludedPaths(t *testing.T) {
	cfg := watchConfig(t)
	cfg.Exclude = []string{"vendor/**"}
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.Project.Root, "vendor"), 0o755))

	settled := make(chan struct{}, 1)
	w, err := New(cfg, func() {
		select {
		case settled <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	require.NoError(t, w.Start(cfg.Project.Root))
	defer func() { require.NoError(t, w.Stop()) }()

	path := filepath.Join(cfg.Project.Root, "vendor", "dep.go")
	require.NoError(t, os.WriteFile(path, []byte("package dep\n"), 0o644))

	select {
	case <-settled:
		t.Error("excluded path produced a trigger")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherIncludeFilter(t *testing.T) {
	cfg := watchConfig(t)
	cfg.Include = []string{"**/*.go"}

	settled := make(chan struct{}, 1)
	w, err := New(cfg, func() {
		select {
		case settled <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	require.NoError(t, w.Start(cfg.Project.Root))
	defer func() { require.NoError(t, w.Stop()) }()

	other := filepath.Join(cfg.Project.Root, "image.png")
	require.NoError(t, os.WriteFile(other, []byte{0x89}, 0o644))

	select {
	case <-settled:
		t.Fatal("non-matching file produced a trigger")
	case <-time.After(300 * time.Millisecond):
	}

	match := filepath.Join(cfg.Project.Root, "main.go")
	require.NoError(t, os.WriteFile(match, []byte("package main\n"), 0o644))

	select {
	case <-settled:
	case <-time.After(5 * time.Second):
		t.Fatal("matching file never produced a trigger")
	}
}
