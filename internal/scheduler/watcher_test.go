package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MrSnakeDoc/langdocs/internal/logger"
)

func TestWatcher_DebouncesBurst(t *testing.T) {
	root := t.TempDir()
	langDir := filepath.Join(root, "java")
	if err := os.Mkdir(langDir, 0o755); err != nil {
		t.Fatal(err)
	}

	trigger := make(chan struct{}, 1)
	w := NewWatcher(root, 100*time.Millisecond, trigger, logger.Nop())
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	for _, name := range []string{"language.yaml", "basics.yaml", "oop.yaml"} {
		if err := os.WriteFile(filepath.Join(langDir, name), []byte("x: 1\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-trigger:
	case <-time.After(3 * time.Second):
		t.Fatal("Expected a reload trigger after the burst")
	}

	select {
	case <-trigger:
		t.Error("Expected a single trigger for one burst")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_StartFailsOnMissingRoot(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "missing"), time.Second, make(chan struct{}, 1), logger.Nop())
	if err := w.Start(context.Background()); err == nil {
		w.Stop()
		t.Fatal("Expected an error for a missing root")
	}
}
