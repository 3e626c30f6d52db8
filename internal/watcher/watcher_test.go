package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventTypeString(t *testing.T) {
	testCases := []struct {
		eventType EventType
		expected  string
	}{
		{EventTypeCreated, "created"},
		{EventTypeModified, "modified"},
		{EventTypeDeleted, "deleted"},
		{EventTypeRenamed, "renamed"},
		{EventType(42), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.eventType.String())
		})
	}
}

func TestFilters(t *testing.T) {
	assert.True(t, PageFilter("pages/index.yml"))
	assert.True(t, PageFilter("about.yaml"))
	assert.False(t, PageFilter("main.go"))

	assert.True(t, NoHiddenFilter("pages/index.yml"))
	assert.False(t, NoHiddenFilter("pages/.index.yml.swp"))
	assert.False(t, NoHiddenFilter("pages/index.yml~"))

	assert.True(t, NoGitFilter("pages/index.yml"))
	assert.False(t, NoGitFilter(".git/HEAD"))
	assert.False(t, NoGitFilter("site/.git/config"))

	only := PathFilter("pages/./index.yml")
	assert.True(t, only("pages/index.yml"))
	assert.False(t, only("pages/about.yml"))
}

func TestDebouncerGroupsAndDeduplicates(t *testing.T) {
	d := newDebouncer(20 * time.Millisecond)

	d.addEvent(ChangeEvent{Type: EventTypeCreated, Path: "b.yml"})
	d.addEvent(ChangeEvent{Type: EventTypeModified, Path: "a.yml"})
	d.addEvent(ChangeEvent{Type: EventTypeModified, Path: "b.yml"})

	select {
	case events := <-d.output:
		require.Len(t, events, 2)
		assert.Equal(t, "a.yml", events[0].Path)
		assert.Equal(t, "b.yml", events[1].Path)
		assert.Equal(t, EventTypeModified, events[1].Type, "last event per path wins")
	case <-time.After(2 * time.Second):
		t.Fatal("debouncer did not flush")
	}

	d.flush()
	select {
	case events := <-d.output:
		t.Fatalf("unexpected flush of %d events", len(events))
	default:
	}
}

func TestNewFileWatcher(t *testing.T) {
	fw, err := NewFileWatcher(100*time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Stop()

	fw.AddFilter(PageFilter)
	fw.AddHandler(func([]ChangeEvent) error { return nil })
	assert.Len(t, fw.filters, 1)
	assert.Len(t, fw.handlers, 1)

	assert.Error(t, fw.AddPath(""))
	assert.Error(t, fw.AddPath("../outside"))
	assert.Error(t, fw.AddPath(filepath.Join(t.TempDir(), "missing")))
}

func TestFileWatcherDeliversPageChanges(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "blog")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".hidden"), 0o755))

	fw, err := NewFileWatcher(30*time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Stop()

	fw.AddFilter(PageFilter)
	fw.AddFilter(NoHiddenFilter)

	var (
		mu   sync.Mutex
		seen []string
	)
	fw.AddHandler(func(events []ChangeEvent) error {
		mu.Lock()
		defer mu.Unlock()
		for _, e := range events {
			seen = append(seen, filepath.Base(e.Path))
		}
		return nil
	})

	require.NoError(t, fw.AddRecursive(dir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, fw.Start(ctx))

	require.NoError(t, os.WriteFile(filepath.Join(sub, "post.yml"), []byte("directives: []\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) > 0
	}, 3*time.Second, 20*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, seen, "post.yml")
	assert.NotContains(t, seen, "notes.txt")
}
