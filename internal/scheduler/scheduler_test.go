package scheduler

import (
	"log/slog"
	"sync"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.Default()
}

// collector records resolved ids and signals when the expected number arrive.
type collector struct {
	mu   sync.Mutex
	ids  []string
	done chan struct{}
	want int
}

func newCollector(want int) *collector {
	return &collector{done: make(chan struct{}), want: want}
}

func (c *collector) resolve(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ids = append(c.ids, id)
	if len(c.ids) == c.want {
		close(c.done)
	}
}

func (c *collector) wait(t *testing.T, timeout time.Duration) []string {
	t.Helper()
	select {
	case <-c.done:
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for resolutions")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.ids...)
}

func TestSchedulerFiresDueItems(t *testing.T) {
	c := newCollector(1)
	s := New(testLogger(), 2)
	s.Start(c.resolve)
	defer s.Stop()

	s.Schedule("TXN1", time.Now().Add(10*time.Millisecond))

	ids := c.wait(t, 2*time.Second)
	if len(ids) != 1 || ids[0] != "TXN1" {
		t.Fatalf("unexpected resolutions: %v", ids)
	}
}

func TestSchedulerFiresOverdueItemImmediately(t *testing.T) {
	c := newCollector(1)
	s := New(testLogger(), 1)
	s.Start(c.resolve)
	defer s.Stop()

	s.Schedule("TXN1", time.Now().Add(-time.Second))

	c.wait(t, 2*time.Second)
}

func TestSchedulerRetainsItemsScheduledBeforeStart(t *testing.T) {
	c := newCollector(1)
	s := New(testLogger(), 1)
	s.Schedule("TXN1", time.Now())
	s.Start(c.resolve)
	defer s.Stop()

	c.wait(t, 2*time.Second)
}

func TestSchedulerFiresAllItems(t *testing.T) {
	const n = 20
	c := newCollector(n)
	s := New(testLogger(), 4)
	s.Start(c.resolve)
	defer s.Stop()

	for i := 0; i < n; i++ {
		s.Schedule(string(rune('A'+i)), time.Now().Add(time.Duration(i)*time.Millisecond))
	}

	ids := c.wait(t, 5*time.Second)
	seen := make(map[string]bool)
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("id %q resolved more than once", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Fatalf("expected %d distinct resolutions, got %d", n, len(seen))
	}
}

func TestSchedulerSurvivesPanickingResolution(t *testing.T) {
	c := newCollector(1)
	s := New(testLogger(), 1)
	s.Start(func(id string) {
		if id == "BOOM" {
			panic("resolution blew up")
		}
		c.resolve(id)
	})
	defer s.Stop()

	s.Schedule("BOOM", time.Now())
	s.Schedule("TXN1", time.Now().Add(20*time.Millisecond))

	ids := c.wait(t, 2*time.Second)
	if len(ids) != 1 || ids[0] != "TXN1" {
		t.Fatalf("expected TXN1 to survive the panic, got %v", ids)
	}
}
