package notify

import (
	"sync"
	"testing"
	"time"
)

func TestSubscribeReceivesChange(t *testing.T) {
	n := New()
	defer n.Close()

	var got Change
	n.Subscribe(func(c Change) { got = c })

	n.Publish(Change{Path: "settings.display_nogoals", Type: ChangeSet, NewValue: true, Source: "session"})

	if got.Path != "settings.display_nogoals" || got.NewValue != true {
		t.Errorf("got %+v", got)
	}
}

func TestSubscribePath(t *testing.T) {
	n := New()
	defer n.Close()

	var leaderEvents, otherEvents int
	n.SubscribePath("settings.unicode_input_leader", func(Change) { leaderEvents++ })
	n.SubscribePath("command", func(Change) { otherEvents++ })

	n.Publish(Change{Path: "settings.unicode_input_leader", Type: ChangeSet, NewValue: "!"})

	if leaderEvents != 1 {
		t.Errorf("leader observer fired %d times", leaderEvents)
	}
	if otherEvents != 0 {
		t.Errorf("command observer fired %d times", otherEvents)
	}
}

func TestReloadReachesPathObservers(t *testing.T) {
	n := New()
	defer n.Close()

	var fired int
	n.SubscribePath("command", func(c Change) {
		if c.Type == ChangeReload {
			fired++
		}
	})

	n.Publish(Change{Type: ChangeReload})
	if fired != 1 {
		t.Errorf("reload fired %d path observers, want 1", fired)
	}
}

func TestUnsubscribe(t *testing.T) {
	n := New()
	defer n.Close()

	var calls int
	sub := n.Subscribe(func(Change) { calls++ })

	n.Publish(Change{Path: "a", Type: ChangeSet})
	sub.Unsubscribe()
	sub.Unsubscribe() // idempotent
	n.Publish(Change{Path: "a", Type: ChangeSet})

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestAsyncDelivery(t *testing.T) {
	n := New(WithAsync(16))

	var mu sync.Mutex
	var got []Change
	done := make(chan struct{})
	n.Subscribe(func(c Change) {
		mu.Lock()
		got = append(got, c)
		if len(got) == 3 {
			close(done)
		}
		mu.Unlock()
	})

	for i := 0; i < 3; i++ {
		n.Publish(Change{Path: "command", Type: ChangeSet})
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("async delivery timed out")
	}
	n.Close()
}

func TestCloseIdempotent(t *testing.T) {
	n := New(WithAsync(4))
	n.Close()
	n.Close()
	// Publishing after close must not panic or block.
	n.Publish(Change{Type: ChangeReload})
}
