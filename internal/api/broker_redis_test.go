package api

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestRedisBrokerPublishSubscribe(t *testing.T) {
	mr := miniredis.RunT(t)

	b, err := NewRedisBroker("redis://" + mr.Addr())
	if err != nil {
		t.Fatalf("broker init: %v", err)
	}

	ch := b.Subscribe("run-1")
	b.Publish("run-1", Event{Type: "solve.completed", Data: map[string]any{"fitness": 12.5}})

	select {
	case got := <-ch:
		if got.Type != "solve.completed" {
			t.Fatalf("got type %s, want solve.completed", got.Type)
		}
		if got.Data["fitness"].(float64) != 12.5 {
			t.Fatalf("bad payload: %+v", got.Data)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for event")
	}

	b.Unsubscribe("run-1", ch)
	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected closed channel after unsubscribe")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after unsubscribe")
	}
}

func TestRedisBrokerBadURL(t *testing.T) {
	if _, err := NewRedisBroker("not-a-url"); err == nil {
		t.Fatal("expected error for malformed URL")
	}
}
