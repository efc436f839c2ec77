package game

import "testing"

func TestDispatcherRouting(t *testing.T) {
	d := NewDispatcher()

	if d.Dispatch(Inbound{ChatID: 1}) {
		t.Error("Dispatch with no subscription should return false")
	}

	var got []string
	d.Attach(1, 1, func(in Inbound) { got = append(got, "first:"+in.Text) })
	if !d.Dispatch(Inbound{ChatID: 1, Text: "a"}) {
		t.Fatal("Dispatch with a live subscription should return true")
	}

	// A new question replaces the previous handler.
	d.Attach(1, 2, func(in Inbound) { got = append(got, "second:"+in.Text) })
	d.Dispatch(Inbound{ChatID: 1, Text: "b"})

	if len(got) != 2 || got[0] != "first:a" || got[1] != "second:b" {
		t.Errorf("handled = %v", got)
	}
}

func TestDispatcherDetachGenerationGuard(t *testing.T) {
	d := NewDispatcher()
	d.Attach(1, 2, func(Inbound) {})

	// Detach of an older generation must not remove the newer handle.
	d.Detach(1, 1)
	if !d.Dispatch(Inbound{ChatID: 1}) {
		t.Error("stale detach removed the live subscription")
	}

	d.Detach(1, 2)
	if d.Dispatch(Inbound{ChatID: 1}) {
		t.Error("matching detach left the subscription live")
	}
}

func TestDispatcherDetachAll(t *testing.T) {
	d := NewDispatcher()
	d.Attach(1, 7, func(Inbound) {})
	d.DetachAll(1)
	if d.Dispatch(Inbound{ChatID: 1}) {
		t.Error("DetachAll left the subscription live")
	}
}
