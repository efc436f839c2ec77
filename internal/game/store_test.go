package game

import "testing"

func TestStoreGetOrCreate(t *testing.T) {
	st := NewStore()

	a := st.GetOrCreate(1, func() *Session { return newSession(1, ModeFreeForAll) })
	b := st.GetOrCreate(1, func() *Session { return newSession(1, ModeTurnBased) })
	if a != b {
		t.Error("GetOrCreate created a second session for the same group")
	}
	if st.Len() != 1 {
		t.Errorf("Len() = %d, want 1", st.Len())
	}
}

func TestStoreRemoveIdentityGuard(t *testing.T) {
	st := NewStore()
	old := st.GetOrCreate(1, func() *Session { return newSession(1, ModeFreeForAll) })
	st.Remove(1, old)

	// A holder of the purged session must not be able to evict its successor.
	fresh := st.GetOrCreate(1, func() *Session { return newSession(1, ModeTurnBased) })
	st.Remove(1, old)

	got, ok := st.Get(1)
	if !ok || got != fresh {
		t.Error("stale Remove evicted the successor session")
	}
}
