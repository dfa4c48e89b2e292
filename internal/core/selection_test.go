package core

import (
	"testing"

	"risk_service/internal/domain/model"
)

func TestSelectionLifecycle(t *testing.T) {
	store := NewSelectionStore()

	if _, _, ok := store.Get("c1"); ok {
		t.Fatal("Expected no selection before Begin")
	}

	token := store.Begin("c1")
	if token == "" {
		t.Fatal("Begin returned empty token")
	}

	res, state, ok := store.Get("c1")
	if !ok || state != model.StateLoading || res != nil {
		t.Fatalf("Expected loading state with nil resolution, got (%v, %q, %v)", res, state, ok)
	}

	done := &model.Resolution{State: model.StateLoaded}
	if !store.Complete("c1", token, done) {
		t.Fatal("Complete with current token should succeed")
	}

	res, state, ok = store.Get("c1")
	if !ok || state != model.StateLoaded || res != done {
		t.Fatalf("Expected loaded resolution, got (%v, %q, %v)", res, state, ok)
	}

	store.Clear("c1")
	if _, _, ok := store.Get("c1"); ok {
		t.Fatal("Expected no selection after Clear")
	}
}

func TestSelectionStaleTokenDiscarded(t *testing.T) {
	store := NewSelectionStore()

	first := store.Begin("c1")
	second := store.Begin("c1")
	if first == second {
		t.Fatal("Begin must issue distinct tokens")
	}

	old := &model.Resolution{State: model.StateLoaded}
	if store.Complete("c1", first, old) {
		t.Fatal("Complete with a stale token must be discarded")
	}

	res, state, ok := store.Get("c1")
	if !ok || state != model.StateLoading || res != nil {
		t.Fatalf("Stale complete must not disturb the newer selection: (%v, %q, %v)", res, state, ok)
	}

	fresh := &model.Resolution{State: model.StateLoadedFallback}
	if !store.Complete("c1", second, fresh) {
		t.Fatal("Complete with the current token should succeed")
	}
	_, state, _ = store.Get("c1")
	if state != model.StateLoadedFallback {
		t.Errorf("State = %q, want %q", state, model.StateLoadedFallback)
	}
}

func TestSelectionCompleteAfterClear(t *testing.T) {
	store := NewSelectionStore()
	token := store.Begin("c1")
	store.Clear("c1")

	if store.Complete("c1", token, &model.Resolution{State: model.StateLoaded}) {
		t.Fatal("Complete after Clear must be discarded")
	}
	if _, _, ok := store.Get("c1"); ok {
		t.Fatal("Discarded complete must not resurrect the selection")
	}
}

func TestSelectionClientsAreIndependent(t *testing.T) {
	store := NewSelectionStore()
	t1 := store.Begin("c1")
	store.Begin("c2")

	if !store.Complete("c1", t1, &model.Resolution{State: model.StateLoaded}) {
		t.Fatal("c2's Begin must not invalidate c1's token")
	}
}
