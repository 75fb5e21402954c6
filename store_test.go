package gocrdt

import "testing"

func TestStoreStateAndAddStruct(t *testing.T) {
	store := NewStore()
	if store.state(1) != 0 {
		t.Fatalf("unknown replica should report state 0, got %d", store.state(1))
	}

	a := NewItem(ID{Client: 1, Clock: 0}, nil, nil, nil, nil, NewContentString("a"))
	a.integrate(nil, store, 0)
	if store.state(1) != 1 {
		t.Fatalf("expected state 1 after one unit-length item, got %d", store.state(1))
	}

	gc := NewGC(ID{Client: 1, Clock: 1}, 4)
	gc.integrate(nil, store, 0)
	if store.state(1) != 5 {
		t.Fatalf("expected state 5 after GC of length 4, got %d", store.state(1))
	}
}

func TestStoreAddStructPanicsOnGap(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on non-contiguous structure")
		}
	}()
	store := NewStore()
	store.addStruct(NewGC(ID{Client: 1, Clock: 3}, 1))
}

func TestStoreStateVectorAndClientIDs(t *testing.T) {
	store := NewStore()
	NewItem(ID{Client: 1, Clock: 0}, nil, nil, nil, nil, NewContentString("a")).integrate(nil, store, 0)
	NewItem(ID{Client: 2, Clock: 0}, nil, nil, nil, nil, NewContentString("b")).integrate(nil, store, 0)

	sv := store.stateVector()
	if sv[1] != 1 || sv[2] != 1 {
		t.Fatalf("unexpected state vector: %+v", sv)
	}

	ids := store.clientIDs()
	if len(ids) != 2 {
		t.Fatalf("expected 2 known clients, got %d", len(ids))
	}
}

func TestStoreSequenceOrdering(t *testing.T) {
	store := NewStore()
	first := NewItem(ID{Client: 1, Clock: 0}, nil, nil, nil, nil, NewContentString("first"))
	first.integrate(nil, store, 0)

	firstID := first.ID()
	second := NewItem(ID{Client: 1, Clock: 1}, &firstID, nil, nil, nil, NewContentString("second"))
	second.integrate(nil, store, 0)

	seq := store.Sequence(nil)
	if len(seq) != 2 {
		t.Fatalf("expected 2 items in sequence, got %d", len(seq))
	}
}
