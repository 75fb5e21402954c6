package gocrdt

import "testing"

func TestIntegratePendingSimpleCase(t *testing.T) {
	store := NewStore()
	item := NewItem(ID{Client: 1, Clock: 0}, nil, nil, nil, nil, NewContentString("a"))
	store.mergeStructRefs(1, []Structure{item})

	store.integratePending(nil)

	if store.state(1) != 1 {
		t.Fatalf("expected the item to integrate, state = %d", store.state(1))
	}
	if len(store.pendingClientsStructRefs[1].refs) != 0 && store.pendingClientsStructRefs[1].hasNext() {
		t.Fatal("pending entry should be fully consumed")
	}
}

func TestIntegratePendingDefersOnCrossReplicaDependency(t *testing.T) {
	store := NewStore()
	parent := ID{Client: 2, Clock: 0}
	dependent := NewItem(ID{Client: 1, Clock: 0}, nil, nil, parent, nil, NewContentString("child"))
	store.mergeStructRefs(1, []Structure{dependent})

	store.integratePending(nil)
	if store.state(1) != 0 {
		t.Fatal("dependent item should not integrate before its parent arrives")
	}

	base := NewItem(ID{Client: 2, Clock: 0}, nil, nil, nil, nil, NewContentString("parent"))
	store.mergeStructRefs(2, []Structure{base})
	store.integratePending(nil)

	if store.state(1) != 1 || store.state(2) != 1 {
		t.Fatalf("expected both replicas fully integrated after dependency arrives, got state(1)=%d state(2)=%d",
			store.state(1), store.state(2))
	}
}

func TestIntegratePendingResolvesIntraReplicaGap(t *testing.T) {
	store := NewStore()
	// Clock 1 arrives before clock 0 for the same replica.
	second := NewGC(ID{Client: 1, Clock: 1}, 1)
	store.mergeStructRefs(1, []Structure{second})
	store.integratePending(nil)
	if store.state(1) != 0 {
		t.Fatal("should not integrate out of order across a gap")
	}

	first := NewGC(ID{Client: 1, Clock: 0}, 1)
	store.mergeStructRefs(1, []Structure{first})
	store.integratePending(nil)

	if store.state(1) != 2 {
		t.Fatalf("expected both units integrated once the gap closes, state = %d", store.state(1))
	}
}

func TestIntegratePendingSkipsDuplicateStructure(t *testing.T) {
	store := NewStore()
	item := NewItem(ID{Client: 1, Clock: 0}, nil, nil, nil, nil, NewContentString("a"))
	store.mergeStructRefs(1, []Structure{item})
	store.integratePending(nil)

	// Re-deliver the exact same structure: offset >= Len, should be a no-op.
	dup := NewItem(ID{Client: 1, Clock: 0}, nil, nil, nil, nil, NewContentString("a"))
	store.mergeStructRefs(1, []Structure{dup})
	store.integratePending(nil)

	if store.state(1) != 1 {
		t.Fatalf("duplicate redelivery must not double count, state = %d", store.state(1))
	}
}
