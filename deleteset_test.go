package gocrdt

import "testing"

func TestDeleteSetAddMergesContiguousRuns(t *testing.T) {
	ds := newDeleteSet()
	ds.Add(1, 0, 2)
	ds.Add(1, 2, 3)
	ds.Add(1, 10, 1)

	ranges := ds.ranges[1]
	if len(ranges) != 2 {
		t.Fatalf("expected contiguous runs merged into 2 ranges, got %+v", ranges)
	}
	if ranges[0].clock != 0 || ranges[0].length != 5 {
		t.Fatalf("expected merged range {0,5}, got %+v", ranges[0])
	}
	if ranges[1].clock != 10 || ranges[1].length != 1 {
		t.Fatalf("expected separate range {10,1}, got %+v", ranges[1])
	}
}

func TestApplyDeleteSetMarksIntegratedItemsDeleted(t *testing.T) {
	store := NewStore()
	item := NewItem(ID{Client: 1, Clock: 0}, nil, nil, nil, nil, NewContentString("a"))
	item.integrate(nil, store, 0)

	ds := newDeleteSet()
	ds.Add(1, 0, 1)

	if deferred := store.applyDeleteSet(ds); deferred {
		t.Fatal("delete-set covering already-integrated structures should not defer")
	}
	if !item.Deleted() {
		t.Fatal("item should be marked deleted")
	}
}

func TestApplyDeleteSetDefersOnMissingStructure(t *testing.T) {
	store := NewStore()
	ds := newDeleteSet()
	ds.Add(1, 0, 1)

	if deferred := store.applyDeleteSet(ds); !deferred {
		t.Fatal("delete-set referencing a not-yet-integrated structure should defer")
	}
}

func TestReplayPendingDeleteReadersAppliesOnceDependencyArrives(t *testing.T) {
	store := NewStore()
	ds := newDeleteSet()
	ds.Add(1, 0, 1)
	store.pendingDeleteReaders = append(store.pendingDeleteReaders, ds)

	store.replayPendingDeleteReaders()
	if len(store.pendingDeleteReaders) != 1 {
		t.Fatal("should still be deferred before the structure arrives")
	}

	item := NewItem(ID{Client: 1, Clock: 0}, nil, nil, nil, nil, NewContentString("a"))
	item.integrate(nil, store, 0)

	store.replayPendingDeleteReaders()
	if len(store.pendingDeleteReaders) != 0 {
		t.Fatal("deferred delete-set should apply and clear once the structure exists")
	}
	if !item.Deleted() {
		t.Fatal("item should be deleted after replay")
	}
}
