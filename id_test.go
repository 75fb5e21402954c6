package gocrdt

import "testing"

func TestIDGreaterOrdersByClockThenClient(t *testing.T) {
	a := ID{Client: 1, Clock: 5}
	b := ID{Client: 2, Clock: 5}
	c := ID{Client: 1, Clock: 6}

	if !c.Greater(a) {
		t.Fatal("higher clock should be greater regardless of client")
	}
	if !b.Greater(a) {
		t.Fatal("same clock: higher client should be greater")
	}
	if a.Greater(a) {
		t.Fatal("an id is never greater than itself")
	}
}

func TestIDLessOrdersByClientThenClock(t *testing.T) {
	a := ID{Client: 1, Clock: 9}
	b := ID{Client: 2, Clock: 0}
	if !a.Less(b) {
		t.Fatal("lower client should sort first regardless of clock")
	}
	if !(ID{Client: 1, Clock: 1}).Less(ID{Client: 1, Clock: 2}) {
		t.Fatal("same client: lower clock should sort first")
	}
}

func TestFindIndexSS(t *testing.T) {
	structs := []Structure{
		NewGC(ID{Client: 1, Clock: 0}, 3),
		NewGC(ID{Client: 1, Clock: 3}, 2),
		NewGC(ID{Client: 1, Clock: 5}, 1),
	}

	cases := []struct {
		clock Clock
		want  int
	}{
		{0, 0}, {2, 0}, {3, 1}, {4, 1}, {5, 2},
	}
	for _, tc := range cases {
		if got := findIndexSS(structs, tc.clock); got != tc.want {
			t.Errorf("findIndexSS(%d) = %d, want %d", tc.clock, got, tc.want)
		}
	}
}
