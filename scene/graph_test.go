package scene

import "testing"

func TestGraphLifecycle(t *testing.T) {
	cases := []struct {
		name        string
		create      int
		removeIndex int // -1 = none
		wantLen     int
	}{
		{"single", 1, -1, 1},
		{"remove_middle", 3, 1, 2},
		{"remove_only", 1, 0, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := NewGraph()
			handles := make([]Handle, 0, c.create)
			for i := 0; i < c.create; i++ {
				handles = append(handles, g.Add(NewPivot(NewBaseBuilder())))
			}
			if c.removeIndex >= 0 {
				if g.Remove(handles[c.removeIndex]) == nil {
					t.Fatalf("Remove should return the live node")
				}
				if g.IsAlive(handles[c.removeIndex]) {
					t.Fatalf("handle should be dead after removal")
				}
				if g.Get(handles[c.removeIndex]) != nil {
					t.Fatalf("Get on dead handle should return nil")
				}
			}
			if got := g.Len(); got != c.wantLen {
				t.Fatalf("expected %d live nodes, got %d", c.wantLen, got)
			}
		})
	}
}

func TestGraphStaleHandleAfterReuse(t *testing.T) {
	g := NewGraph()
	first := g.Add(NewPivot(NewBaseBuilder().WithName("first")))
	g.Remove(first)

	second := g.Add(NewPivot(NewBaseBuilder().WithName("second")))
	if second.ID != first.ID {
		t.Fatalf("expected slot reuse, got id %d vs %d", second.ID, first.ID)
	}
	if g.IsAlive(first) {
		t.Fatalf("stale handle must stay dead after slot reuse")
	}
	n := g.Get(second)
	if n == nil || n.Base().Name() != "second" {
		t.Fatalf("new handle must resolve to the new node")
	}
}

func TestGraphEach(t *testing.T) {
	g := NewGraph()
	g.Add(NewPivot(NewBaseBuilder()))
	dead := g.Add(NewPivot(NewBaseBuilder()))
	g.Add(NewPivot(NewBaseBuilder()))
	g.Remove(dead)

	count := 0
	g.Each(func(h Handle, n Node) {
		if !g.IsAlive(h) {
			t.Fatalf("Each must hand out live handles")
		}
		count++
	})
	if count != 2 {
		t.Fatalf("expected 2 live nodes, got %d", count)
	}
}
