package scene

// Handle identifies a node slot in a Graph. The generation guards against
// stale handles after slot reuse.
type Handle struct {
	ID  int
	Gen int
}

// Valid reports whether the handle ever pointed at a node.
func (h Handle) Valid() bool {
	return h.ID > 0
}

// Graph owns scene nodes and hands out generational handles for them.
// Removed slots are recycled with a bumped generation so old handles go
// dead instead of aliasing new nodes.
type Graph struct {
	nextID int
	gen    []int
	free   []int
	nodes  []Node
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// Add inserts a node and returns its handle.
func (g *Graph) Add(n Node) Handle {
	if g == nil || n == nil {
		return Handle{}
	}
	var id int
	if len(g.free) > 0 {
		id = g.free[len(g.free)-1]
		g.free = g.free[:len(g.free)-1]
	} else {
		g.nextID++
		id = g.nextID
	}
	for id > len(g.gen) {
		g.gen = append(g.gen, 0)
		g.nodes = append(g.nodes, nil)
	}
	g.nodes[id-1] = n
	return Handle{ID: id, Gen: g.gen[id-1]}
}

// Remove detaches the node behind h and returns it so the caller can
// deregister it from external systems. Returns nil for dead handles.
func (g *Graph) Remove(h Handle) Node {
	if !g.IsAlive(h) {
		return nil
	}
	idx := h.ID - 1
	n := g.nodes[idx]
	g.nodes[idx] = nil
	g.gen[idx]++
	g.free = append(g.free, h.ID)
	return n
}

// Get returns the node behind h, or nil for dead handles.
func (g *Graph) Get(h Handle) Node {
	if !g.IsAlive(h) {
		return nil
	}
	return g.nodes[h.ID-1]
}

// IsAlive reports whether h still points at a live node.
func (g *Graph) IsAlive(h Handle) bool {
	if g == nil || h.ID <= 0 || h.ID > len(g.gen) {
		return false
	}
	return g.gen[h.ID-1] == h.Gen && g.nodes[h.ID-1] != nil
}

// Len returns the number of live nodes.
func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	count := 0
	for _, n := range g.nodes {
		if n != nil {
			count++
		}
	}
	return count
}

// Each calls fn for every live node.
func (g *Graph) Each(fn func(Handle, Node)) {
	if g == nil || fn == nil {
		return
	}
	for i, n := range g.nodes {
		if n == nil {
			continue
		}
		fn(Handle{ID: i + 1, Gen: g.gen[i]}, n)
	}
}
