package molgraph

import (
	"fmt"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Topology is a molecular connectivity over atom indices, in adjacency
// list form. It implements gonum's graph.Undirected so the generic
// graph algorithms (components, paths, cycles) apply directly.
type Topology struct {
	conn [][]int
}

// NewTopology builds a topology from per-atom neighbor lists. Every
// neighbor index must be a valid atom index and every edge must be
// listed from both ends.
func NewTopology(conn [][]int) (*Topology, error) {
	for i, neigh := range conn {
		for _, j := range neigh {
			if j < 0 || j >= len(conn) {
				return nil, fmt.Errorf("molgraph.NewTopology: atom %d bonded to out-of-range atom %d", i, j)
			}
			if j == i {
				return nil, fmt.Errorf("molgraph.NewTopology: atom %d bonded to itself", i)
			}
			if !contains(conn[j], i) {
				return nil, fmt.Errorf("molgraph.NewTopology: bond %d-%d only listed on one end", i, j)
			}
		}
	}
	return &Topology{conn: conn}, nil
}

func contains(s []int, v int) bool {
	for _, i := range s {
		if i == v {
			return true
		}
	}
	return false
}

// Len returns the number of atoms.
func (T *Topology) Len() int {
	return len(T.conn)
}

// Neighbors returns the neighbor list of an atom. The slice is the
// topology's own; callers must not modify it.
func (T *Topology) Neighbors(i int) []int {
	return T.conn[i]
}

// Node returns the atom with the given index, or nil if it is out of
// range.
func (T *Topology) Node(id int64) graph.Node {
	if id < 0 || id >= int64(len(T.conn)) {
		return nil
	}
	return simple.Node(id)
}

// Nodes returns an iterator over all atoms.
func (T *Topology) Nodes() graph.Nodes {
	nodes := make([]graph.Node, len(T.conn))
	for i := range T.conn {
		nodes[i] = simple.Node(i)
	}
	return iterator.NewOrderedNodes(nodes)
}

// From returns an iterator over the atoms bonded to the given one.
func (T *Topology) From(id int64) graph.Nodes {
	if id < 0 || id >= int64(len(T.conn)) {
		return graph.Empty
	}
	neigh := T.conn[id]
	nodes := make([]graph.Node, len(neigh))
	for i, j := range neigh {
		nodes[i] = simple.Node(j)
	}
	return iterator.NewOrderedNodes(nodes)
}

// HasEdgeBetween reports whether the two atoms are bonded.
func (T *Topology) HasEdgeBetween(xid, yid int64) bool {
	if xid < 0 || xid >= int64(len(T.conn)) {
		return false
	}
	return contains(T.conn[xid], int(yid))
}

// EdgeBetween returns the bond between two atoms, or nil when there is
// none.
func (T *Topology) EdgeBetween(xid, yid int64) graph.Edge {
	if !T.HasEdgeBetween(xid, yid) {
		return nil
	}
	return simple.Edge{F: simple.Node(xid), T: simple.Node(yid)}
}

// Edge is EdgeBetween; bonds are not directional.
func (T *Topology) Edge(uid, vid int64) graph.Edge {
	return T.EdgeBetween(uid, vid)
}

// Fragments returns the connected components of the topology as sorted
// atom index lists, largest fragment first. A well-formed small
// molecule has one fragment; more than one means missing bonds.
func (T *Topology) Fragments() [][]int {
	comps := topo.ConnectedComponents(T)
	frags := make([][]int, len(comps))
	for i, comp := range comps {
		frag := make([]int, len(comp))
		for j, n := range comp {
			frag[j] = int(n.ID())
		}
		insertionSort(frag)
		frags[i] = frag
	}
	for i := 1; i < len(frags); i++ {
		for j := i; j > 0 && len(frags[j]) > len(frags[j-1]); j-- {
			frags[j], frags[j-1] = frags[j-1], frags[j]
		}
	}
	return frags
}

func insertionSort(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// Downstream collects the atoms reachable from start without crossing
// root, in depth-first discovery order starting at start. It also
// counts how many traversal edges lead back to root: one for the
// root-start bond itself, more when root and start sit on a ring. The
// returned order never includes root.
func Downstream(conn [][]int, root, start int) (moved []int, foundRoot int) {
	visited := make([]bool, len(conn))
	visited[root] = true
	stack := []int{start}
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[curr] {
			continue
		}
		visited[curr] = true
		moved = append(moved, curr)
		neigh := conn[curr]
		// push in reverse so lower-numbered neighbors pop first
		for i := len(neigh) - 1; i >= 0; i-- {
			n := neigh[i]
			if n == root {
				foundRoot++
				continue
			}
			if !visited[n] {
				stack = append(stack, n)
			}
		}
	}
	return moved, foundRoot
}
