package graph

// Edge links an intersection to an adjacent one downstream.
type Edge struct {
	From int
	To   int
}

// Graph is a directed adjacency between intersection IDs.
type Graph struct {
	Nodes map[int]struct{}
	Edges map[int][]*Edge // key = from node
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		Nodes: make(map[int]struct{}),
		Edges: make(map[int][]*Edge),
	}
}

// AddEdge inserts a directed edge. Duplicate and self edges are ignored.
func (g *Graph) AddEdge(from, to int) {
	if from == to {
		return
	}
	for _, e := range g.Edges[from] {
		if e.To == to {
			return
		}
	}
	g.Nodes[from], g.Nodes[to] = struct{}{}, struct{}{}
	g.Edges[from] = append(g.Edges[from], &Edge{From: from, To: to})
}

// Neighbors returns outgoing edges in insertion order.
func (g *Graph) Neighbors(node int) []*Edge { return g.Edges[node] }

// Len returns the number of edges.
func (g *Graph) Len() int {
	n := 0
	for _, edges := range g.Edges {
		n += len(edges)
	}
	return n
}
