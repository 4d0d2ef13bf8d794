package graph

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAddEdge(t *testing.T) {
	g := New()
	g.AddEdge(1, 2)
	g.AddEdge(2, 4)
	g.AddEdge(1, 3)

	if diff := cmp.Diff([]*Edge{{From: 1, To: 2}, {From: 1, To: 3}}, g.Neighbors(1)); diff != "" {
		t.Errorf("Neighbors(1) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]*Edge{{From: 2, To: 4}}, g.Neighbors(2)); diff != "" {
		t.Errorf("Neighbors(2) mismatch (-want +got):\n%s", diff)
	}
	if got := g.Neighbors(4); len(got) != 0 {
		t.Errorf("tail should have no successor, got %v", got)
	}
	if got := len(g.Nodes); got != 4 {
		t.Errorf("expected 4 nodes, got %d", got)
	}
	if got := g.Len(); got != 3 {
		t.Errorf("expected 3 edges, got %d", got)
	}
}

func TestEmptyGraph(t *testing.T) {
	g := New()
	if g.Len() != 0 || len(g.Nodes) != 0 {
		t.Errorf("empty graph: %d edges, %d nodes", g.Len(), len(g.Nodes))
	}
}

func TestAddEdgeIgnoresDuplicatesAndSelfLoops(t *testing.T) {
	g := New()
	g.AddEdge(1, 2)
	g.AddEdge(1, 2)
	g.AddEdge(3, 3)

	if got := g.Len(); got != 1 {
		t.Errorf("expected 1 edge, got %d", got)
	}
	if _, ok := g.Nodes[3]; ok {
		t.Errorf("self loop should not add a node")
	}
}
