// Package pathfind provides A* shortest-path search over weighted grid graphs.
package pathfind

import (
	"github.com/zyedidia/generic/heap"
)

// MaxSteps bounds the number of nodes expanded by a single search.
const MaxSteps = 65536

// Exit is one traversable edge out of a node.
type Exit struct {
	Index int
	Cost  float64
}

// Graph is the view of a map that the search needs.
type Graph interface {
	// AvailableExits lists the nodes reachable in one step from idx.
	AvailableExits(idx int) []Exit
	// PathingDistance is the heuristic estimate between two nodes.
	// It must never overestimate the true path cost.
	PathingDistance(a, b int) float64
}

// Path is the outcome of a search. Steps runs from start to goal inclusive,
// so the first move along a path is Steps[1].
type Path struct {
	Success bool
	Steps   []int
}

// node is an entry in the open set.
type node struct {
	idx int
	f   float64 // g + h
	g   float64 // cost from start
}

// FindPath returns a lowest-cost path from start to goal, or a Path with
// Success false when none exists.
func FindPath(g Graph, start, goal int) Path {
	if start == goal {
		return Path{Success: true, Steps: []int{start}}
	}

	open := heap.New(func(a, b node) bool {
		if a.f == b.f {
			return a.g > b.g // prefer nodes closer to the goal on ties
		}
		return a.f < b.f
	})
	open.Push(node{idx: start, f: g.PathingDistance(start, goal)})

	cost := map[int]float64{start: 0}
	parent := make(map[int]int)
	closed := make(map[int]bool)

	for expanded := 0; open.Size() > 0 && expanded < MaxSteps; {
		current, _ := open.Pop()
		if closed[current.idx] {
			continue
		}
		if current.idx == goal {
			return Path{Success: true, Steps: reconstruct(parent, start, goal)}
		}
		closed[current.idx] = true
		expanded++

		for _, exit := range g.AvailableExits(current.idx) {
			if closed[exit.Index] {
				continue
			}
			next := current.g + exit.Cost
			if known, ok := cost[exit.Index]; ok && next >= known {
				continue
			}
			cost[exit.Index] = next
			parent[exit.Index] = current.idx
			open.Push(node{
				idx: exit.Index,
				g:   next,
				f:   next + g.PathingDistance(exit.Index, goal),
			})
		}
	}

	return Path{Success: false}
}

// reconstruct walks parent links back from goal and returns start..goal.
func reconstruct(parent map[int]int, start, goal int) []int {
	steps := []int{goal}
	for at := goal; at != start; {
		at = parent[at]
		steps = append(steps, at)
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return steps
}
