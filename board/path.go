package board

import "github.com/nstehr/funnel/funnel-core/model"

// Neighbour order fixes tie-breaking between equally short routes.
var steps = [4][2]int{{0, 1}, {1, 0}, {-1, 0}, {0, -1}}

type searchNode struct {
	cell model.Cell
	hits int // blocked cells entered so far
}

// FindPathToEdge runs a breadth-first search from origin over arena cells and
// returns the shortest route, origin included, to any cell of target.
// Entering a pre-turn blocked cell costs one hit; routes needing more than
// hits are not considered.
func (s *Snapshot) FindPathToEdge(origin model.Cell, target model.Edge, hits int) ([]model.Cell, bool) {
	if !s.arena.Contains(origin) || !target.Valid() {
		return nil, false
	}

	start := searchNode{cell: origin}
	parent := map[searchNode]searchNode{start: start}
	queue := []searchNode{start}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		if s.arena.OnEdge(n.cell, target) {
			return trace(parent, n), true
		}

		for _, d := range steps {
			next := searchNode{cell: n.cell.Offset(d[0], d[1]), hits: n.hits}
			if !s.arena.Contains(next.cell) {
				continue
			}
			if s.blocked[next.cell] {
				next.hits++
				if next.hits > hits {
					continue
				}
			}
			if _, seen := parent[next]; seen {
				continue
			}
			parent[next] = n
			queue = append(queue, next)
		}
	}
	return nil, false
}

func trace(parent map[searchNode]searchNode, end searchNode) []model.Cell {
	var rev []model.Cell
	for n := end; ; n = parent[n] {
		rev = append(rev, n.cell)
		if parent[n] == n {
			break
		}
	}
	path := make([]model.Cell, len(rev))
	for i, c := range rev {
		path[len(rev)-1-i] = c
	}
	return path
}
