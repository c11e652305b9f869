package social

// ============================================================================
// Graph Projection
// ============================================================================

// ProjectGraph converts the user population into a node-and-edge view for
// visualization. Every user becomes one node carrying a freshly computed
// popularity score against the same snapshot. Friendships appear as a single
// undirected edge: each (user, friend) pair is deduplicated by its canonical
// key, while the emitted source/target keep first-sight orientation.
//
// The projection is a pure read; nothing it computes is persisted.
func ProjectGraph(all []*User) *Graph {
	g := &Graph{
		Nodes: make([]GraphNode, 0, len(all)),
		Edges: []GraphEdge{},
	}

	seen := make(map[string]struct{})
	for _, u := range all {
		g.Nodes = append(g.Nodes, GraphNode{
			ID:              u.ID,
			Name:            u.Username,
			Age:             u.Age,
			PopularityScore: Popularity(u, all),
			Hobbies:         append([]string{}, u.Hobbies...),
		})

		for _, friendID := range u.Friends {
			key := edgeKey(u.ID, friendID)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			g.Edges = append(g.Edges, GraphEdge{Source: u.ID, Target: friendID})
		}
	}

	return g
}

// edgeKey builds the canonical key for an undirected pair by ordering the two
// ids lexicographically, independent of discovery order
func edgeKey(a, b string) string {
	if a < b {
		return a + "-" + b
	}
	return b + "-" + a
}
