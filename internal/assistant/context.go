package assistant

import (
	"sort"
	"strings"

	"reposcope/internal/analyzer"
	"reposcope/internal/wordidx"
)

// adjacencyBonus is added to a file's score for each already-selected
// graph neighbor, so dependencies of relevant files ride along.
const adjacencyBonus = 3

// rankFiles orders graph nodes by relevance to the request: word overlap
// between the request and the file path first, then graph adjacency to
// higher-ranked files. The returned order is deterministic.
func rankFiles(g *analyzer.Graph, request string) []string {
	paths := g.Paths()
	if len(paths) == 0 {
		return nil
	}
	words := wordidx.Tokenize(request)

	base := make(map[string]int, len(paths))
	for _, p := range paths {
		idx := wordidx.Build([]byte(strings.ReplaceAll(p, "/", " ")))
		score := idx.Score(words, 3)
		// Terraform entry points are the usual edit targets.
		if strings.HasSuffix(p, "main.tf") {
			score++
		}
		base[p] = score
	}

	// Greedy selection: repeatedly take the best-scoring remaining file and
	// boost its graph neighbors.
	remaining := make(map[string]bool, len(paths))
	for _, p := range paths {
		remaining[p] = true
	}
	out := make([]string, 0, len(paths))
	for len(remaining) > 0 {
		best := ""
		bestScore := -1
		candidates := make([]string, 0, len(remaining))
		for p := range remaining {
			candidates = append(candidates, p)
		}
		sort.Strings(candidates)
		for _, p := range candidates {
			if base[p] > bestScore {
				best = p
				bestScore = base[p]
			}
		}
		delete(remaining, best)
		out = append(out, best)
		for _, n := range g.Neighbors(best) {
			if remaining[n] {
				base[n] += adjacencyBonus
			}
		}
	}
	return out
}
