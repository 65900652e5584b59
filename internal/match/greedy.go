package match

import "sort"

// Assignment is one accepted left/right pairing with its score
type Assignment struct {
	Left  int
	Right int
	Score float64
}

// Greedy produces a 1:1 assignment between two finite index sets. It
// evaluates the full |left|x|right| score matrix (both sides are small,
// bounded by per-document cardinalities), sorts all triples by score
// descending, and greedily accepts a pair when its score clears the
// threshold and neither side is consumed yet.
//
// This is a greedy approximation to maximum-weight bipartite matching,
// not an optimal assignment. Ties break on left index then right index,
// so results are reproducible for identical inputs.
func Greedy(nLeft, nRight int, score func(i, j int) float64, threshold float64) []Assignment {
	if nLeft == 0 || nRight == 0 {
		return nil
	}

	cells := make([]Assignment, 0, nLeft*nRight)
	for i := 0; i < nLeft; i++ {
		for j := 0; j < nRight; j++ {
			cells = append(cells, Assignment{Left: i, Right: j, Score: score(i, j)})
		}
	}

	sort.Slice(cells, func(a, b int) bool {
		if cells[a].Score != cells[b].Score {
			return cells[a].Score > cells[b].Score
		}
		if cells[a].Left != cells[b].Left {
			return cells[a].Left < cells[b].Left
		}
		return cells[a].Right < cells[b].Right
	})

	usedLeft := make([]bool, nLeft)
	usedRight := make([]bool, nRight)

	var accepted []Assignment
	for _, c := range cells {
		if c.Score < threshold {
			break // Sorted descending; nothing below can clear it
		}
		if usedLeft[c.Left] || usedRight[c.Right] {
			continue
		}
		usedLeft[c.Left] = true
		usedRight[c.Right] = true
		accepted = append(accepted, c)
	}
	return accepted
}
