package textutil

import "strings"

// Ratio computes a similarity ratio in [0,1] between two text spans.
// Both inputs are lowercased and trimmed first. The ratio is 2*M/T where
// M is the total length of the longest matching contiguous blocks and T
// is the combined length of both strings. This is the standard sequence
// matcher ratio, not edit distance.
//
// Convention: Ratio("", "") is 1.0, since two empty strings have no
// mismatch. Symmetric for all inputs.
func Ratio(a, b string) float64 {
	ra := []rune(strings.ToLower(strings.TrimSpace(a)))
	rb := []rune(strings.ToLower(strings.TrimSpace(b)))

	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}

	matched := totalMatching(ra, rb)
	return 2.0 * float64(matched) / float64(total)
}

// totalMatching sums the sizes of all matching blocks: find the longest
// common substring, then recurse into the regions to its left and right.
func totalMatching(a, b []rune) int {
	// Positions of each rune in b, for the inner matching loop
	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}

	type span struct{ alo, ahi, blo, bhi int }
	queue := []span{{0, len(a), 0, len(b)}}

	matched := 0
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		i, j, size := longestMatch(a, b2j, s.alo, s.ahi, s.blo, s.bhi)
		if size == 0 {
			continue
		}
		matched += size
		queue = append(queue,
			span{s.alo, i, s.blo, j},
			span{i + size, s.ahi, j + size, s.bhi},
		)
	}
	return matched
}

// longestMatch finds the longest block a[i:i+size] == b[j:j+size] within
// the given window. Ties resolve to the earliest i, then earliest j, so
// the result is deterministic.
func longestMatch(a []rune, b2j map[rune][]int, alo, ahi, blo, bhi int) (besti, bestj, size int) {
	besti, bestj = alo, blo

	// j2len[j] = length of the longest match ending at a[i], b[j]
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newj2len := make(map[int]int)
		for _, j := range b2j[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > size {
				besti, bestj, size = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}
	return besti, bestj, size
}
