package keyword

import "strings"

// maxCorrectionDistance bounds how far a typed word may be from an indexed term.
const maxCorrectionDistance = 2

// Correct rewrites each word of query that is not an indexed name term to the closest
// term, preferring smaller edit distance and then more frequent terms. It returns the
// rewritten query and whether anything changed.
func (n *NameIndex) Correct(query string) (string, bool) {
	words := tokenize(query)
	changed := false
	for i, w := range words {
		if _, ok := n.terms[w]; ok {
			continue
		}
		if best, ok := n.closestTerm(w); ok {
			words[i] = best
			changed = true
		}
	}
	if !changed {
		return query, false
	}
	return strings.Join(words, " "), true
}

func (n *NameIndex) closestTerm(word string) (string, bool) {
	var (
		best     string
		bestDist = maxCorrectionDistance + 1
		bestFreq uint64
	)
	wordLen := len([]rune(word))
	for term, freq := range n.terms {
		if abs(len([]rune(term))-wordLen) > maxCorrectionDistance {
			continue
		}
		d := EditDistance(word, term)
		if d > maxCorrectionDistance {
			continue
		}
		// Ties on distance and frequency fall back to lexical order so results are stable.
		if d < bestDist || (d == bestDist && (freq > bestFreq || (freq == bestFreq && term < best))) {
			best, bestDist, bestFreq = term, d, freq
		}
	}
	return best, best != ""
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
