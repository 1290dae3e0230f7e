package metric

// Damerau returns the unrestricted Damerau-Levenshtein distance between a
// and b: the minimum number of insertions, deletions, substitutions and
// adjacent transpositions turning one into the other. Unlike the optimal
// string alignment variant it satisfies the triangle inequality, which the
// metric tree relies on for exact pruning.
func Damerau[T comparable](a, b []T) int {
	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}
	inf := la + lb
	// (la+2) x (lb+2) matrix; row/column 0 hold the sentinel inf.
	w := lb + 2
	d := make([]int, (la+2)*w)
	d[0] = inf
	for i := 0; i <= la; i++ {
		d[(i+1)*w] = inf
		d[(i+1)*w+1] = i
	}
	for j := 0; j <= lb; j++ {
		d[j+1] = inf
		d[w+j+1] = j
	}
	// last row in which each element occurred in a
	last := make(map[T]int, la)
	for i := 1; i <= la; i++ {
		db := 0
		for j := 1; j <= lb; j++ {
			i1 := last[b[j-1]]
			j1 := db
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
				db = j
			}
			best := d[i*w+j] + cost // substitution
			if v := d[(i+1)*w+j] + 1; v < best {
				best = v // insertion
			}
			if v := d[i*w+j+1] + 1; v < best {
				best = v // deletion
			}
			if v := d[i1*w+j1] + (i - i1 - 1) + 1 + (j - j1 - 1); v < best {
				best = v // transposition
			}
			d[(i+1)*w+j+1] = best
		}
		last[a[i-1]] = i
	}
	return d[(la+1)*w+lb+1]
}
