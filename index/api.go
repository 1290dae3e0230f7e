package index

import "github.com/viant/entity-corrector/vector"

// Kind names an index implementation.
type Kind string

const (
	KindLinear Kind = "linear"
	KindVPTree Kind = "vptree"
)

// Neighbor is a kNN result: the position of a stored vector and its
// distance to the query.
type Neighbor struct {
	Index    int
	Distance float64
}

// Index answers exact neighbour queries over a fixed set of vectors.
// Implementations are immutable after construction and safe for concurrent
// queries.
type Index interface {
	// Within returns the positions of every stored vector whose distance to
	// query is <= radius. Order is unspecified.
	Within(query vector.Vector, radius float64) []int

	// Nearest returns min(k, Len()) neighbours ordered by ascending distance,
	// ties broken by ascending position.
	Nearest(query vector.Vector, k int) []Neighbor

	// Len returns the number of stored vectors.
	Len() int

	// Kind identifies the implementation.
	Kind() Kind
}

// Less orders neighbours by distance, then by position.
func Less(a, b Neighbor) bool {
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return a.Index < b.Index
}
