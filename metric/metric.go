package metric

import (
	"github.com/viant/vec/search"

	"github.com/viant/entity-corrector/vector"
)

// Func computes the distance between two encoded vectors. Implementations
// must be reentrant and satisfy the metric axioms.
type Func func(a, b vector.Vector) float64

// Name enumerates the supported vector metrics.
type Name string

const (
	NameDamerau   Name = "damerau"
	NameEuclidean Name = "euclidean"
)

// Function resolves the callable implementation, or nil for unknown names.
func (n Name) Function() Func {
	switch n {
	case NameDamerau, "":
		return Vectors
	case NameEuclidean:
		return Euclidean
	default:
		return nil
	}
}

// Strings returns the edit distance between two raw strings, compared rune
// by rune.
func Strings(a, b string) int {
	if a == b {
		return 0
	}
	return Damerau([]rune(a), []rune(b))
}

// Vectors returns the edit distance between two encoded vectors.
func Vectors(a, b vector.Vector) float64 {
	return float64(Damerau([]int32(a), []int32(b)))
}

// Euclidean returns the L2 distance between two encoded vectors treated as
// points. It is a true metric but ignores character alignment, so it is only
// useful as a coarse alternative to Vectors.
func Euclidean(a, b vector.Vector) float64 {
	return float64(search.Float32s(a.Float32s()).EuclideanDistance(b.Float32s()))
}
