package linear

import (
	"fmt"
	"sort"

	"github.com/viant/entity-corrector/index"
	"github.com/viant/entity-corrector/metric"
	"github.com/viant/entity-corrector/vector"
)

// Index is a brute-force index over encoded vectors.
type Index struct {
	vecs     []vector.Vector
	distance metric.Func
}

// New builds a linear index over vectors using distance.
func New(vectors []vector.Vector, distance metric.Func) (*Index, error) {
	if distance == nil {
		return nil, fmt.Errorf("linear: distance function is nil")
	}
	if len(vectors) > 0 {
		dim := len(vectors[0])
		for j := range vectors {
			if len(vectors[j]) != dim {
				return nil, fmt.Errorf("linear: inconsistent vector dims %d vs %d", len(vectors[j]), dim)
			}
		}
	}
	return &Index{vecs: append([]vector.Vector(nil), vectors...), distance: distance}, nil
}

// Within scans all vectors and returns matches in storage order.
func (i *Index) Within(query vector.Vector, radius float64) []int {
	var out []int
	for j, v := range i.vecs {
		if i.distance(query, v) <= radius {
			out = append(out, j)
		}
	}
	return out
}

// Nearest scores all vectors and returns the k closest.
func (i *Index) Nearest(query vector.Vector, k int) []index.Neighbor {
	if k <= 0 || len(i.vecs) == 0 {
		return nil
	}
	scored := make([]index.Neighbor, len(i.vecs))
	for j, v := range i.vecs {
		scored[j] = index.Neighbor{Index: j, Distance: i.distance(query, v)}
	}
	sort.Slice(scored, func(a, b int) bool { return index.Less(scored[a], scored[b]) })
	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k]
}

// Len returns the number of stored vectors.
func (i *Index) Len() int { return len(i.vecs) }

// Kind returns index.KindLinear.
func (i *Index) Kind() index.Kind { return index.KindLinear }

var _ index.Index = (*Index)(nil)
