package vptree

import (
	"container/heap"
	"fmt"
	"math"
	"sort"

	"github.com/viant/entity-corrector/index"
	"github.com/viant/entity-corrector/metric"
	"github.com/viant/entity-corrector/vector"
)

// Index is a vantage-point tree over encoded vectors.
type Index struct {
	vecs     []vector.Vector
	distance metric.Func
	root     *node
}

// node holds a vantage point; left holds points at distance <= thr from it,
// right holds points at distance >= thr.
type node struct {
	idx   int
	thr   float64
	left  *node
	right *node
}

// New builds the tree over vectors. distance must satisfy the triangle
// inequality for query results to be exact.
func New(vectors []vector.Vector, distance metric.Func) (*Index, error) {
	if distance == nil {
		return nil, fmt.Errorf("vptree: distance function is nil")
	}
	if len(vectors) > 0 {
		dim := len(vectors[0])
		for j := range vectors {
			if len(vectors[j]) != dim {
				return nil, fmt.Errorf("vptree: inconsistent vector dims %d vs %d", len(vectors[j]), dim)
			}
		}
	}
	i := &Index{vecs: append([]vector.Vector(nil), vectors...), distance: distance}
	idxs := make([]int, len(vectors))
	for k := range idxs {
		idxs[k] = k
	}
	i.root = i.build(idxs)
	return i, nil
}

func (i *Index) build(idxs []int) *node {
	if len(idxs) == 0 {
		return nil
	}
	// pick last as vantage point to avoid extra randomness
	vp := idxs[len(idxs)-1]
	idxs = idxs[:len(idxs)-1]
	if len(idxs) == 0 {
		return &node{idx: vp}
	}
	dists := make([]float64, len(idxs))
	for k, j := range idxs {
		dists[k] = i.distance(i.vecs[vp], i.vecs[j])
	}
	order := make([]int, len(idxs))
	for k := range order {
		order[k] = k
	}
	sort.SliceStable(order, func(a, b int) bool { return dists[order[a]] < dists[order[b]] })
	mid := len(order) / 2
	thr := dists[order[mid]]
	leftIdxs := make([]int, 0, mid+1)
	rightIdxs := make([]int, 0, len(idxs)-(mid+1))
	for rank, k := range order {
		if rank <= mid {
			leftIdxs = append(leftIdxs, idxs[k])
		} else {
			rightIdxs = append(rightIdxs, idxs[k])
		}
	}
	return &node{
		idx:   vp,
		thr:   thr,
		left:  i.build(leftIdxs),
		right: i.build(rightIdxs),
	}
}

// Within returns every position within radius of query.
func (i *Index) Within(query vector.Vector, radius float64) []int {
	var out []int
	var search func(n *node)
	search = func(n *node) {
		if n == nil {
			return
		}
		d := i.distance(query, i.vecs[n.idx])
		if d <= radius {
			out = append(out, n.idx)
		}
		if d-radius <= n.thr {
			search(n.left)
		}
		if d+radius >= n.thr {
			search(n.right)
		}
	}
	search(i.root)
	return out
}

// Nearest returns the k closest positions ordered by distance, then position.
func (i *Index) Nearest(query vector.Vector, k int) []index.Neighbor {
	if k <= 0 || i.root == nil {
		return nil
	}
	if k > len(i.vecs) {
		k = len(i.vecs)
	}
	h := make(neighbors, 0, k)
	tau := math.Inf(1)
	var search func(n *node)
	search = func(n *node) {
		if n == nil {
			return
		}
		cand := index.Neighbor{Index: n.idx, Distance: i.distance(query, i.vecs[n.idx])}
		if h.Len() < k {
			heap.Push(&h, cand)
		} else if index.Less(cand, h[0]) {
			heap.Pop(&h)
			heap.Push(&h, cand)
		}
		if h.Len() == k {
			tau = h[0].Distance
		}
		d := cand.Distance
		// visit the side containing the query first to shrink tau sooner
		if d < n.thr {
			if d-tau <= n.thr {
				search(n.left)
			}
			if d+tau >= n.thr {
				search(n.right)
			}
		} else {
			if d+tau >= n.thr {
				search(n.right)
			}
			if d-tau <= n.thr {
				search(n.left)
			}
		}
	}
	search(i.root)
	out := make([]index.Neighbor, h.Len())
	for j := len(out) - 1; j >= 0; j-- {
		out[j] = heap.Pop(&h).(index.Neighbor)
	}
	return out
}

// Len returns the number of stored vectors.
func (i *Index) Len() int { return len(i.vecs) }

// Kind returns index.KindVPTree.
func (i *Index) Kind() index.Kind { return index.KindVPTree }

// Depth returns the height of the tree.
func (i *Index) Depth() int {
	var depth func(n *node) int
	depth = func(n *node) int {
		if n == nil {
			return 0
		}
		l, r := depth(n.left), depth(n.right)
		if l > r {
			return l + 1
		}
		return r + 1
	}
	return depth(i.root)
}

var _ index.Index = (*Index)(nil)
