package vptree

import "github.com/viant/entity-corrector/index"

// neighbors implements heap.Interface with the worst candidate on top
// (largest distance, then largest position).
type neighbors []index.Neighbor

func (h neighbors) Len() int           { return len(h) }
func (h neighbors) Less(i, j int) bool { return index.Less(h[j], h[i]) }
func (h neighbors) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *neighbors) Push(x interface{}) {
	*h = append(*h, x.(index.Neighbor))
}

func (h *neighbors) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
