// Package vptree provides the metric tree index: a vantage-point tree built
// once over encoded vectors. It only evaluates the injected distance
// function, never vector coordinates, and prunes subtrees with the triangle
// inequality so radius and kNN answers are identical to a linear scan.
package vptree
