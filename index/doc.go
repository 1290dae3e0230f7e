// Package index defines the search abstraction shared by the linear scanner
// and the metric tree: both answer radius and kNN queries over the same
// encoded vectors with the same injected metric, so either can back a
// corrector without changing results.
package index
