// Package linear provides the brute-force index: every query computes the
// metric against all stored vectors. It is always available and serves as
// the reference the metric tree must agree with.
package linear
