// Package metric implements the edit distance used throughout the module.
//
// The same Damerau-Levenshtein routine serves two roles that must not be
// confused: over encoded vectors (Vectors) it is the cheap search metric,
// over raw strings (Strings) it is the ground truth for final acceptance.
// Func is the injectable form handed to indexes so alternate metrics can be
// substituted without touching index internals.
package metric
