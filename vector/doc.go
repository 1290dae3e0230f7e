// Package vector turns strings into fixed-length integer vectors. It includes:
//   - Vector: the encoded representation compared by the metric package
//   - Encoder: vocabulary lookup, silent truncation, OOV substitution and padding
//   - Blob encoding (BLOB) for passing vectors through SQLite functions
package vector
