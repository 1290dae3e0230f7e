// Package vocab derives the rune-to-id table used to encode strings into
// fixed-length integer vectors. Id 0 is never assigned: it is reserved for
// padding, so vocabulary ids start at FirstID.
package vocab
