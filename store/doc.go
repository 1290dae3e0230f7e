// Package store keeps an entity corpus in a SQLite table so a corrector can
// be built from a database instead of an in-process slice. It stores only
// entity strings; encoded vectors and indexes are always rebuilt in memory.
package store
