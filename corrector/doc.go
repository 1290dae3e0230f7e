// Package corrector finds entities of a fixed corpus that approximately
// match a query.
//
// A Corrector encodes the corpus once into fixed-length vectors and answers
// queries with either a linear scan or a vantage-point tree, chosen at
// construction. Correct runs the two-phase protocol: a broad vector-space
// search with radius BroadRadius, then exact re-scoring of each candidate
// with the raw-string edit distance, keeping those within CorrectionRadius.
// The vector metric misjudges true distance whenever padding or truncation
// shifts character alignment; the one-unit margin between the two radii
// compensates for it.
//
// Usage:
//
//	c, err := corrector.New(entities, corrector.WithIndex(true))
//	if err != nil {
//	    return err
//	}
//	fixes, err := c.Correct("the cbt ate the bag")
package corrector
