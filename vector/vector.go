package vector

import (
	"github.com/viant/entity-corrector/errors"
	"github.com/viant/entity-corrector/vocab"
)

// PadID fills positions past the end of an encoded string. The vocabulary
// never assigns it.
const PadID int32 = 0

// DefaultMaxSize is the encoded vector length used when none is configured.
const DefaultMaxSize = 50

// Vector is a fixed-length encoding of a string.
type Vector []int32

// Encoder maps strings to vectors of exactly MaxSize elements.
type Encoder struct {
	vocab   *vocab.Vocabulary
	maxSize int
	unknown int32
}

// NewEncoder returns an encoder over v producing vectors of length maxSize.
func NewEncoder(v *vocab.Vocabulary, maxSize int) (*Encoder, error) {
	if v == nil {
		return nil, errors.NewValidation("vocabulary", "is nil")
	}
	if maxSize <= 0 {
		return nil, errors.NewValidation("max_size", "must be positive, got %d", maxSize)
	}
	return &Encoder{vocab: v, maxSize: maxSize, unknown: v.UnknownID()}, nil
}

// MaxSize returns the vector length.
func (e *Encoder) MaxSize() int { return e.maxSize }

// UnknownID returns the id substituted for runes outside the vocabulary.
func (e *Encoder) UnknownID() int32 { return e.unknown }

// Encode lowercases s, keeps at most the first MaxSize runes, maps them to
// vocabulary ids (UnknownID for unseen runes) and pads with PadID.
// Strings sharing their first MaxSize runes encode identically.
func (e *Encoder) Encode(s string) Vector {
	out := make(Vector, e.maxSize)
	i := 0
	for _, r := range vocab.Normalize(s) {
		if i == e.maxSize {
			break
		}
		id, ok := e.vocab.ID(r)
		if !ok {
			id = e.unknown
		}
		out[i] = id
		i++
	}
	for ; i < e.maxSize; i++ {
		out[i] = PadID
	}
	return out
}

// EncodeAll encodes every string in order.
func (e *Encoder) EncodeAll(items []string) []Vector {
	out := make([]Vector, len(items))
	for i, s := range items {
		out[i] = e.Encode(s)
	}
	return out
}

// Float32s converts v for float based metrics.
func (v Vector) Float32s() []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(x)
	}
	return out
}
