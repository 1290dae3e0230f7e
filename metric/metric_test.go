package metric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/entity-corrector/vector"
	"github.com/viant/entity-corrector/vocab"
)

func TestStrings(t *testing.T) {
	testCases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"atlnta", "atlanta", 1},
		{"ab", "ba", 1},
		{"ca", "abc", 2}, // OSA would give 3
		{"the cat ate the bag", "the cbt ate the bag", 1},
		{"héllo", "hello", 1},
	}
	for _, tc := range testCases {
		t.Run(tc.a+"|"+tc.b, func(t *testing.T) {
			assert.Equal(t, tc.want, Strings(tc.a, tc.b))
			assert.Equal(t, tc.want, Strings(tc.b, tc.a))
		})
	}
}

func TestDamerauProperties(t *testing.T) {
	words := []string{"", "a", "ab", "ba", "abc", "ca", "acb", "the", "then", "hte", "bag", "gab", "cat out of the bag"}
	for _, a := range words {
		assert.Zero(t, Strings(a, a))
		for _, b := range words {
			dab := Strings(a, b)
			assert.GreaterOrEqual(t, dab, 0)
			assert.Equal(t, dab, Strings(b, a), "symmetry %q %q", a, b)
			if a != b {
				assert.Positive(t, dab, "identity %q %q", a, b)
			}
			for _, c := range words {
				assert.LessOrEqual(t, Strings(a, c), dab+Strings(b, c), "triangle %q %q %q", a, b, c)
			}
		}
	}
}

func TestVectors(t *testing.T) {
	corpus := []string{"the cat ate the bag", "the cbt ate the bag"}
	enc, err := vector.NewEncoder(vocab.Build(corpus), 50)
	require.NoError(t, err)

	x := enc.Encode("the cat ate the bag")
	assert.Equal(t, 1.0, Vectors(x, enc.Encode("the cbt ate the bag")))
	assert.Equal(t, 1.0, Vectors(x, enc.Encode("the cat ate the bag!")))
	assert.Equal(t, 0.0, Vectors(x, x))
}

func TestEuclidean(t *testing.T) {
	a := vector.Vector{0, 0}
	b := vector.Vector{3, 4}
	assert.InDelta(t, 5.0, Euclidean(a, b), 1e-6)
	assert.InDelta(t, 5.0, Euclidean(b, a), 1e-6)
	assert.Zero(t, Euclidean(b, b))
}

func TestNameFunction(t *testing.T) {
	a, b := vector.Vector{1, 2, 3}, vector.Vector{1, 3, 2}
	require.NotNil(t, NameDamerau.Function())
	require.NotNil(t, Name("").Function())
	assert.Equal(t, 1.0, NameDamerau.Function()(a, b))
	assert.InDelta(t, math.Sqrt(2), NameEuclidean.Function()(a, b), 1e-6)
	assert.Nil(t, Name("cosine").Function())
}
