package vocab

import (
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FirstID is the id assigned to the smallest rune of the vocabulary.
const FirstID int32 = 1

// Vocabulary maps every rune seen in a corpus to a unique id.
type Vocabulary struct {
	ids   map[rune]int32
	runes []rune
}

// Normalize lowercases s using Unicode case mapping.
// A Caser keeps state, so a fresh one is used per call.
func Normalize(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Build collects the distinct runes of the lowercased entities and assigns
// ids in ascending rune order starting at FirstID.
func Build(entities []string) *Vocabulary {
	seen := make(map[rune]struct{})
	for _, e := range entities {
		for _, r := range Normalize(e) {
			seen[r] = struct{}{}
		}
	}
	runes := make([]rune, 0, len(seen))
	for r := range seen {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(a, b int) bool { return runes[a] < runes[b] })
	ids := make(map[rune]int32, len(runes))
	for i, r := range runes {
		ids[r] = FirstID + int32(i)
	}
	return &Vocabulary{ids: ids, runes: runes}
}

// ID returns the id of r and whether r belongs to the vocabulary.
func (v *Vocabulary) ID(r rune) (int32, bool) {
	id, ok := v.ids[r]
	return id, ok
}

// Size returns the number of distinct runes.
func (v *Vocabulary) Size() int { return len(v.runes) }

// Runes returns the vocabulary runes in id order.
func (v *Vocabulary) Runes() []rune { return append([]rune(nil), v.runes...) }

// UnknownID is the sentinel id for runes outside the vocabulary. It is one
// past the last assigned id, so it never collides with a rune or padding.
func (v *Vocabulary) UnknownID() int32 { return FirstID + int32(len(v.runes)) }
