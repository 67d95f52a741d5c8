// Package hebrew provides Hebrew alphabetical ordering, first-letter lookup,
// letter grouping and letter-range filtering for candidate labels.
package hebrew

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Alphabet lists the Hebrew letters in sort order. Final forms follow their base letter.
var Alphabet = []rune("אבגדהוזחטיכךלמםנןסעפףצץקרשת")

var letterIndex = func() map[rune]int {
	m := make(map[rune]int, len(Alphabet))
	for i, r := range Alphabet {
		m[r] = i
	}
	return m
}()

// collators is a pool because a Collator keeps internal buffers and is not
// safe for concurrent use.
var collators = sync.Pool{
	New: func() any { return collate.New(language.Hebrew) },
}

// Index returns the position of r in Alphabet, or -1.
func Index(r rune) int {
	if i, ok := letterIndex[r]; ok {
		return i
	}
	return -1
}

// IsLetter reports whether r is in Alphabet.
func IsLetter(r rune) bool {
	_, ok := letterIndex[r]
	return ok
}

// Compare orders two labels alphabetically with Hebrew letters first.
// Empty labels sort last. It returns a negative number when a sorts before b,
// zero when they tie and a positive number otherwise.
func Compare(a, b string) int {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	}

	ra, rb := []rune(a), []rune(b)
	n := min(len(ra), len(rb))
	for i := 0; i < n; i++ {
		if c := compareRunes(ra[i], rb[i]); c != 0 {
			return c
		}
	}
	return len(ra) - len(rb)
}

func compareRunes(a, b rune) int {
	if a == b {
		return 0
	}
	ia, ib := Index(a), Index(b)
	switch {
	case ia >= 0 && ib >= 0:
		return ia - ib
	case ia >= 0:
		return -1
	case ib >= 0:
		return 1
	}

	c := collators.Get().(*collate.Collator)
	defer collators.Put(c)
	return c.CompareString(string(a), string(b))
}

// Sort orders labels in place using Compare.
func Sort(labels []string) {
	sort.SliceStable(labels, func(i, j int) bool {
		return Compare(labels[i], labels[j]) < 0
	})
}

// SortBy orders items in place by the Compare order of their labels.
func SortBy[T any](items []T, label func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		return Compare(label(items[i]), label(items[j])) < 0
	})
}
