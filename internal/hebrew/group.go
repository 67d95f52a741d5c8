package hebrew

import (
	"log"
	"sort"
	"unicode/utf8"
)

// OtherGroup collects labels without any Hebrew letter.
const OtherGroup = "#"

// Group is a bucket of items sharing the same first Hebrew letter.
type Group[T any] struct {
	Letter string `json:"letter"`
	Items  []T    `json:"items"`
}

// FirstLetter returns the first rune of text, scanning left to right, that is in
// Alphabet. Text is not normalized.
func FirstLetter(text string) (string, bool) {
	for _, r := range text {
		if IsLetter(r) {
			return string(r), true
		}
	}
	return "", false
}

func groupKey(text string) string {
	if letter, ok := FirstLetter(text); ok {
		return letter
	}
	return OtherGroup
}

// letterRank orders group keys by Alphabet, unknown keys last.
func letterRank(letter string) int {
	r, size := utf8.DecodeRuneInString(letter)
	if size == len(letter) {
		if i := Index(r); i >= 0 {
			return i
		}
	}
	return len(Alphabet)
}

// GroupByLetter buckets items by the first Hebrew letter of their label, using
// OtherGroup when there is none. Groups come in alphabet order with OtherGroup
// last; items in each group are sorted with Compare.
func GroupByLetter[T any](items []T, label func(T) string) []Group[T] {
	buckets := make(map[string][]T)
	var order []string
	for _, item := range items {
		key := groupKey(label(item))
		if _, seen := buckets[key]; !seen {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], item)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return letterRank(order[i]) < letterRank(order[j])
	})

	groups := make([]Group[T], 0, len(order))
	for _, key := range order {
		bucket := buckets[key]
		SortBy(bucket, label)
		groups = append(groups, Group[T]{Letter: key, Items: bucket})
	}
	return groups
}

// boundIndex resolves a single-letter range bound.
func boundIndex(letter string) int {
	r, size := utf8.DecodeRuneInString(letter)
	if letter == "" || size != len(letter) {
		return -1
	}
	return Index(r)
}

// FilterByLetterRange keeps items whose first Hebrew letter lies between start
// and end inclusive. When either bound is not a Hebrew letter the input is
// returned unfiltered and a warning is logged.
func FilterByLetterRange[T any](items []T, label func(T) string, start, end string) []T {
	lo, hi := boundIndex(start), boundIndex(end)
	if lo < 0 || hi < 0 {
		log.Printf("Warning: invalid Hebrew letter range %q-%q, returning items unfiltered", start, end)
		return items
	}

	filtered := make([]T, 0, len(items))
	for _, item := range items {
		letter, ok := FirstLetter(label(item))
		if !ok {
			continue
		}
		r, _ := utf8.DecodeRuneInString(letter)
		if idx := Index(r); idx >= lo && idx <= hi {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// AvailableLetters lists the distinct first letters present, in alphabet order.
// OtherGroup is included, last, when some label has no Hebrew letter.
func AvailableLetters[T any](items []T, label func(T) string) []string {
	seen := make(map[string]struct{})
	letters := make([]string, 0)
	for _, item := range items {
		key := groupKey(label(item))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		letters = append(letters, key)
	}
	sort.SliceStable(letters, func(i, j int) bool {
		return letterRank(letters[i]) < letterRank(letters[j])
	})
	return letters
}
