// Package pathset holds resolved reference paths without duplicates.
//
// Two paths are the same entry when they differ only by letter case or by
// directory separator style. Insertion order is preserved so the rendered
// argument list is reproducible.
package pathset

import (
	"strings"

	"golang.org/x/text/cases"
)

// Set is an ordered, case- and separator-insensitive set of paths.
// The zero value is not usable; call New.
type Set struct {
	fold  cases.Caser
	index map[string]int
	paths []string
}

// New returns an empty set seeded with paths.
func New(paths ...string) *Set {
	s := &Set{
		fold:  cases.Fold(),
		index: make(map[string]int, len(paths)),
	}
	s.AddAll(paths...)
	return s
}

// Key returns the comparison key of a path. A fresh Caser is used because
// Casers are not safe for concurrent use.
func Key(path string) string {
	return key(cases.Fold(), path)
}

func key(fold cases.Caser, path string) string {
	return fold.String(strings.ReplaceAll(path, "\\", "/"))
}

// Add inserts path and reports whether it was not already present.
// Empty paths are ignored.
func (s *Set) Add(path string) bool {
	if path == "" {
		return false
	}
	k := key(s.fold, path)
	if _, ok := s.index[k]; ok {
		return false
	}
	s.index[k] = len(s.paths)
	s.paths = append(s.paths, path)
	return true
}

// AddAll inserts every path in order.
func (s *Set) AddAll(paths ...string) {
	for _, p := range paths {
		s.Add(p)
	}
}

// Contains reports whether an equivalent path is present.
func (s *Set) Contains(path string) bool {
	_, ok := s.index[key(s.fold, path)]
	return ok
}

// FindSuffix returns the first path whose file name ends with suffix,
// compared case-insensitively.
func (s *Set) FindSuffix(suffix string) (string, bool) {
	want := key(s.fold, suffix)
	for _, p := range s.paths {
		if strings.HasSuffix(key(s.fold, p), want) {
			return p, true
		}
	}
	return "", false
}

// Len returns the number of entries.
func (s *Set) Len() int { return len(s.paths) }

// Paths returns a copy of the entries in insertion order.
func (s *Set) Paths() []string {
	out := make([]string, len(s.paths))
	copy(out, s.paths)
	return out
}

// HasSuffixFold reports whether path ends with suffix ignoring case and
// separator style.
func HasSuffixFold(path, suffix string) bool {
	fold := cases.Fold()
	return strings.HasSuffix(key(fold, path), key(fold, suffix))
}
