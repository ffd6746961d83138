package audit

import (
	"sort"
)

// IDSet is a set of normalised user IDs.
type IDSet map[string]struct{}

// NewIDSet returns the set of non-blank IDs.
func NewIDSet(ids ...string) IDSet {
	set := IDSet{}
	for _, id := range ids {
		if id != "" {
			set[id] = struct{}{}
		}
	}

	return set
}

// newUserSet returns the set of all the IDs, including blanks.
func newUserSet(ids ...string) IDSet {
	set := IDSet{}
	for _, id := range ids {
		set[id] = struct{}{}
	}

	return set
}

func (s IDSet) Contains(id string) bool {
	_, ok := s[id]

	return ok
}

// Minus returns the IDs in s that are not in t, sorted ascending.
func (s IDSet) Minus(t IDSet) []string {
	list := []string{}
	for id := range s {
		if !t.Contains(id) {
			list = append(list, id)
		}
	}

	sort.Strings(list)

	return list
}

func (s IDSet) Equal(t IDSet) bool {
	if len(s) != len(t) {
		return false
	}

	for id := range s {
		if !t.Contains(id) {
			return false
		}
	}

	return true
}

func (s IDSet) Sorted() []string {
	list := make([]string, 0, len(s))
	for id := range s {
		list = append(list, id)
	}

	sort.Strings(list)

	return list
}
