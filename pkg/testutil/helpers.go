// Package testutil provides common utility functions for testing.
package testutil

import "fmt"

// SequentialIDs returns a generator yielding prefix-1, prefix-2, ... so tests
// can predict entry identifiers.
func SequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// FixedIDs returns a generator that hands out ids in order and then repeats
// the last one.
func FixedIDs(ids ...string) func() string {
	next := 0
	return func() string {
		if len(ids) == 0 {
			return ""
		}
		id := ids[next]
		if next < len(ids)-1 {
			next++
		}
		return id
	}
}
