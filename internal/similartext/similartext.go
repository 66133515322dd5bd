// Package similartext produces the ", maybe you mean X?" suggestions attached
// to ColumnNotFound, FunctionNotFound, DatasetNotFound and VariableNotFound
// errors. It is a from-scratch edit-distance matcher, not a
// copy of any single upstream implementation, grounded on the behavior
// dolthub/go-mysql-server's internal/similartext and internal/text_distance
// packages document via their tests: return every candidate tied for the minimum
// edit distance, provided that distance is within a length-scaled
// threshold, and format it as the engine's suggestion clause.
package similartext

import "sort"

// Find returns a ", maybe you mean X?" (or "X or Y?") suffix for word
// against names, or "" if nothing is close enough or names is empty.
func Find(names []string, word string) string {
	best := closest(names, word)
	if len(best) == 0 {
		return ""
	}
	return ", maybe you mean " + join(best) + "?"
}

// FindFromMap is Find over the keys of a map[string]V.
func FindFromMap[V any](names map[string]V, word string) string {
	if len(names) == 0 {
		return ""
	}
	keys := make([]string, 0, len(names))
	for k := range names {
		keys = append(keys, k)
	}
	return Find(keys, word)
}

// Suggest returns the single closest candidate name, or "" if none is close
// enough. Used where only one suggestion (not a list) is wanted.
func Suggest(names []string, word string) string {
	best := closest(names, word)
	if len(best) == 0 {
		return ""
	}
	return best[0]
}

func closest(names []string, word string) []string {
	if len(names) == 0 {
		return nil
	}
	threshold := len(word) / 2
	if threshold < 2 {
		threshold = 2
	}

	minDist := threshold + 1
	var winners []string
	for _, n := range names {
		d := levenshtein(n, word)
		if d > threshold {
			continue
		}
		switch {
		case d < minDist:
			minDist = d
			winners = []string{n}
		case d == minDist:
			winners = append(winners, n)
		}
	}
	sort.Strings(winners)
	return winners
}

func join(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		out := names[0]
		for _, n := range names[1 : len(names)-1] {
			out += ", " + n
		}
		out += " or " + names[len(names)-1]
		return out
	}
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}
	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			curr[j] = m
		}
		prev, curr = curr, prev
	}
	return prev[lb]
}
