// Package aggregate turns fetched record lists into dashboard summaries.
// Every function is pure and total: empty input gives empty or zero output.
package aggregate

// Group is one key of a group-by with its record count and value sum.
type Group struct {
	Key   string  `json:"key" yaml:"key"`
	Count int     `json:"count" yaml:"count"`
	Sum   float64 `json:"sum" yaml:"sum"`
}

// GroupCountSum groups items by key, counting them and summing value.
// Groups come back in the order their key was first seen. A nil value
// selector sums nothing.
func GroupCountSum[T any](items []T, key func(T) string, value func(T) float64) []Group {
	groups := []Group{}
	index := make(map[string]int)
	for _, it := range items {
		k := key(it)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Key: k})
		}
		groups[i].Count++
		if value != nil {
			groups[i].Sum += value(it)
		}
	}
	return groups
}

// Filter returns the items matching keep, never nil.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := []T{}
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
