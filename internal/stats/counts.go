package stats

import (
	"sort"
	"strconv"

	"github.com/jengzang/ev-dashboard-go/internal/models"
)

// ValueCounts groups labels and counts occurrences.
// Result is ordered by count descending, ties broken by label ascending.
// Empty labels (missing values) are not counted.
func ValueCounts(labels []string) []models.ValueCount {
	freq := make(map[string]int)
	for _, l := range labels {
		if l == "" {
			continue
		}
		freq[l]++
	}

	counts := make([]models.ValueCount, 0, len(freq))
	for label, n := range freq {
		counts = append(counts, models.ValueCount{Label: label, Count: n})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Label < counts[j].Label
	})

	return counts
}

// TopN returns the n largest entries of an already ordered ValueCounts result
func TopN(counts []models.ValueCount, n int) []models.ValueCount {
	if n < 0 || len(counts) <= n {
		return counts
	}
	return counts[:n]
}

// CountByInt counts integer keys and orders the result by key ascending
func CountByInt(keys []int) []models.ValueCount {
	freq := make(map[int]int)
	for _, k := range keys {
		freq[k]++
	}

	ordered := make([]int, 0, len(freq))
	for k := range freq {
		ordered = append(ordered, k)
	}
	sort.Ints(ordered)

	counts := make([]models.ValueCount, len(ordered))
	for i, k := range ordered {
		counts[i] = models.ValueCount{Label: strconv.Itoa(k), Count: freq[k]}
	}
	return counts
}

// Distinct returns the sorted set of distinct non-empty values
func Distinct(values []string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// DistinctInOrder returns distinct non-empty values in first-seen order
func DistinctInOrder(values []string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
