// Package stratify draws class balanced subsets of a corpus.
package stratify

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/sampleuv"
)

// Quotas splits size evenly over the classes. Each class gets
// size/len(classes) slots and the remainder goes, one slot each, to a
// random subset of classes drawn without replacement.
func Quotas(size int, classes []int, src rand.Source) map[int]int {
	quotas := make(map[int]int, len(classes))
	if len(classes) == 0 || size <= 0 {
		for _, c := range classes {
			quotas[c] = 0
		}
		return quotas
	}

	base := size / len(classes)
	remainder := size % len(classes)

	for _, c := range classes {
		quotas[c] = base
	}

	if remainder > 0 {
		bonus := make([]int, remainder)
		sampleuv.WithoutReplacement(bonus, len(classes), src)
		for _, idx := range bonus {
			quotas[classes[idx]]++
		}
	}

	return quotas
}

// Sample draws, without replacement, up to quotas[class] items of every
// class. A class with fewer items than its quota contributes all of them.
// The result is the concatenation of the per class draws, classes in order
// of first appearance in items; it is not shuffled.
func Sample[T any](items []T, classOf func(T) int, quotas map[int]int, src rand.Source) []T {
	var order []int
	byClass := map[int][]int{}
	for i, it := range items {
		c := classOf(it)
		if _, ok := byClass[c]; !ok {
			order = append(order, c)
		}
		byClass[c] = append(byClass[c], i)
	}

	var out []T
	for _, c := range order {
		indices := byClass[c]
		k := min(quotas[c], len(indices))
		if k <= 0 {
			continue
		}

		picks := make([]int, k)
		sampleuv.WithoutReplacement(picks, len(indices), src)
		for _, p := range picks {
			out = append(out, items[indices[p]])
		}
	}

	return out
}

// Stratified combines Quotas and Sample.
func Stratified[T any](items []T, size int, classes []int, classOf func(T) int, src rand.Source) []T {
	return Sample(items, classOf, Quotas(size, classes, src), src)
}
