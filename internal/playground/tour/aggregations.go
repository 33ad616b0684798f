package tour

import (
	"fmt"
	"io"
	"slices"
)

type number interface {
	~int | ~int64 | ~float64
}

func Sum[T number](xs []T) T {
	var total T
	for _, x := range xs {
		total += x
	}
	return total
}

func Map[T, U any](xs []T, f func(T) U) []U {
	out := make([]U, 0, len(xs))
	for _, x := range xs {
		out = append(out, f(x))
	}
	return out
}

func Filter[T any](xs []T, keep func(T) bool) []T {
	var out []T
	for _, x := range xs {
		if keep(x) {
			out = append(out, x)
		}
	}
	return out
}

// Reduce folds xs from the left starting with the first element.
// It panics on an empty slice.
func Reduce[T any](xs []T, f func(T, T) T) T {
	acc := xs[0]
	for _, x := range xs[1:] {
		acc = f(acc, x)
	}
	return acc
}

// GroupBy keeps groups in order of first appearance.
func GroupBy[T any, K comparable](xs []T, key func(T) K) ([]K, map[K][]T) {
	var order []K
	groups := make(map[K][]T)
	for _, x := range xs {
		k := key(x)
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], x)
	}
	return order, groups
}

func isEven(x int) bool { return x%2 == 0 }

func Aggregations(w io.Writer) {
	numbers := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	total := Sum(numbers)
	fmt.Fprintf(w, "Sum: %d\n", total)
	fmt.Fprintf(w, "Count: %d\n", len(numbers))
	fmt.Fprintf(w, "Average: %.2f\n", float64(total)/float64(len(numbers)))
	fmt.Fprintf(w, "Min: %d, Max: %d\n", slices.Min(numbers), slices.Max(numbers))

	fmt.Fprintln(w, "\nMap (squared):")
	fmt.Fprintf(w, "  %v\n", Map(numbers, func(x int) int { return x * x }))
	fmt.Fprintln(w, "Filter (even numbers):")
	fmt.Fprintf(w, "  %v\n", Filter(numbers, isEven))

	fmt.Fprintln(w, "\nFirst/Last:")
	fmt.Fprintf(w, "  First: %d\n", numbers[0])
	fmt.Fprintf(w, "  Last: %d\n", numbers[len(numbers)-1])
	if i := slices.IndexFunc(numbers, func(x int) bool { return x > 5 }); i >= 0 {
		fmt.Fprintf(w, "  First > 5: %d\n", numbers[i])
	}

	fmt.Fprintf(w, "\nCount (even): %d\n", len(Filter(numbers, isEven)))
	product := Reduce(numbers[:5], func(a, b int) int { return a * b })
	fmt.Fprintf(w, "Reduce (product 1-5): %d\n", product)

	fmt.Fprintln(w, "\nGrouping by odd/even:")
	keys, groups := GroupBy(numbers, func(x int) string {
		if isEven(x) {
			return "even"
		}
		return "odd"
	})
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %v\n", k, groups[k])
	}

	unsorted := []int{3, 1, 4, 1, 5, 9, 2, 6, 5}
	fmt.Fprintln(w, "\nSorting:")
	fmt.Fprintf(w, "  Original: %v\n", unsorted)
	asc := slices.Clone(unsorted)
	slices.Sort(asc)
	fmt.Fprintf(w, "  Ascending: %v\n", asc)
	desc := slices.Clone(asc)
	slices.Reverse(desc)
	fmt.Fprintf(w, "  Descending: %v\n", desc)
}
