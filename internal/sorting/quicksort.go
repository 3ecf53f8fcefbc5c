// Package sorting implements the comparator-driven quicksort used by the menu
// pipeline and the recommendation engine. Ordering is computed in memory over
// snapshots fetched from the database; SQL-level ORDER BY is deliberately not
// used for these paths.
package sorting

import (
	"math"
	"strings"
)

// QuickSort returns a new slice ordered by the key function. The input slice is
// left untouched. The sort is unstable: the relative order of equal keys is
// arbitrary. Pivots are chosen with the median-of-three rule so that already
// sorted or reverse-sorted inputs stay near O(n log n).
func QuickSort[T any](items []T, key func(T) float64, descending bool) []T {
	out := make([]T, len(items))
	copy(out, items)
	if len(out) > 1 {
		quickSortRange(out, safeKey(key), descending, 0, len(out)-1)
	}
	return out
}

// QuickSortBalanced behaves exactly like QuickSort but recurses into the
// smaller partition first and iterates over the larger one, bounding the
// auxiliary call stack at O(log n) even on adversarial orderings.
func QuickSortBalanced[T any](items []T, key func(T) float64, descending bool) []T {
	out := make([]T, len(items))
	copy(out, items)
	if len(out) > 1 {
		quickSortBalancedRange(out, safeKey(key), descending, 0, len(out)-1)
	}
	return out
}

// safeKey coerces NaN and infinite keys to 0 so malformed values order
// predictably instead of poisoning comparisons.
func safeKey[T any](key func(T) float64) func(T) float64 {
	return func(v T) float64 {
		k := key(v)
		if math.IsNaN(k) || math.IsInf(k, 0) {
			return 0
		}
		return k
	}
}

func quickSortRange[T any](arr []T, key func(T) float64, descending bool, low, high int) {
	if low >= high {
		return
	}
	p := partition(arr, key, descending, low, high)
	quickSortRange(arr, key, descending, low, p-1)
	quickSortRange(arr, key, descending, p+1, high)
}

func quickSortBalancedRange[T any](arr []T, key func(T) float64, descending bool, low, high int) {
	for low < high {
		p := partition(arr, key, descending, low, high)
		if p-low < high-p {
			quickSortBalancedRange(arr, key, descending, low, p-1)
			low = p + 1
		} else {
			quickSortBalancedRange(arr, key, descending, p+1, high)
			high = p - 1
		}
	}
}

// medianOfThree returns the index of the median of arr[low], arr[mid] and
// arr[high], keeping degenerate pivots away from sorted inputs.
func medianOfThree[T any](arr []T, key func(T) float64, low, high int) int {
	mid := low + (high-low)/2

	a, b, c := key(arr[low]), key(arr[mid]), key(arr[high])

	switch {
	case (a <= b && b <= c) || (c <= b && b <= a):
		return mid
	case (b <= a && a <= c) || (c <= a && a <= b):
		return low
	default:
		return high
	}
}

// partition applies the Lomuto scheme: the pivot is swapped to the end, a
// single forward scan grows the region of elements that precede it, and the
// pivot is finally swapped into place.
func partition[T any](arr []T, key func(T) float64, descending bool, low, high int) int {
	pivotIdx := medianOfThree(arr, key, low, high)
	arr[pivotIdx], arr[high] = arr[high], arr[pivotIdx]
	pivot := key(arr[high])

	i := low - 1
	for j := low; j < high; j++ {
		k := key(arr[j])
		before := k < pivot
		if descending {
			before = k > pivot
		}
		if before {
			i++
			arr[i], arr[j] = arr[j], arr[i]
		}
	}
	arr[i+1], arr[high] = arr[high], arr[i+1]
	return i + 1
}

// QuickSortStrings returns a new slice of the given strings ordered ascending,
// comparing case-insensitively. Used for category facets.
func QuickSortStrings(items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	if len(out) > 1 {
		quickSortStringsRange(out, 0, len(out)-1)
	}
	return out
}

func quickSortStringsRange(arr []string, low, high int) {
	if low >= high {
		return
	}
	p := partitionStrings(arr, low, high)
	quickSortStringsRange(arr, low, p-1)
	quickSortStringsRange(arr, p+1, high)
}

func partitionStrings(arr []string, low, high int) int {
	mid := low + (high-low)/2
	a, b, c := strings.ToLower(arr[low]), strings.ToLower(arr[mid]), strings.ToLower(arr[high])

	pivotIdx := high
	if (a <= b && b <= c) || (c <= b && b <= a) {
		pivotIdx = mid
	} else if (b <= a && a <= c) || (c <= a && a <= b) {
		pivotIdx = low
	}

	arr[pivotIdx], arr[high] = arr[high], arr[pivotIdx]
	pivot := strings.ToLower(arr[high])

	i := low - 1
	for j := low; j < high; j++ {
		if strings.ToLower(arr[j]) < pivot {
			i++
			arr[i], arr[j] = arr[j], arr[i]
		}
	}
	arr[i+1], arr[high] = arr[high], arr[i+1]
	return i + 1
}
