package sorting

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identity(v float64) float64 { return v }

func assertSortedAsc(t *testing.T, values []float64) {
	t.Helper()
	for i := 1; i < len(values); i++ {
		assert.LessOrEqual(t, values[i-1], values[i])
	}
}

func assertSortedDesc(t *testing.T, values []float64) {
	t.Helper()
	for i := 1; i < len(values); i++ {
		assert.GreaterOrEqual(t, values[i-1], values[i])
	}
}

func countValues(values []float64) map[float64]int {
	counts := make(map[float64]int)
	for _, v := range values {
		counts[v]++
	}
	return counts
}

func TestQuickSortEmptyAndSingle(t *testing.T) {
	assert.Empty(t, QuickSort([]float64{}, identity, false))
	assert.Equal(t, []float64{42}, QuickSort([]float64{42}, identity, false))
}

func TestQuickSortAscending(t *testing.T) {
	input := []float64{15.99, 8.99, 13.49, 2.5, 8.99}
	got := QuickSort(input, identity, false)

	assertSortedAsc(t, got)
	assert.Equal(t, countValues(input), countValues(got))
}

func TestQuickSortDescending(t *testing.T) {
	input := []float64{15.99, 8.99, 13.49, 2.5, 8.99}
	got := QuickSort(input, identity, true)

	assertSortedDesc(t, got)
	assert.Equal(t, countValues(input), countValues(got))
}

func TestQuickSortLeavesInputUntouched(t *testing.T) {
	input := []float64{3, 1, 2}
	_ = QuickSort(input, identity, false)
	assert.Equal(t, []float64{3, 1, 2}, input)
}

func TestQuickSortIdempotent(t *testing.T) {
	input := []float64{9, 4, 7, 1, 4, 9}
	once := QuickSort(input, identity, false)
	twice := QuickSort(once, identity, false)
	assert.Equal(t, once, twice)
}

func TestQuickSortCoercesNonFiniteKeys(t *testing.T) {
	input := []float64{5, math.NaN(), -3, math.Inf(1), 1, math.Inf(-1)}
	got := QuickSort(input, identity, false)

	require.Len(t, got, len(input))
	// NaN and the infinities all sort as 0, landing between -3 and 1.
	assert.Equal(t, -3.0, got[0])
	assert.Equal(t, 5.0, got[len(got)-1])
}

func TestQuickSortAlreadySortedInput(t *testing.T) {
	input := make([]float64, 2000)
	for i := range input {
		input[i] = float64(i)
	}
	got := QuickSort(input, identity, false)
	assert.Equal(t, input, got)
}

func TestQuickSortReverseSortedInput(t *testing.T) {
	input := make([]float64, 2000)
	for i := range input {
		input[i] = float64(len(input) - i)
	}
	got := QuickSort(input, identity, false)
	assertSortedAsc(t, got)
	assert.Equal(t, 1.0, got[0])
	assert.Equal(t, 2000.0, got[len(got)-1])
}

func TestQuickSortByStructKey(t *testing.T) {
	type dish struct {
		name  string
		price float64
	}
	input := []dish{
		{"Carbonara", 15.99},
		{"Caesar Salad", 8.99},
		{"Tiramisu", 6.99},
	}

	got := QuickSort(input, func(d dish) float64 { return d.price }, false)

	require.Len(t, got, 3)
	assert.Equal(t, "Tiramisu", got[0].name)
	assert.Equal(t, "Carbonara", got[2].name)
}

func TestQuickSortBalancedMatchesQuickSort(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	input := make([]float64, 1500)
	for i := range input {
		input[i] = math.Floor(rng.Float64() * 100)
	}

	plain := QuickSort(input, identity, false)
	balanced := QuickSortBalanced(input, identity, false)
	assert.Equal(t, plain, balanced)

	plainDesc := QuickSort(input, identity, true)
	balancedDesc := QuickSortBalanced(input, identity, true)
	assert.Equal(t, plainDesc, balancedDesc)
}

func TestQuickSortBalancedSortedInput(t *testing.T) {
	// Sorted and reverse-sorted inputs are the adversarial cases for naive
	// pivoting; the balanced variant must handle them at full size.
	input := make([]float64, 5000)
	for i := range input {
		input[i] = float64(i)
	}
	assert.Equal(t, input, QuickSortBalanced(input, identity, false))

	reversed := make([]float64, len(input))
	for i := range reversed {
		reversed[i] = float64(len(reversed) - i)
	}
	assertSortedAsc(t, QuickSortBalanced(reversed, identity, false))
}

func TestMedianOfThree(t *testing.T) {
	key := identity

	// Sorted triple: the middle element is the median.
	assert.Equal(t, 1, medianOfThree([]float64{1, 2, 3}, key, 0, 2))
	// Reverse-sorted triple: still the middle element.
	assert.Equal(t, 1, medianOfThree([]float64{3, 2, 1}, key, 0, 2))
	// Median at the ends.
	assert.Equal(t, 0, medianOfThree([]float64{2, 1, 3}, key, 0, 2))
	assert.Equal(t, 2, medianOfThree([]float64{1, 3, 2}, key, 0, 2))
}

func TestQuickSortStrings(t *testing.T) {
	input := []string{"Salad", "appetizer", "Main Course", "Dessert", "beverage"}
	got := QuickSortStrings(input)

	assert.Equal(t, []string{"appetizer", "beverage", "Dessert", "Main Course", "Salad"}, got)
	// Input untouched.
	assert.Equal(t, "Salad", input[0])
}

func TestQuickSortStringsEmpty(t *testing.T) {
	assert.Empty(t, QuickSortStrings(nil))
	assert.Equal(t, []string{"one"}, QuickSortStrings([]string{"one"}))
}
