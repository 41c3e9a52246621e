// Package selector implements InvalidBlockSelector: the final post-pass
// that chooses the smallest subset of candidates whose removal validates
// the document (spec.md §4.8, system overview item 9).
package selector

// Validates reports whether removing this subset makes the document valid.
type Validates[T any] func(subset []T) (bool, error)

// Select enumerates non-empty subsets of items in non-decreasing size order
// and returns the first whose removal validates. maxSubsetSize caps the
// search; 0 means exhaustive (the test oracle). When the cap is reached
// without finding a validating subset, Select falls back to returning every
// item, per spec.md §9's guidance for production implementations.
func Select[T any](items []T, validates Validates[T], maxSubsetSize int) ([]T, error) {
	if len(items) == 0 {
		return nil, nil
	}

	limit := len(items)
	capped := maxSubsetSize > 0 && maxSubsetSize < limit
	if capped {
		limit = maxSubsetSize
	}

	for size := 1; size <= limit; size++ {
		subset, found, err := trySize(items, validates, size)
		if err != nil {
			return nil, err
		}
		if found {
			return subset, nil
		}
	}

	if capped {
		return items, nil
	}
	return nil, nil
}

// trySize enumerates every size-sized combination of items (in ascending
// index order, so results are deterministic) and returns the first one
// whose removal validates.
func trySize[T any](items []T, validates Validates[T], size int) ([]T, bool, error) {
	n := len(items)
	combo := make([]int, size)
	for i := range combo {
		combo[i] = i
	}

	for {
		subset := make([]T, size)
		for i, idx := range combo {
			subset[i] = items[idx]
		}

		ok, err := validates(subset)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return subset, true, nil
		}

		i := size - 1
		for i >= 0 && combo[i] == n-size+i {
			i--
		}
		if i < 0 {
			return nil, false, nil
		}
		combo[i]++
		for j := i + 1; j < size; j++ {
			combo[j] = combo[j-1] + 1
		}
	}
}
