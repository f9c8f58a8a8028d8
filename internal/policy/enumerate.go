package policy

// Iterative combination generators backing the branching policies. Budgets
// and drop counts come straight from configuration, so none of these may
// recurse: depth would scale with user input.

// boundedVectors enumerates every length-k vector of nonnegative integers
// whose sum is at most budget, in odometer order starting from the all-zero
// vector. For k == 0 it yields the single empty vector.
func boundedVectors(k, budget int) [][]int {
	if k == 0 {
		return [][]int{nil}
	}
	var out [][]int
	vec := make([]int, k)
	for {
		cp := make([]int, k)
		copy(cp, vec)
		out = append(out, cp)
		i := k - 1
		for ; i >= 0; i-- {
			vec[i]++
			if intSum(vec) <= budget {
				break
			}
			vec[i] = 0
		}
		if i < 0 {
			return out
		}
	}
}

// combinations enumerates every way to choose d of n indices, in
// lexicographic order. d greater than n is clamped to n.
func combinations(n, d int) [][]int {
	if d > n {
		d = n
	}
	if d == 0 {
		return [][]int{nil}
	}
	idx := make([]int, d)
	for i := range idx {
		idx[i] = i
	}
	var out [][]int
	for {
		cp := make([]int, d)
		copy(cp, idx)
		out = append(out, cp)
		// advance the rightmost index that still has room
		i := d - 1
		for i >= 0 && idx[i] == n-d+i {
			i--
		}
		if i < 0 {
			return out
		}
		idx[i]++
		for j := i + 1; j < d; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// crossIndex enumerates every joint choice over positions with the given
// sizes: each yielded vector v satisfies 0 <= v[i] < sizes[i]. A zero size
// anywhere yields nothing; an empty sizes list yields the single empty
// choice.
func crossIndex(sizes []int) [][]int {
	for _, n := range sizes {
		if n == 0 {
			return nil
		}
	}
	k := len(sizes)
	if k == 0 {
		return [][]int{nil}
	}
	var out [][]int
	vec := make([]int, k)
	for {
		cp := make([]int, k)
		copy(cp, vec)
		out = append(out, cp)
		i := k - 1
		for ; i >= 0; i-- {
			vec[i]++
			if vec[i] < sizes[i] {
				break
			}
			vec[i] = 0
		}
		if i < 0 {
			return out
		}
	}
}

func intSum(v []int) int {
	total := 0
	for _, n := range v {
		total += n
	}
	return total
}

func allZero(v []int) bool {
	for _, n := range v {
		if n != 0 {
			return false
		}
	}
	return true
}
