// Package util holds small helpers shared by the generator, the machines and
// the verification tools.
package util

import "math/rand"

// MakeConstGen returns a generator that always yields constant.
func MakeConstGen(constant int) func() int {
	return func() int {
		return constant
	}
}

// MakeIncreasingGen returns a generator counting up from start+1.
func MakeIncreasingGen(start int) func() int {
	current := start
	return func() int {
		current++
		return current
	}
}

// MakeDigitGen returns a generator of pseudo-random decimal digits. The same
// seed always yields the same sequence.
func MakeDigitGen(seed int64) func() int {
	r := rand.New(rand.NewSource(seed))
	return func() int {
		return r.Intn(10)
	}
}

// Take draws n values from gen.
func Take(gen func() int, n int) []int {
	values := make([]int, n)
	for i := range values {
		values[i] = gen()
	}
	return values
}
