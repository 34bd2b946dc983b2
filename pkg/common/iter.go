package common

import "iter"

// Iter2Err yields all in without any error.
func Iter2Err[V any](in ...V) iter.Seq2[V, error] {
	return func(yield func(V, error) bool) {
		for _, v := range in {
			if !yield(v, nil) {
				return
			}
		}
	}
}

// Fail yields exactly the given err.
func Fail[V any](err error) iter.Seq2[V, error] {
	return func(yield func(V, error) bool) {
		var zero V
		yield(zero, err)
	}
}
