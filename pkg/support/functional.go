package support

import "sync"

// Partial binds the first argument of fn.
func Partial[A, B, R any](fn func(A, B) R, a A) func(B) R {
	return func(b B) R { return fn(a, b) }
}

func Partial3[A, B, C, R any](fn func(A, B, C) R, a A) func(B, C) R {
	return func(b B, c C) R { return fn(a, b, c) }
}

func Curry[A, B, R any](fn func(A, B) R) func(A) func(B) R {
	return func(a A) func(B) R {
		return func(b B) R { return fn(a, b) }
	}
}

func Curry3[A, B, C, R any](fn func(A, B, C) R) func(A) func(B) func(C) R {
	return func(a A) func(B) func(C) R {
		return func(b B) func(C) R {
			return func(c C) R { return fn(a, b, c) }
		}
	}
}

// Compose chains fns left to right: Compose(f, g)(x) == g(f(x)).
// With no functions it is the identity.
func Compose[T any](fns ...func(T) T) func(T) T {
	return func(x T) T {
		for _, fn := range fns {
			x = fn(x)
		}
		return x
	}
}

// Memoize caches fn per argument. The second result reports whether the
// value came from the cache.
func Memoize[K comparable, V any](fn func(K) V) func(K) (V, bool) {
	var (
		mu    sync.Mutex
		cache = make(map[K]V)
	)

	return func(key K) (V, bool) {
		mu.Lock()
		defer mu.Unlock()

		if v, ok := cache[key]; ok {
			return v, true
		}
		v := fn(key)
		cache[key] = v
		return v, false
	}
}

// Once runs fn on the first call only; later calls return the zero value.
func Once[A, R any](fn func(A) R) func(A) R {
	var once sync.Once
	return func(a A) R {
		var r R
		once.Do(func() { r = fn(a) })
		return r
	}
}
