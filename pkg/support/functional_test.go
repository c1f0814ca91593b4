package support

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartialAndCurry(t *testing.T) {
	join := func(a, b string) string { return a + "-" + b }
	join3 := func(a, b, c string) string { return a + b + c }

	assert.Equal(t, "x-y", Partial(join, "x")("y"))
	assert.Equal(t, "xyz", Partial3(join3, "x")("y", "z"))
	assert.Equal(t, "x-y", Curry(join)("x")("y"))
	assert.Equal(t, "xyz", Curry3(join3)("x")("y")("z"))
}

func TestComposeAppliesLeftToRight(t *testing.T) {
	add := func(x int) int { return x + 1 }
	double := func(x int) int { return x * 2 }

	assert.Equal(t, 8, Compose(add, double)(3))
	assert.Equal(t, 7, Compose(double, add)(3))
	assert.Equal(t, 3, Compose[int]()(3))
}

func TestMemoize(t *testing.T) {
	calls := 0
	upper := Memoize(func(s string) string {
		calls++
		return strings.ToUpper(s)
	})

	v, cached := upper("a")
	assert.Equal(t, "A", v)
	assert.False(t, cached)

	v, cached = upper("a")
	assert.Equal(t, "A", v)
	assert.True(t, cached)

	_, cached = upper("b")
	assert.False(t, cached)
	assert.Equal(t, 2, calls)
}

func TestMemoizeConcurrent(t *testing.T) {
	square := Memoize(func(n int) int { return n * n })

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, _ := square(i % 5)
			assert.Equal(t, (i%5)*(i%5), v)
		}()
	}
	wg.Wait()
}

func TestOnce(t *testing.T) {
	calls := 0
	setup := Once(func(n int) int {
		calls++
		return n * 10
	})

	assert.Equal(t, 10, setup(1))
	assert.Equal(t, 0, setup(2))
	assert.Equal(t, 1, calls)
}
