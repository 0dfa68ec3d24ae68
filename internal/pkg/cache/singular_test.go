package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSingularMutexGetSet(t *testing.T) {
	c := NewSingular[[]int]("test")
	calls := 0
	compute := func() ([]int, error) {
		calls++
		return []int{1, 2, 3}, nil
	}

	v, err := c.MutexGetSet(compute, 0)
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, v)

	_, err = c.MutexGetSet(compute, 0)
	assert.NoError(t, err)
	assert.Equal(t, 1, calls, "second call should be served from cache")

	c.Delete()
	_, ok := c.Get()
	assert.False(t, ok)

	_, err = c.MutexGetSet(compute, 0)
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}
