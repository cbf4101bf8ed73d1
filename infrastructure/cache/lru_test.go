package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamespaceLRU_SetGet(t *testing.T) {
	// Arrange
	lru := NewNamespaceLRU[[]byte](4)

	// Act
	lru.Set("PAGE", "PK17058", []byte("<html>"))
	value, found := lru.Get("PAGE", "PK17058")

	// Assert
	assert.True(t, found)
	assert.Equal(t, []byte("<html>"), value)
}

func TestNamespaceLRU_NamespacesAreIsolated(t *testing.T) {
	lru := NewNamespaceLRU[string](4)

	lru.Set("a", "key", "one")
	lru.Set("b", "key", "two")

	a, _ := lru.Get("a", "key")
	b, _ := lru.Get("b", "key")
	assert.Equal(t, "one", a)
	assert.Equal(t, "two", b)

	// The composite key must not collide across a ':' boundary
	lru.Set("x:y", "z", "first")
	lru.Set("x", "y:z", "second")
	first, _ := lru.Get("x:y", "z")
	assert.Equal(t, "first", first)
}

func TestNamespaceLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	// Arrange
	lru := NewNamespaceLRU[int](2)
	lru.Set("n", "a", 1)
	lru.Set("n", "b", 2)

	// Act - touch "a" so "b" becomes the eviction candidate
	lru.Get("n", "a")
	lru.Set("n", "c", 3)

	// Assert
	_, foundA := lru.Get("n", "a")
	_, foundB := lru.Get("n", "b")
	_, foundC := lru.Get("n", "c")
	assert.True(t, foundA)
	assert.False(t, foundB)
	assert.True(t, foundC)
	assert.Equal(t, 2, lru.Size())
}

func TestNamespaceLRU_UpdateExisting(t *testing.T) {
	lru := NewNamespaceLRU[int](2)

	lru.Set("n", "a", 1)
	lru.Set("n", "a", 2)

	value, found := lru.Get("n", "a")
	assert.True(t, found)
	assert.Equal(t, 2, value)
	assert.Equal(t, 1, lru.Size())
}

func TestNamespaceLRU_Invalidate(t *testing.T) {
	lru := NewNamespaceLRU[int](4)
	lru.Set("n", "a", 1)
	lru.Set("n", "b", 2)
	lru.Set("m", "a", 3)

	lru.Invalidate("n", "a")
	_, found := lru.Get("n", "a")
	assert.False(t, found)
	assert.Equal(t, 2, lru.Size())

	lru.InvalidateNamespace("n")
	_, found = lru.Get("n", "b")
	assert.False(t, found)
	_, found = lru.Get("m", "a")
	assert.True(t, found)
	assert.Equal(t, 1, lru.Size())
}

func TestNamespaceLRU_MinimumCapacity(t *testing.T) {
	lru := NewNamespaceLRU[int](0)

	lru.Set("n", "a", 1)
	lru.Set("n", "b", 2)

	assert.Equal(t, 1, lru.Size())
}

func TestNamespaceLRU_ConcurrentAccess(t *testing.T) {
	lru := NewNamespaceLRU[int](16)
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", j%20)
				lru.Set("n", key, i)
				lru.Get("n", key)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, lru.Size(), 16)
}
