package csp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDomain_DedupesPreservesOrder(t *testing.T) {
	d := NewDomain(3, 1, 3, 2, 1)
	assert.Equal(t, []int{3, 1, 2}, d.Values())
	assert.Equal(t, 3, d.Len())
}

func TestDomain_RemoveAndRestore(t *testing.T) {
	d := NewDomain(1, 2, 3)

	require.True(t, d.Remove(2))
	assert.False(t, d.Has(2))
	assert.Equal(t, 2, d.Len())
	assert.ElementsMatch(t, []int{1, 3}, d.Values())

	assert.False(t, d.Remove(2), "removing an already-absent value reports false")

	d.Restore(2)
	assert.True(t, d.Has(2))
	assert.Equal(t, 3, d.Len())
	assert.ElementsMatch(t, []int{1, 2, 3}, d.Values())
}

func TestDomain_RestoreIsIdempotent(t *testing.T) {
	d := NewDomain(1, 2)
	d.Restore(1) // never removed
	assert.Equal(t, 2, d.Len())
}

func TestDomain_IsEmpty(t *testing.T) {
	d := NewDomain(1)
	assert.False(t, d.IsEmpty())
	d.Remove(1)
	assert.True(t, d.IsEmpty())
}

func TestDomain_Clone(t *testing.T) {
	d := NewDomain(1, 2, 3)
	d.Remove(2)

	clone := d.Clone()
	assert.Equal(t, d.Values(), clone.Values())

	clone.Restore(2)
	assert.False(t, d.Has(2), "mutating the clone must not affect the original")
	assert.True(t, clone.Has(2))
}

func TestDomain_RemoveRestoreManyPreservesChecksum(t *testing.T) {
	d := NewDomain(1, 2, 3, 4, 5)
	original := append([]int{}, d.Values()...)

	var removed []int
	for _, v := range []int{2, 4, 1} {
		d.Remove(v)
		removed = append(removed, v)
	}
	for i := len(removed) - 1; i >= 0; i-- {
		d.Restore(removed[i])
	}

	assert.ElementsMatch(t, original, d.Values())
}
