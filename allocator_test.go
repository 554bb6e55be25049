package vkr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearAllocatorAligns(t *testing.T) {
	a := NewLinearAllocator(1024)

	offset, err := a.Allocate(10, 16)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), offset)

	offset, err = a.Allocate(10, 16)
	require.NoError(t, err)
	assert.Equal(t, uint64(16), offset)

	offset, err = a.Allocate(10, 64)
	require.NoError(t, err)
	assert.Equal(t, uint64(64), offset)
}

func TestLinearAllocatorExhaustion(t *testing.T) {
	a := NewLinearAllocator(64)

	_, err := a.Allocate(64, 1)
	require.NoError(t, err)

	_, err = a.Allocate(1, 1)
	assert.True(t, errors.Is(err, ErrAllocation))
}

func TestLinearAllocatorFreeRewindsLast(t *testing.T) {
	a := NewLinearAllocator(128)

	first, err := a.Allocate(32, 1)
	require.NoError(t, err)

	second, err := a.Allocate(32, 1)
	require.NoError(t, err)

	// Freeing an earlier allocation changes nothing.
	a.Free(first)
	assert.Equal(t, uint64(64), 128-a.Remaining())

	// Freeing the most recent one rewinds.
	a.Free(second)
	assert.Equal(t, uint64(32), 128-a.Remaining())
}

func TestLinearAllocatorReset(t *testing.T) {
	a := NewLinearAllocator(128)

	_, err := a.Allocate(100, 1)
	require.NoError(t, err)

	a.Reset()
	assert.Equal(t, uint64(128), a.Remaining())

	offset, err := a.Allocate(128, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), offset)
}

func TestLinearAllocatorZeroAlignment(t *testing.T) {
	a := NewLinearAllocator(16)

	_, err := a.Allocate(8, 0)
	require.NoError(t, err)

	offset, err := a.Allocate(8, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(8), offset)
}
