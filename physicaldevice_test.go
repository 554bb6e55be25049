package vkr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func memType(flags vk.MemoryPropertyFlagBits) vk.MemoryType {
	return vk.MemoryType{PropertyFlags: vk.MemoryPropertyFlags(flags)}
}

func TestFindMemoryTypeIndexPicksFirstMatch(t *testing.T) {
	types := []vk.MemoryType{
		memType(vk.MemoryPropertyDeviceLocalBit),
		memType(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit),
		memType(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit),
	}

	index, err := FindMemoryTypeIndex(types, 0b111, vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), index)
}

func TestFindMemoryTypeIndexRespectsMask(t *testing.T) {
	types := []vk.MemoryType{
		memType(vk.MemoryPropertyHostVisibleBit),
		memType(vk.MemoryPropertyHostVisibleBit),
	}

	// Index 0 qualifies by properties but the mask excludes it.
	index, err := FindMemoryTypeIndex(types, 0b10, vk.MemoryPropertyHostVisibleBit)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), index)
}

func TestFindMemoryTypeIndexRequiresAllProperties(t *testing.T) {
	types := []vk.MemoryType{
		memType(vk.MemoryPropertyHostVisibleBit),
	}

	// Host visible alone is not enough when coherent is also required.
	_, err := FindMemoryTypeIndex(types, 0b1, vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit)
	assert.True(t, errors.Is(err, ErrNoSuitableMemoryType))
}

func TestFindMemoryTypeIndexAcceptsSuperset(t *testing.T) {
	types := []vk.MemoryType{
		memType(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit | vk.MemoryPropertyHostCachedBit),
	}

	index, err := FindMemoryTypeIndex(types, 0b1, vk.MemoryPropertyHostVisibleBit)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), index)
}

func TestFindMemoryTypeIndexEmptyMask(t *testing.T) {
	types := []vk.MemoryType{
		memType(vk.MemoryPropertyHostVisibleBit),
	}

	_, err := FindMemoryTypeIndex(types, 0, vk.MemoryPropertyHostVisibleBit)
	assert.True(t, errors.Is(err, ErrNoSuitableMemoryType))
}
