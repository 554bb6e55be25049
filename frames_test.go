package vkr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameRingAdvancesModuloSlots(t *testing.T) {
	ring := newFrameRing(2)
	ring.Reset(3)

	assert.Equal(t, 0, ring.Current())
	ring.Advance()
	assert.Equal(t, 1, ring.Current())
	ring.Advance()
	assert.Equal(t, 0, ring.Current())
}

func TestFrameRingTracksImageOwners(t *testing.T) {
	ring := newFrameRing(2)
	ring.Reset(3)

	// No image has an owner before its first claim.
	for i := 0; i < 3; i++ {
		assert.Equal(t, -1, ring.Owner(i))
	}

	ring.Claim(1)
	assert.Equal(t, 0, ring.Owner(1))

	ring.Advance()
	ring.Claim(1)
	assert.Equal(t, 1, ring.Owner(1))
	assert.Equal(t, -1, ring.Owner(0))
}

func TestFrameRingResetClearsOwners(t *testing.T) {
	ring := newFrameRing(2)
	ring.Reset(2)

	ring.Claim(0)
	ring.Advance()

	ring.Reset(4)
	for i := 0; i < 4; i++ {
		assert.Equal(t, -1, ring.Owner(i))
	}
	// The current slot survives a reset.
	assert.Equal(t, 1, ring.Current())
}

func TestFrameRingOwnerOutOfRange(t *testing.T) {
	ring := newFrameRing(2)
	ring.Reset(2)

	assert.Equal(t, -1, ring.Owner(-1))
	assert.Equal(t, -1, ring.Owner(5))
}
