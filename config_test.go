package vkr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig("demo")

	assert.Equal(t, "demo", cfg.Name)
	assert.Equal(t, DefaultFramesInFlight, cfg.framesInFlight())
	assert.Contains(t, cfg.deviceExtensions(), SwapchainExtensionName)
}

func TestConfigFramesInFlightOverride(t *testing.T) {
	cfg := NewConfig("demo")
	cfg.FramesInFlight = 3

	assert.Equal(t, 3, cfg.framesInFlight())
}
