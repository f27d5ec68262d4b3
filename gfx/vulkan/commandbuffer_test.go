package vulkan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTakePendingAcquireClearsAfterFirstRead(t *testing.T) {
	want := &pendingAcquire{}
	b := &Backend{pendingAcquire: want}

	got := b.takePendingAcquire()
	assert.Same(t, want, got)
	assert.Nil(t, b.takePendingAcquire(), "a second read without an intervening SwapchainAcquire must find nothing")
}

func TestTakePendingAcquireNilWhenNeverSet(t *testing.T) {
	b := &Backend{}
	assert.Nil(t, b.takePendingAcquire())
}
