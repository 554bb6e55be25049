package vkr

import (
	"fmt"
)

// frameRing tracks which frame slot is current and which slot last
// rendered to each swapchain image. Slots advance modulo the slot count
// every frame whether or not work was submitted; owners record slot
// indices, with -1 meaning no slot has claimed the image yet.
type frameRing struct {
	slots int
	frame int
	owner []int
}

func newFrameRing(slots int) *frameRing {
	return &frameRing{slots: slots}
}

// Reset forgets all image ownership and sizes the owner list to the new
// image count. The current slot is preserved.
func (r *frameRing) Reset(imageCount int) {
	r.owner = make([]int, imageCount)
	for i := range r.owner {
		r.owner[i] = -1
	}
}

// Current returns the index of the current frame slot.
func (r *frameRing) Current() int {
	return r.frame
}

// Owner returns the slot that last claimed the image, or -1.
func (r *frameRing) Owner(image int) int {
	if image < 0 || image >= len(r.owner) {
		return -1
	}
	return r.owner[image]
}

// Claim records the current slot as the owner of the image.
func (r *frameRing) Claim(image int) {
	r.owner[image] = r.frame
}

// Advance moves to the next slot. It runs at the end of every frame,
// including frames abandoned after an out of date acquire.
func (r *frameRing) Advance() {
	r.frame = (r.frame + 1) % r.slots
}

// FrameSync owns the per-slot synchronization objects of the frame loop:
// an image available semaphore, a render finished semaphore and an in
// flight fence for each slot, plus the ring tying swapchain images back to
// the slots that last used them.
type FrameSync struct {
	Device         *Device
	ImageAvailable []*Semaphore
	RenderFinished []*Semaphore
	InFlight       []*Fence
	ring           *frameRing
}

// NewFrameSync creates synchronization for the given number of frame
// slots. Fences start signaled.
func NewFrameSync(device *Device, slots int) (*FrameSync, error) {
	fs := &FrameSync{Device: device, ring: newFrameRing(slots)}

	for i := 0; i < slots; i++ {
		imageAvailable, err := device.CreateSemaphore()
		if err != nil {
			fs.Destroy()
			return nil, fmt.Errorf("unable to create image available semaphore: %w", err)
		}
		fs.ImageAvailable = append(fs.ImageAvailable, imageAvailable)

		renderFinished, err := device.CreateSemaphore()
		if err != nil {
			fs.Destroy()
			return nil, fmt.Errorf("unable to create render finished semaphore: %w", err)
		}
		fs.RenderFinished = append(fs.RenderFinished, renderFinished)

		fence, err := device.CreateFence(true)
		if err != nil {
			fs.Destroy()
			return nil, fmt.Errorf("unable to create in flight fence: %w", err)
		}
		fs.InFlight = append(fs.InFlight, fence)
	}

	return fs, nil
}

// ResetImages forgets image ownership after a swapchain rebuild and sizes
// the tracking to the new image count.
func (fs *FrameSync) ResetImages(imageCount int) {
	fs.ring.Reset(imageCount)
}

// WaitCurrent blocks until the current slot's previous submission
// completes.
func (fs *FrameSync) WaitCurrent() error {
	return fs.InFlight[fs.ring.Current()].Wait()
}

// WaitImageOwner blocks until the slot that last rendered to the image
// completes, if any.
func (fs *FrameSync) WaitImageOwner(image int) error {
	owner := fs.ring.Owner(image)
	if owner < 0 {
		return nil
	}
	return fs.InFlight[owner].Wait()
}

// ClaimCurrent marks the image as owned by the current slot and resets the
// slot's fence for the submission about to happen. The reset comes after
// every wait so an error between wait and submit cannot strand an
// unsignaled fence.
func (fs *FrameSync) ClaimCurrent(image int) error {
	fs.ring.Claim(image)
	return fs.InFlight[fs.ring.Current()].Reset()
}

func (fs *FrameSync) CurrentImageAvailable() *Semaphore {
	return fs.ImageAvailable[fs.ring.Current()]
}

func (fs *FrameSync) CurrentRenderFinished() *Semaphore {
	return fs.RenderFinished[fs.ring.Current()]
}

func (fs *FrameSync) CurrentFence() *Fence {
	return fs.InFlight[fs.ring.Current()]
}

// Advance moves to the next frame slot.
func (fs *FrameSync) Advance() {
	fs.ring.Advance()
}

func (fs *FrameSync) Destroy() {
	for _, s := range fs.ImageAvailable {
		s.Destroy()
	}
	for _, s := range fs.RenderFinished {
		s.Destroy()
	}
	for _, f := range fs.InFlight {
		f.Destroy()
	}
	fs.ImageAvailable = nil
	fs.RenderFinished = nil
	fs.InFlight = nil
}
