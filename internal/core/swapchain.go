package core

import "fmt"

// DefaultSlots is the number of textures in a ping-pong swapchain.
const DefaultSlots = 2

// Swapchain owns a ring of grid textures. One slot is current (read by the
// step and view passes, written by edits); the following slot is the write
// target of the next step.
type Swapchain struct {
	slots []Target
	cur   int
	size  Size
}

// NewSwapchain allocates count cleared slots of the given size. Counts below
// two are raised to two.
func NewSwapchain(count int, size Size, alloc Allocator) (*Swapchain, error) {
	if count < DefaultSlots {
		count = DefaultSlots
	}
	sc := &Swapchain{slots: make([]Target, 0, count), size: size}
	for i := 0; i < count; i++ {
		t, err := alloc(size)
		if err != nil {
			return nil, fmt.Errorf("allocate swapchain slot %d: %w", i, err)
		}
		t.Clear()
		sc.slots = append(sc.slots, t)
	}
	return sc, nil
}

// Current returns the slot most recently written.
func (s *Swapchain) Current() Target { return s.slots[s.cur] }

// Peek returns the slot the next step should write, without advancing.
func (s *Swapchain) Peek() Target { return s.slots[(s.cur+1)%len(s.slots)] }

// Advance moves the cursor to the next slot and returns it.
func (s *Swapchain) Advance() Target {
	s.cur = (s.cur + 1) % len(s.slots)
	return s.slots[s.cur]
}

// Index returns the position of the current slot.
func (s *Swapchain) Index() int { return s.cur }

// Len returns the number of slots.
func (s *Swapchain) Len() int { return len(s.slots) }

// Size returns the grid dimensions shared by every slot.
func (s *Swapchain) Size() Size { return s.size }

// Slot returns the i-th slot.
func (s *Swapchain) Slot(i int) Target { return s.slots[i] }
