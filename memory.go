package dossier

import (
	"fmt"
	"io"
	"sync"

	"github.com/dustin/go-humanize"
)

// DefaultMemoryBudget is the pixel-buffer budget when Config leaves it unset.
const DefaultMemoryBudget = 400 * 1024

// Allocator accounts for every pixel buffer the engine holds. Exceeding the
// budget is fatal and dumps the accounting first.
type Allocator struct {
	mu        sync.Mutex
	budget    uint64
	allocated uint64
	freed     uint64
	peak      uint64
	dump      io.Writer
}

// NewAllocator creates an allocator with the given budget in bytes.
// A zero budget means DefaultMemoryBudget. The accounting dump printed on
// exhaustion goes to dump when non-nil.
func NewAllocator(budget uint64, dump io.Writer) *Allocator {
	if budget == 0 {
		budget = DefaultMemoryBudget
	}
	return &Allocator{budget: budget, dump: dump}
}

// Alloc returns a zeroed buffer of size bytes.
func (a *Allocator) Alloc(size int) []byte {
	a.mu.Lock()
	cur := a.allocated - a.freed
	if cur+uint64(size) > a.budget {
		a.mu.Unlock()
		if a.dump != nil {
			_, _ = fmt.Fprintf(a.dump, "Out of memory! Tried to allocate %d bytes.\n", size)
			a.Dump(a.dump)
		}
		fatal("Not enough memory!")
	}
	a.allocated += uint64(size)
	cur += uint64(size)
	if cur > a.peak {
		a.peak = cur
	}
	a.mu.Unlock()
	return make([]byte, size)
}

// Free returns a buffer obtained from Alloc to the budget.
func (a *Allocator) Free(b []byte) {
	if b == nil {
		return
	}
	a.mu.Lock()
	a.freed += uint64(len(b))
	a.mu.Unlock()
}

// Current returns the number of bytes currently held.
func (a *Allocator) Current() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allocated - a.freed
}

// Peak returns the high-water mark of held bytes.
func (a *Allocator) Peak() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.peak
}

// Dump writes the allocation accounting.
func (a *Allocator) Dump(w io.Writer) {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, _ = fmt.Fprintf(w, "Budget:    %10s\n", humanize.Bytes(a.budget))
	_, _ = fmt.Fprintf(w, "Allocated: %10s\n", humanize.Bytes(a.allocated))
	_, _ = fmt.Fprintf(w, "Freed:     %10s\n", humanize.Bytes(a.freed))
	_, _ = fmt.Fprintf(w, "Current:   %10s\n", humanize.Bytes(a.allocated-a.freed))
	_, _ = fmt.Fprintf(w, "Peak:      %10s\n", humanize.Bytes(a.peak))
}
