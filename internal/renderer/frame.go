package renderer

import "github.com/reditor/reditor/internal/renderer/backend"

// frameBufferSize bounds how much styled text a frame holds before it
// spills to the backend early. 64 KiB comfortably covers a full screen.
const frameBufferSize = 64 * 1024

// FrameBuffer batches the runs of one frame into a single bounded
// buffer. Runs spill to the backend when the buffer fills; End drains
// the rest and flushes the terminal exactly once.
type FrameBuffer struct {
	be      backend.Backend
	pending []Run
	bytes   int
	writes  int
}

// NewFrameBuffer creates a frame buffer over the backend.
func NewFrameBuffer(be backend.Backend) *FrameBuffer {
	return &FrameBuffer{be: be}
}

// Begin starts a frame by clearing the surface to the given style.
func (f *FrameBuffer) Begin(clear Style) {
	f.pending = f.pending[:0]
	f.bytes = 0
	f.writes = 0
	f.be.Clear(clear)
}

// Push queues one run for this frame.
func (f *FrameBuffer) Push(run Run) {
	if len(run.Text) == 0 {
		return
	}
	f.pending = append(f.pending, run)
	f.bytes += 4 * len(run.Text)
	if f.bytes >= frameBufferSize {
		f.drain()
	}
}

// End drains the remaining runs and flushes the frame to the terminal.
func (f *FrameBuffer) End() {
	f.drain()
	f.be.Show()
}

// Writes returns how many backend writes this frame produced so far.
func (f *FrameBuffer) Writes() int {
	return f.writes + len(f.pending)
}

func (f *FrameBuffer) drain() {
	for _, r := range f.pending {
		f.be.WriteRun(r)
	}
	f.writes += len(f.pending)
	f.pending = f.pending[:0]
	f.bytes = 0
}
