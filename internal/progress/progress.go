package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Bar renders a single-line progress bar. It satisfies rename.Progress.
type Bar struct {
	total      int64
	current    int64
	width      int
	label      string
	writer     io.Writer
	mu         sync.Mutex
	lastUpdate time.Time
}

func New(w io.Writer, label string) *Bar {
	return &Bar{
		width:  40,
		label:  label,
		writer: w,
	}
}

// Start resets the bar for total units of work.
func (b *Bar) Start(total int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.total = total
	b.current = 0
	b.lastUpdate = time.Now()
	b.render()
}

func (b *Bar) Increment() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.current++

	// Update at most every 100ms to reduce flickering
	now := time.Now()
	if now.Sub(b.lastUpdate) > 100*time.Millisecond || b.current == b.total {
		b.lastUpdate = now
		b.render()
	}
}

// render must be called with mu already locked
func (b *Bar) render() {
	if b.total == 0 || b.writer == nil {
		return
	}

	current := b.current
	if current > b.total {
		current = b.total
	}
	percent := float64(current) / float64(b.total) * 100
	filledWidth := int(float64(b.width) * float64(current) / float64(b.total))

	bar := strings.Repeat("█", filledWidth) + strings.Repeat("░", b.width-filledWidth)

	// Clear the line and write progress
	fmt.Fprintf(b.writer, "\r\033[K%s [%s] %3d%% (%d/%d)",
		b.label, bar, int(percent), current, b.total)
}

func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.total == 0 || b.writer == nil {
		return
	}
	b.current = b.total
	b.render()
	fmt.Fprintf(b.writer, "\n")
}
