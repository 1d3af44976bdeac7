package main

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"slam/internal/util"
)

// Reporter renders status and progress to stderr as a single, continuously
// overwritten line. It implements the archive.Reporter interface.
type Reporter struct {
	mu       sync.Mutex
	quiet    bool
	status   string
	done     int64
	total    int64
	start    time.Time
	lastDraw time.Time
	width    int
}

// NewReporter returns a Reporter that writes to stderr unless quiet is set.
func NewReporter(quiet bool) *Reporter {
	return &Reporter{quiet: quiet, width: 30, start: time.Now()}
}

// SetStatus updates the current phase label (e.g. "compressing", "encrypting").
func (r *Reporter) SetStatus(status string) {
	if r == nil || r.quiet {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = status
	r.draw()
}

// SetProgress updates the done/total entry counters.
func (r *Reporter) SetProgress(done, total int64) {
	if r == nil || r.quiet {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.done, r.total = done, total

	// Throttle redraws so large archives don't flood stderr.
	now := time.Now()
	if now.Sub(r.lastDraw) < 50*time.Millisecond && done != total {
		return
	}
	r.lastDraw = now
	r.draw()
}

// Done clears the progress line, leaving the terminal tidy.
func (r *Reporter) Done() {
	if r == nil || r.quiet {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprint(os.Stderr, "\r"+strings.Repeat(" ", 80)+"\r")
}

func (r *Reporter) draw() {
	var bar string
	if r.total > 0 {
		filled := int(int64(r.width) * r.done / r.total)
		if filled > r.width {
			filled = r.width
		}
		bar = fmt.Sprintf("[%s%s] %d/%d  elapsed %s",
			strings.Repeat("=", filled),
			strings.Repeat(" ", r.width-filled),
			r.done, r.total,
			util.Timeify(int(time.Since(r.start).Seconds())))
	}
	fmt.Fprintf(os.Stderr, "\r%-14s %s", r.status, bar)
}
