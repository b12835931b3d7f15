// Package diag carries per-item warnings out of the scanner and the rename engine.
//
// A diagnostic never aborts the operation that raised it. Use Tee to send the
// same diagnostics to a Collector and a LogReporter.
package diag

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Kind classifies why an item was skipped.
type Kind string

const (
	// Vanished: a file disappeared between listing and measuring.
	Vanished Kind = "vanished"
	// Unreadable: a directory could not be listed.
	Unreadable Kind = "unreadable"
	// Collision: the composed rename target already exists.
	Collision Kind = "collision"
	// RenameFailed: the OS rejected the rename for another reason.
	RenameFailed Kind = "rename_failed"
)

// Diagnostic describes one skipped item. Target is set for rename diagnostics.
type Diagnostic struct {
	Kind   Kind
	Op     string
	Path   string
	Target string
	Err    error
}

func (d Diagnostic) String() string {
	msg := fmt.Sprintf("%s: %s %s", d.Kind, d.Op, d.Path)
	if d.Target != "" {
		msg += " -> " + d.Target
	}
	if d.Err != nil {
		msg += ": " + d.Err.Error()
	}
	return msg
}

// Reporter receives diagnostics as they happen.
type Reporter interface {
	Report(d Diagnostic)
}

// Discard drops every diagnostic.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Report(Diagnostic) {}

// OrDiscard returns r, or Discard when r is nil.
func OrDiscard(r Reporter) Reporter {
	if r == nil {
		return Discard
	}
	return r
}

// Collector accumulates diagnostics in arrival order.
type Collector struct {
	mu    sync.Mutex
	items []Diagnostic
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{items: make([]Diagnostic, 0)}
}

func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, d)
}

// Diagnostics returns a copy of everything reported so far.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.items))
	copy(out, c.items)
	return out
}

// OfKind returns the collected diagnostics of a single kind.
func (c *Collector) OfKind(kind Kind) []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Diagnostic
	for _, d := range c.items {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// Len is the number of diagnostics collected.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// LogReporter writes each diagnostic as a structured warning.
type LogReporter struct {
	logger zerolog.Logger
}

// NewLogReporter logs diagnostics at warn level through logger.
func NewLogReporter(logger zerolog.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

func (l *LogReporter) Report(d Diagnostic) {
	ev := l.logger.Warn().
		Str("kind", string(d.Kind)).
		Str("op", d.Op).
		Str("path", d.Path)
	if d.Target != "" {
		ev = ev.Str("target", d.Target)
	}
	if d.Err != nil {
		ev = ev.Err(d.Err)
	}
	ev.Msg("skipped")
}

type tee []Reporter

// Tee reports every diagnostic to each non-nil reporter in order.
func Tee(reporters ...Reporter) Reporter {
	out := make(tee, 0, len(reporters))
	for _, r := range reporters {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

func (t tee) Report(d Diagnostic) {
	for _, r := range t {
		r.Report(d)
	}
}

type dedupKey struct {
	kind Kind
	path string
}

type dedup struct {
	mu   sync.Mutex
	seen map[dedupKey]bool
	next Reporter
}

// Dedup forwards only the first diagnostic of each kind for a given path.
// Nested walks that revisit the same directory report it once.
func Dedup(r Reporter) Reporter {
	return &dedup{seen: make(map[dedupKey]bool), next: OrDiscard(r)}
}

func (d *dedup) Report(diagnostic Diagnostic) {
	key := dedupKey{kind: diagnostic.Kind, path: diagnostic.Path}
	d.mu.Lock()
	if d.seen[key] {
		d.mu.Unlock()
		return
	}
	d.seen[key] = true
	d.mu.Unlock()
	d.next.Report(diagnostic)
}
