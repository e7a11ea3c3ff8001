package diag

import "sync"

// Collector accumulates Diagnostics from multiple analysis phases (parser,
// HIR lowering, the external type checker) before they converge into one
// per-file list. It is safe for concurrent use, since parsing and semantic
// analysis for independent files can run in parallel ahead of the merge.
type Collector struct {
	mu          sync.Mutex
	diagnostics []Diagnostic
	errorCount  int
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add appends a diagnostic.
func (c *Collector) Add(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diagnostics = append(c.diagnostics, d)
	if d.severity == Error {
		c.errorCount++
	}
}

// Merge appends all diagnostics from other.
func (c *Collector) Merge(other *Collector) {
	if other == nil {
		return
	}
	other.mu.Lock()
	snapshot := make([]Diagnostic, len(other.diagnostics))
	copy(snapshot, other.diagnostics)
	otherErrors := other.errorCount
	other.mu.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.diagnostics = append(c.diagnostics, snapshot...)
	c.errorCount += otherErrors
}

// Diagnostics returns a defensive copy of the collected diagnostics.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.diagnostics))
	copy(out, c.diagnostics)
	return out
}

// Len returns the number of collected diagnostics.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.diagnostics)
}

// HasErrors reports whether any collected diagnostic has Error severity.
func (c *Collector) HasErrors() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errorCount > 0
}
