package diag

import (
	"fmt"
	"sort"
)

// DefaultMax bounds the retained diagnostic list unless configured otherwise.
const DefaultMax = 100

// Bag accumulates diagnostics with a retention cap. Past the cap new records
// are dropped but the severity counters keep incrementing, so ErrorCount
// stays accurate even when the list itself is truncated.
type Bag struct {
	items    []Diagnostic
	max      int
	dropped  int
	errors   int
	warnings int
}

func NewBag(max int) *Bag {
	if max <= 0 {
		max = DefaultMax
	}
	return &Bag{
		items: make([]Diagnostic, 0, max),
		max:   max,
	}
}

// Add records a diagnostic, honoring the retention cap.
// Returns false when the record was dropped (cap reached); the severity
// counters are updated either way.
func (b *Bag) Add(d Diagnostic) bool {
	switch d.Severity {
	case SevError:
		b.errors++
	case SevWarning:
		b.warnings++
	}
	if len(b.items) >= b.max {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Cap returns the retention limit.
func (b *Bag) Cap() int { return b.max }

// Len returns the number of retained diagnostics.
func (b *Bag) Len() int { return len(b.items) }

// Dropped reports how many diagnostics were discarded past the cap.
func (b *Bag) Dropped() int { return b.dropped }

// ErrorCount counts every error ever added, retained or not.
func (b *Bag) ErrorCount() int { return b.errors }

// WarningCount counts every warning ever added, retained or not.
func (b *Bag) WarningCount() int { return b.warnings }

// HasErrors reports whether any error-severity diagnostic was added.
func (b *Bag) HasErrors() bool { return b.errors > 0 }

// Items returns the retained diagnostics.
// Callers must not modify the returned slice.
func (b *Bag) Items() []Diagnostic { return b.items }

// Merge appends the other bag's retained items and counters, growing the cap
// when needed to keep every already-retained record.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if total := len(b.items) + len(other.items); total > b.max {
		b.max = total
	}
	b.items = append(b.items, other.items...)
	b.errors += other.errors
	b.warnings += other.warnings
	b.dropped += other.dropped
}

// Sort orders diagnostics by file, start, end, severity (desc), code for a
// stable, deterministic output order.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// Dedup removes exact duplicates keyed by code and primary span.
func (b *Bag) Dedup() {
	seen := make(map[string]bool, len(b.items))
	kept := b.items[:0]
	for _, d := range b.items {
		key := fmt.Sprintf("%d:%s", d.Code, d.Primary.String())
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, d)
	}
	b.items = kept
}
