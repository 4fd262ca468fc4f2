package symbols

import (
	"sync"
	"sync/atomic"
)

// Table is one lexical scope's name table. Tables form a tree through the
// Parent link; lookup through parents implements innermost-wins shadowing.
//
// Concurrency contract: lookups may run from several goroutines (a driver
// analyzing independent units against a shared global scope); mutation of
// any one table is serialized by the single analyzer goroutine that owns
// the scope subtree. The RWMutex keeps concurrent readers safe against that
// one writer, and the entry counter is atomic so statistics reads never
// tear.
type Table struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	Parent  *Table
	ID      uint32
	count   atomic.Int64
}

// NewTable creates a scope table with a capacity hint.
func NewTable(capacity int, parent *Table) *Table {
	if capacity <= 0 {
		capacity = 16
	}
	var id uint32
	if parent != nil {
		id = parent.ID + 1
	}
	return &Table{
		entries: make(map[string]*Entry, capacity),
		Parent:  parent,
		ID:      id,
	}
}

// Insert binds a name in this exact table. It fails when the name already
// exists here; shadowing an outer scope's name is legal and handled by
// scope nesting, not by this call.
func (t *Table) Insert(name string, entry *Entry) bool {
	if entry == nil || name == "" {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.entries[name]; exists {
		return false
	}
	entry.Name = name
	entry.ScopeID = t.ID
	t.entries[name] = entry
	t.count.Add(1)
	return true
}

// Lookup searches this table only; no parent walk.
func (t *Table) Lookup(name string) *Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.entries[name]
}

// Resolve walks outward through parents until the name is found or the
// scope chain is exhausted. The innermost match wins.
func (t *Table) Resolve(name string) *Entry {
	for scope := t; scope != nil; scope = scope.Parent {
		if e := scope.Lookup(name); e != nil {
			return e
		}
	}
	return nil
}

// Contains reports whether the name is bound in this exact table.
func (t *Table) Contains(name string) bool {
	return t.Lookup(name) != nil
}

// Remove unbinds a name from this exact table.
func (t *Table) Remove(name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.entries[name]; !exists {
		return false
	}
	delete(t.entries, name)
	t.count.Add(-1)
	return true
}

// Len returns the number of entries bound in this table.
func (t *Table) Len() int {
	return int(t.count.Load())
}

// Capacity returns the current entry count; kept for parity with the
// C-style contract where the bucket count was observable.
func (t *Table) Capacity() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// ForEach visits every entry in this table. Iteration order is unspecified;
// callers needing determinism sort the results.
func (t *Table) ForEach(fn func(*Entry)) {
	t.mu.RLock()
	snapshot := make([]*Entry, 0, len(t.entries))
	for _, e := range t.entries {
		snapshot = append(snapshot, e)
	}
	t.mu.RUnlock()
	for _, e := range snapshot {
		fn(e)
	}
}
