package sema

import "sync/atomic"

// Stats holds analyzer telemetry. All counters are atomic: a driver may read
// them while several analyzer instances run in parallel, and the scope-depth
// counters are shared bookkeeping across phases.
type Stats struct {
	NodesAnalyzed     atomic.Uint64
	TypesChecked      atomic.Uint64
	SymbolsResolved   atomic.Uint64
	ErrorsFound       atomic.Uint64
	WarningsIssued    atomic.Uint64
	MaxScopeDepth     atomic.Uint32
	CurrentScopeDepth atomic.Uint32
}

// Snapshot is a plain copy of the counters for reporting.
type Snapshot struct {
	NodesAnalyzed   uint64 `json:"nodes_analyzed"`
	TypesChecked    uint64 `json:"types_checked"`
	SymbolsResolved uint64 `json:"symbols_resolved"`
	ErrorsFound     uint64 `json:"errors_found"`
	WarningsIssued  uint64 `json:"warnings_issued"`
	MaxScopeDepth   uint32 `json:"max_scope_depth"`
}

// Snapshot returns a consistent-enough copy for telemetry output.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		NodesAnalyzed:   s.NodesAnalyzed.Load(),
		TypesChecked:    s.TypesChecked.Load(),
		SymbolsResolved: s.SymbolsResolved.Load(),
		ErrorsFound:     s.ErrorsFound.Load(),
		WarningsIssued:  s.WarningsIssued.Load(),
		MaxScopeDepth:   s.MaxScopeDepth.Load(),
	}
}

// Reset zeroes every counter.
func (s *Stats) Reset() {
	s.NodesAnalyzed.Store(0)
	s.TypesChecked.Store(0)
	s.SymbolsResolved.Store(0)
	s.ErrorsFound.Store(0)
	s.WarningsIssued.Store(0)
	s.MaxScopeDepth.Store(0)
	s.CurrentScopeDepth.Store(0)
}

// enterScope bumps the depth and keeps the high-water mark.
func (s *Stats) enterScope() {
	depth := s.CurrentScopeDepth.Add(1)
	for {
		max := s.MaxScopeDepth.Load()
		if depth <= max || s.MaxScopeDepth.CompareAndSwap(max, depth) {
			return
		}
	}
}

// leaveScope undoes enterScope.
func (s *Stats) leaveScope() {
	s.CurrentScopeDepth.Add(^uint32(0))
}
