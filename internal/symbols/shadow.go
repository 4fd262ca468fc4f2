package symbols

// Shadowing is legal and intentional; the analyzer never flags it by
// default. CheckShadowing exists for lint tooling that wants to warn.

// ShadowInfo describes one name hiding an outer binding.
type ShadowInfo struct {
	Inner *Entry
	Outer *Entry
}

// CheckShadowing reports whether name bound in table hides a binding that
// would otherwise be visible through the parent chain.
func CheckShadowing(table *Table, name string) (ShadowInfo, bool) {
	if table == nil || table.Parent == nil {
		return ShadowInfo{}, false
	}
	inner := table.Lookup(name)
	if inner == nil {
		return ShadowInfo{}, false
	}
	outer := table.Parent.Resolve(name)
	if outer == nil {
		return ShadowInfo{}, false
	}
	return ShadowInfo{Inner: inner, Outer: outer}, true
}

// CollectShadowed returns every name in table that shadows an outer binding.
func CollectShadowed(table *Table) []ShadowInfo {
	if table == nil || table.Parent == nil {
		return nil
	}
	var found []ShadowInfo
	table.ForEach(func(e *Entry) {
		if info, ok := CheckShadowing(table, e.Name); ok {
			found = append(found, info)
		}
	})
	return found
}
