package symbols

import "sync"

// AliasTable maps import aliases to module paths. It is synchronized
// independently of lexical scopes: its lock never nests with table locks.
type AliasTable struct {
	mu      sync.RWMutex
	aliases map[string]string
}

func NewAliasTable() *AliasTable {
	return &AliasTable{aliases: make(map[string]string, 8)}
}

// Register binds alias to module, overwriting any previous binding.
func (a *AliasTable) Register(alias, module string) {
	if alias == "" || module == "" {
		return
	}
	a.mu.Lock()
	a.aliases[alias] = module
	a.mu.Unlock()
}

// Resolve returns the module bound to alias.
func (a *AliasTable) Resolve(alias string) (string, bool) {
	a.mu.RLock()
	module, ok := a.aliases[alias]
	a.mu.RUnlock()
	return module, ok
}

// Has reports whether alias is bound.
func (a *AliasTable) Has(alias string) bool {
	_, ok := a.Resolve(alias)
	return ok
}

// Clear removes every binding.
func (a *AliasTable) Clear() {
	a.mu.Lock()
	a.aliases = make(map[string]string, 8)
	a.mu.Unlock()
}

// Len returns the number of registered aliases.
func (a *AliasTable) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.aliases)
}
