package engine

// SelectorAll fans out to every enabled source.
const SelectorAll = "all"

// Entry pairs an adapter with its enablement flag. Disabled sources stay
// registered (their ids remain known) but never resolve.
type Entry struct {
	Adapter Adapter
	Enabled bool
}

// Registry is the static table of known provider adapters. Order is
// significant: it decides outcome concatenation order and therefore which
// source wins when dedup finds the same property twice.
type Registry struct {
	entries []Entry
	byID    map[string]int
}

func NewRegistry(entries ...Entry) *Registry {
	r := &Registry{entries: entries, byID: make(map[string]int, len(entries))}
	for i, e := range entries {
		r.byID[e.Adapter.SourceID()] = i
	}
	return r
}

// Resolve maps a source selector to the adapters to invoke. "all" resolves to
// every enabled adapter in registry order; a known id resolves to that single
// adapter. An unknown or disabled selector resolves to no adapters rather
// than an error; callers validate selectors against Known() when they want a
// hard failure.
func (r *Registry) Resolve(selector string) []Adapter {
	if selector == "" || selector == SelectorAll {
		out := make([]Adapter, 0, len(r.entries))
		for _, e := range r.entries {
			if e.Enabled {
				out = append(out, e.Adapter)
			}
		}
		return out
	}
	if i, ok := r.byID[selector]; ok && r.entries[i].Enabled {
		return []Adapter{r.entries[i].Adapter}
	}
	return nil
}

// Known returns the registered source identifiers in registry order,
// including disabled ones.
func (r *Registry) Known() []string {
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Adapter.SourceID())
	}
	return out
}
