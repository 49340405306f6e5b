package machine

import (
	"golang.org/x/exp/slices"

	"github.com/ohaddr/vesper/lang/value"
)

// globalEntry is one slot of the open-addressed global table. exists
// distinguishes a tombstone (deleted, key retained so probing still works)
// from a truly empty slot (key == nil).
type globalEntry struct {
	key    *value.String
	val    value.Value
	exists bool
}

// Globals is the VM's open-addressed hash table mapping global names to
// values. Keys are compared by content (hash, then bytes), not pointer
// identity: a REPL recompiles each line with its own fresh intern table, and
// host builtins are registered with yet another *value.String, so no single
// canonical object exists for a given name across the VM's lifetime. See
// DESIGN.md.
//
// This is hand-rolled rather than built on a generic map library because
// the global-table contract requires tombstone-based delete, a specific
// growth threshold (load factor < 0.75, capacity starting at 8 and
// doubling), and open addressing with linear probing — a shape no
// off-the-shelf Go map type exposes. See DESIGN.md.
type Globals struct {
	entries  []globalEntry
	capacity int
	count    int
}

// NewGlobals returns an empty global table; it allocates no backing array
// until the first Set.
func NewGlobals() *Globals {
	return &Globals{}
}

func findEntry(entries []globalEntry, capacity int, key *value.String) *globalEntry {
	index := key.Hash % uint32(capacity)
	var tombstone *globalEntry
	for {
		entry := &entries[index]
		if !entry.exists {
			if entry.key == nil {
				if tombstone != nil {
					return tombstone
				}
				return entry
			}
			if tombstone == nil {
				tombstone = entry
			}
		} else if entry.key.Hash == key.Hash && entry.key.Chars == key.Chars {
			return entry
		}
		index = (index + 1) % uint32(capacity)
	}
}

func (g *Globals) adjustCapacity(capacity int) {
	entries := make([]globalEntry, capacity)

	g.count = 0
	for i := range g.entries {
		entry := &g.entries[i]
		if !entry.exists {
			continue
		}
		dest := findEntry(entries, capacity, entry.key)
		dest.key = entry.key
		dest.val = entry.val
		dest.exists = true
		g.count++
	}

	g.entries = entries
	g.capacity = capacity
}

// Get returns the value bound to key, or false if key has no binding.
func (g *Globals) Get(key *value.String) (value.Value, bool) {
	if g.count == 0 {
		return value.Nil, false
	}
	entry := findEntry(g.entries, g.capacity, key)
	if !entry.exists {
		return value.Nil, false
	}
	return entry.val, true
}

// Set inserts or updates the binding for key.
func (g *Globals) Set(key *value.String, v value.Value) {
	if float64(g.count+1) > float64(g.capacity)*0.75 {
		capacity := g.capacity * 2
		if capacity < 8 {
			capacity = 8
		}
		g.adjustCapacity(capacity)
	}

	entry := findEntry(g.entries, g.capacity, key)
	isNew := !entry.exists
	if isNew && entry.key == nil {
		g.count++
	}
	entry.key = key
	entry.val = v
	entry.exists = true
}

// Delete removes key's binding, leaving a tombstone so later probes for
// other keys in the same chain still succeed. It reports whether key had a
// binding.
func (g *Globals) Delete(key *value.String) bool {
	if g.count == 0 {
		return false
	}
	entry := findEntry(g.entries, g.capacity, key)
	if !entry.exists {
		return false
	}
	entry.exists = false
	return true
}

// Free releases the table's backing storage.
func (g *Globals) Free() {
	g.entries = nil
	g.capacity = 0
	g.count = 0
}

// Binding is one name/value pair from a Snapshot, for debug output.
type Binding struct {
	Name  string
	Value value.Value
}

// Snapshot returns every live binding sorted by name. Table iteration order
// otherwise follows probe-chain layout, which is meaningless to a reader;
// sorting gives VESPER_TRACE output that is stable across runs.
func (g *Globals) Snapshot() []Binding {
	bindings := make([]Binding, 0, g.count)
	for _, entry := range g.entries {
		if !entry.exists {
			continue
		}
		bindings = append(bindings, Binding{Name: entry.key.Chars, Value: entry.val})
	}
	slices.SortFunc(bindings, func(a, b Binding) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		default:
			return 0
		}
	})
	return bindings
}
