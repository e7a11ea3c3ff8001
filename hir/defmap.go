package hir

import (
	"sort"
	"sync"

	"github.com/solidity-analyzer/solidity-analyzer/vfs"
)

// DefMap is a project-wide, multi-indexed table of DefEntry values. It
// supports lookup by (file, name) and by (kind, name), plus full
// iteration in declaration order.
//
// DefMap is built once per Program (see BuildProgram) by a single
// goroutine and then shared read-only across query threads; the mutex
// exists to make that sharing safe even though no caller mutates a
// DefMap after BuildProgram returns it.
type DefMap struct {
	mu         sync.RWMutex
	byID       map[DefId]DefEntry
	byFileName map[vfs.FileId]map[string][]DefId
	byKindName map[DefKind]map[string][]DefId
	order      []DefId
}

func newDefMap() *DefMap {
	return &DefMap{
		byID:       make(map[DefId]DefEntry),
		byFileName: make(map[vfs.FileId]map[string][]DefId),
		byKindName: make(map[DefKind]map[string][]DefId),
	}
}

func (m *DefMap) insert(e DefEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.byID[e.ID] = e
	m.order = append(m.order, e.ID)

	byName, ok := m.byFileName[e.File]
	if !ok {
		byName = make(map[string][]DefId)
		m.byFileName[e.File] = byName
	}
	byName[e.Name] = append(byName[e.Name], e.ID)

	byKind, ok := m.byKindName[e.Kind]
	if !ok {
		byKind = make(map[string][]DefId)
		m.byKindName[e.Kind] = byKind
	}
	byKind[e.Name] = append(byKind[e.Name], e.ID)
}

// Get returns the DefEntry for id.
func (m *DefMap) Get(id DefId) (DefEntry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.byID[id]
	return e, ok
}

// InFile returns every DefEntry declared directly in file with the given
// name, in declaration order.
func (m *DefMap) InFile(file vfs.FileId, name string) []DefEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := m.byFileName[file][name]
	return m.resolveIDs(ids)
}

// AllInFile returns every DefEntry declared directly in file, in
// declaration order.
func (m *DefMap) AllInFile(file vfs.FileId) []DefEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]DefEntry, 0, len(m.byFileName[file]))
	for _, ids := range m.byFileName[file] {
		for _, id := range ids {
			out = append(out, m.byID[id])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ByKindAndName returns every DefEntry of the given kind with the given
// name across the whole project, in declaration order.
func (m *DefMap) ByKindAndName(kind DefKind, name string) []DefEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := m.byKindName[kind][name]
	return m.resolveIDs(ids)
}

// All returns every DefEntry in declaration order.
func (m *DefMap) All() []DefEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]DefEntry, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id])
	}
	return out
}

// resolveIDs must be called with mu already held.
func (m *DefMap) resolveIDs(ids []DefId) []DefEntry {
	if len(ids) == 0 {
		return nil
	}
	out := make([]DefEntry, len(ids))
	for i, id := range ids {
		out[i] = m.byID[id]
	}
	return out
}
