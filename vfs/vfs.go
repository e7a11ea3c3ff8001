package vfs

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/solidity-analyzer/solidity-analyzer/paths"
)

// FileId is an opaque handle allocated by the VFS. It is stable for a
// file's lifetime; after a Remove, re-adding the same path allocates a
// fresh FileId and resets its version to 0.
type FileId uint32

// IsZero reports whether id is the zero value. FileId 0 is never allocated
// by [VFS], so it safely doubles as "no file".
func (id FileId) IsZero() bool { return id == 0 }

// LanguageKind classifies a file's contents for the purpose of deciding
// whether it participates in HIR/semantic analysis.
type LanguageKind uint8

const (
	LanguageUnknown LanguageKind = iota
	LanguageSolidity
	LanguageToml
	LanguageJSON
)

// LanguageKindOf classifies a path by extension.
func LanguageKindOf(p paths.NormalizedPath) LanguageKind {
	base := p.Base()
	switch {
	case hasSuffixFold(base, ".sol"):
		return LanguageSolidity
	case hasSuffixFold(base, ".toml"):
		return LanguageToml
	case hasSuffixFold(base, ".json") || hasSuffixFold(base, ".jsonc"):
		return LanguageJSON
	default:
		return LanguageUnknown
	}
}

func hasSuffixFold(s, suffix string) bool {
	if len(s) < len(suffix) {
		return false
	}
	tail := s[len(s)-len(suffix):]
	for i := range tail {
		a, b := tail[i], suffix[i]
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		if a != b {
			return false
		}
	}
	return true
}

// entry is a single tracked file's mutable state.
type entry struct {
	path    paths.NormalizedPath
	text    string
	version uint32
	kind    LanguageKind
}

// Change is one mutation to apply to the VFS. Exactly one of Text (for a
// Set) applies; Remove changes carry no text.
type Change struct {
	Path   paths.NormalizedPath
	Text   string
	Remove bool
}

// VFS is the virtual file system: it owns all tracked file text and
// allocates FileIds. It is safe for concurrent use; writers are expected
// to be serialized by the caller (the query database is the sole writer
// in this codebase — see db.Database).
type VFS struct {
	mu     sync.RWMutex
	byPath map[string]FileId
	byID   map[FileId]*entry
	nextID atomic.Uint32
}

// New creates an empty VFS.
func New() *VFS {
	v := &VFS{
		byPath: make(map[string]FileId),
		byID:   make(map[FileId]*entry),
	}
	v.nextID.Store(1) // FileId 0 is reserved as "no file"
	return v
}

// Apply applies a batch of changes in order. The batch is atomic with
// respect to [VFS.Snapshot]: a concurrent Snapshot call either observes
// all of the batch's effects or none of them.
func (v *VFS) Apply(changes []Change) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, c := range changes {
		if c.Remove {
			v.applyRemove(c.Path)
		} else {
			v.applySet(c.Path, c.Text)
		}
	}
}

func (v *VFS) applySet(p paths.NormalizedPath, text string) {
	key := p.String()
	if id, ok := v.byPath[key]; ok {
		e := v.byID[id]
		e.text = text
		if e.version != ^uint32(0) {
			e.version++
		}
		return
	}
	id := FileId(v.nextID.Add(1) - 1)
	v.byPath[key] = id
	v.byID[id] = &entry{path: p, text: text, version: 0, kind: LanguageKindOf(p)}
}

func (v *VFS) applyRemove(p paths.NormalizedPath) {
	key := p.String()
	id, ok := v.byPath[key]
	if !ok {
		return
	}
	delete(v.byPath, key)
	delete(v.byID, id)
}

// Snapshot is an immutable view over the VFS at the moment it was taken.
// It is safe to share and read from multiple goroutines.
type Snapshot struct {
	byPath map[string]FileId
	files  map[FileId]fileView
}

// fileView is the immutable, copied state of one file at snapshot time.
type fileView struct {
	path    paths.NormalizedPath
	text    string
	version uint32
	kind    LanguageKind
}

// Snapshot returns an immutable copy of the current VFS state. Taking a
// snapshot is O(n) in the number of tracked files (shallow copy of
// immutable string headers — no text is duplicated).
func (v *VFS) Snapshot() *Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()

	s := &Snapshot{
		byPath: make(map[string]FileId, len(v.byPath)),
		files:  make(map[FileId]fileView, len(v.byID)),
	}
	for k, id := range v.byPath {
		s.byPath[k] = id
	}
	for id, e := range v.byID {
		s.files[id] = fileView{path: e.path, text: e.text, version: e.version, kind: e.kind}
	}
	return s
}

// FileID looks up the FileId tracked for p, if any.
func (s *Snapshot) FileID(p paths.NormalizedPath) (FileId, bool) {
	id, ok := s.byPath[p.String()]
	return id, ok
}

// Path returns the path a FileId was allocated for.
func (s *Snapshot) Path(id FileId) (paths.NormalizedPath, bool) {
	f, ok := s.files[id]
	if !ok {
		return paths.NormalizedPath{}, false
	}
	return f.path, true
}

// Text returns a file's content at snapshot time.
func (s *Snapshot) Text(id FileId) (string, bool) {
	f, ok := s.files[id]
	if !ok {
		return "", false
	}
	return f.text, true
}

// Version returns a file's version at snapshot time.
func (s *Snapshot) Version(id FileId) (uint32, bool) {
	f, ok := s.files[id]
	if !ok {
		return 0, false
	}
	return f.version, true
}

// Kind returns a file's language kind at snapshot time.
func (s *Snapshot) Kind(id FileId) (LanguageKind, bool) {
	f, ok := s.files[id]
	if !ok {
		return LanguageUnknown, false
	}
	return f.kind, true
}

// Files returns all FileIds present in the snapshot, sorted for determinism.
func (s *Snapshot) Files() []FileId {
	ids := make([]FileId, 0, len(s.files))
	for id := range s.files {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
