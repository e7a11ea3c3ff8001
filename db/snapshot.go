package db

import (
	"strings"
	"sync"

	"github.com/solidity-analyzer/solidity-analyzer/diag"
	"github.com/solidity-analyzer/solidity-analyzer/hir"
	"github.com/solidity-analyzer/solidity-analyzer/importresolver"
	"github.com/solidity-analyzer/solidity-analyzer/parser"
	"github.com/solidity-analyzer/solidity-analyzer/paths"
	"github.com/solidity-analyzer/solidity-analyzer/refindex"
	"github.com/solidity-analyzer/solidity-analyzer/scope"
	"github.com/solidity-analyzer/solidity-analyzer/sema"
	"github.com/solidity-analyzer/solidity-analyzer/vfs"
)

// onceVal is a lazily computed, memoized value: the first reader to reach
// it runs compute and blocks every other concurrent reader of the same
// cell until the value is ready, matching spec.md §4.2's "first read
// blocks, concurrent readers coalesce" requirement for one query key.
type onceVal[V any] struct {
	once sync.Once
	val  V
}

// memoize looks up (or lazily fills) the cache entry for key. mu guards
// only the map's shape (inserting the *onceVal cell), never the value
// computation itself, so two different keys never block each other.
func memoize[K comparable, V any](mu *sync.Mutex, cache map[K]*onceVal[V], key K, compute func() V) V {
	mu.Lock()
	cell, ok := cache[key]
	if !ok {
		cell = &onceVal[V]{}
		cache[key] = cell
	}
	mu.Unlock()

	cell.once.Do(func() {
		cell.val = compute()
	})
	return cell.val
}

type parseResult struct {
	tree  *parser.Tree
	diags []diag.Diagnostic
}

// Snapshot is an immutable, revision-pinned view over a Database's
// inputs, with memoized derived queries. A Snapshot is safe for
// concurrent use by any number of readers; it never observes writes made
// to its parent Database after it was taken.
type Snapshot struct {
	vfsSnap  *vfs.Snapshot
	projects map[ProjectId]ProjectInput
	revision uint64

	mu           sync.Mutex
	parseCache   map[vfs.FileId]*onceVal[parseResult]
	scopeCache   map[vfs.FileId]*onceVal[*scope.Scopes]
	programCache map[ProjectId]*onceVal[*hir.Program]
	semaCache    map[ProjectId]*onceVal[*sema.Snapshot]
}

func newSnapshot(vfsSnap *vfs.Snapshot, projects map[ProjectId]ProjectInput, revision uint64) *Snapshot {
	return &Snapshot{
		vfsSnap:      vfsSnap,
		projects:     projects,
		revision:     revision,
		parseCache:   make(map[vfs.FileId]*onceVal[parseResult]),
		scopeCache:   make(map[vfs.FileId]*onceVal[*scope.Scopes]),
		programCache: make(map[ProjectId]*onceVal[*hir.Program]),
		semaCache:    make(map[ProjectId]*onceVal[*sema.Snapshot]),
	}
}

// Revision returns the write revision this snapshot was taken at.
func (s *Snapshot) Revision() uint64 { return s.revision }

// VFS returns the underlying file-system snapshot.
func (s *Snapshot) VFS() *vfs.Snapshot { return s.vfsSnap }

// Project returns the registered input for id.
func (s *Snapshot) Project(id ProjectId) (ProjectInput, bool) {
	p, ok := s.projects[id]
	return p, ok
}

// Parse returns the memoized parse tree and diagnostics for file.
func (s *Snapshot) Parse(file vfs.FileId) (*parser.Tree, []diag.Diagnostic) {
	r := memoize(&s.mu, s.parseCache, file, func() parseResult {
		text, ok := s.vfsSnap.Text(file)
		if !ok {
			return parseResult{}
		}
		tree, diags := parser.Parse(text)
		return parseResult{tree: tree, diags: diags}
	})
	return r.tree, r.diags
}

// LocalScopes returns the memoized local-variable scope tree for file.
func (s *Snapshot) LocalScopes(file vfs.FileId) *scope.Scopes {
	return memoize(&s.mu, s.scopeCache, file, func() *scope.Scopes {
		tree, _ := s.Parse(file)
		if tree == nil {
			return nil
		}
		return scope.Build(tree)
	})
}

// HIRProgram returns the memoized cross-file HIR for project, built from
// every Solidity file this snapshot knows about under the project's
// workspace root (or every tracked Solidity file, if Root is unset).
func (s *Snapshot) HIRProgram(project ProjectId) (*hir.Program, bool) {
	input, ok := s.Project(project)
	if !ok {
		return nil, false
	}
	prog := memoize(&s.mu, s.programCache, project, func() *hir.Program {
		return s.buildProgram(input)
	})
	return prog, true
}

func (s *Snapshot) buildProgram(input ProjectInput) *hir.Program {
	files := make(map[vfs.FileId]*parser.Tree)
	for _, id := range s.vfsSnap.Files() {
		kind, ok := s.vfsSnap.Kind(id)
		if !ok || kind != vfs.LanguageSolidity {
			continue
		}
		if !input.Workspace.Root.IsZero() {
			p, ok := s.vfsSnap.Path(id)
			if !ok || !p.HasPrefix(input.Workspace.Root) {
				continue
			}
		}
		tree, _ := s.Parse(id)
		if tree != nil {
			files[id] = tree
		}
	}

	resolver := importresolver.New(
		importresolver.ProjectPaths{
			Root:         input.Workspace.Root,
			IncludePaths: input.Workspace.includePaths(),
		},
		input.Config.ActiveProfile.Remappings,
	)

	resolve := func(importer vfs.FileId, importString string) (vfs.FileId, bool) {
		currentFile, ok := s.vfsSnap.Path(importer)
		if !ok {
			return 0, false
		}
		exists := func(p paths.NormalizedPath) bool {
			_, ok := s.vfsSnap.FileID(p)
			return ok
		}
		resolved, ok := resolver.Resolve(currentFile, importString, exists)
		if !ok {
			return 0, false
		}
		return s.vfsSnap.FileID(resolved)
	}

	return hir.BuildProgram(files, resolve)
}

// SemaSnapshot returns the memoized semantic analysis for project.
func (s *Snapshot) SemaSnapshot(project ProjectId) (*sema.Snapshot, bool) {
	prog, ok := s.HIRProgram(project)
	if !ok {
		return nil, false
	}
	snap := memoize(&s.mu, s.semaCache, project, func() *sema.Snapshot {
		trees := make(map[vfs.FileId]*parser.Tree)
		texts := make(map[vfs.FileId]string)
		for _, id := range s.vfsSnap.Files() {
			tree, _ := s.Parse(id)
			if tree == nil {
				continue
			}
			trees[id] = tree
			text, _ := s.vfsSnap.Text(id)
			texts[id] = text
		}
		return sema.Analyze(prog, trees, texts)
	})
	return snap, true
}

// SymbolSearch returns every definition across project whose name
// contains query as a case-insensitive substring (spec.md §4.6,
// workspace/symbol).
func (s *Snapshot) SymbolSearch(project ProjectId, query string) []hir.DefEntry {
	prog, ok := s.HIRProgram(project)
	if !ok {
		return nil
	}
	needle := strings.ToLower(query)
	var out []hir.DefEntry
	for _, entry := range prog.Defs.All() {
		if needle == "" || strings.Contains(strings.ToLower(entry.Name), needle) {
			out = append(out, entry)
		}
	}
	return out
}

// FindReferences returns every reference to defID across project.
func (s *Snapshot) FindReferences(project ProjectId, defID hir.DefId) ([]refindex.Reference, bool) {
	prog, ok := s.HIRProgram(project)
	if !ok {
		return nil, false
	}
	def, ok := prog.Defs.Get(defID)
	if !ok {
		return nil, false
	}

	trees := make(map[vfs.FileId]*parser.Tree)
	texts := make(map[vfs.FileId]string)
	for _, id := range s.vfsSnap.Files() {
		tree, _ := s.Parse(id)
		if tree == nil {
			continue
		}
		trees[id] = tree
		text, _ := s.vfsSnap.Text(id)
		texts[id] = text
	}

	return refindex.FindReferences(prog, trees, texts, def), true
}
