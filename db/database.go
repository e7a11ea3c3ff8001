package db

import (
	"sync"

	"github.com/solidity-analyzer/solidity-analyzer/vfs"
)

// Database is the single writer over the project's inputs: tracked file
// text/versions (held by the embedded VFS) and registered project
// configs. All mutation happens through ApplyFileChanges/SetProject;
// every read happens through a Snapshot taken afterwards.
type Database struct {
	mu            sync.Mutex
	vfs           *vfs.VFS
	projects      map[ProjectId]ProjectInput
	revision      uint64
	nextProjectID uint32
}

// New creates an empty Database.
func New() *Database {
	return &Database{
		vfs:      vfs.New(),
		projects: make(map[ProjectId]ProjectInput),
	}
}

// ApplyFileChanges applies a batch of VFS changes and bumps the revision
// counter once for the whole batch, matching vfs.VFS.Apply's atomicity:
// a Snapshot taken right after this call observes every change in the
// batch, never a partial prefix.
func (d *Database) ApplyFileChanges(changes []vfs.Change) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.vfs.Apply(changes)
	d.revision++
}

// NewProjectID allocates a fresh ProjectId.
func (d *Database) NewProjectID() ProjectId {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextProjectID++
	return ProjectId(d.nextProjectID)
}

// SetProject registers or replaces a project's input. Per spec.md §4.2,
// this must invalidate only sema/HIR-level derived queries for this
// project — it never touches other files' parse results, which holds
// here because parse caching lives per-Snapshot, keyed by FileId alone.
func (d *Database) SetProject(id ProjectId, input ProjectInput) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.projects[id] = input
	d.revision++
}

// RemoveProject unregisters a project.
func (d *Database) RemoveProject(id ProjectId) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.projects, id)
	d.revision++
}

// Snapshot returns an immutable, revision-pinned view for readers. Taking
// a snapshot copies the VFS's path/file tables (cheap: no text is
// duplicated, see vfs.VFS.Snapshot) and the project input map; per
// spec.md §5's ordering guarantees, a snapshot taken after a write always
// observes that write, and never observes a write that commits later.
func (d *Database) Snapshot() *Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	projects := make(map[ProjectId]ProjectInput, len(d.projects))
	for id, p := range d.projects {
		projects[id] = p
	}

	return newSnapshot(d.vfs.Snapshot(), projects, d.revision)
}
