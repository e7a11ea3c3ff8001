package importresolver

import (
	"sort"
	"strings"

	"github.com/solidity-analyzer/solidity-analyzer/paths"
)

// Resolver resolves Solidity import strings to concrete project paths. It
// is a pure function of its construction-time project paths and
// remapping list — resolution never depends on which files happen to be
// open (the VFS plays no part beyond the Exists collaborator passed to
// Resolve).
type Resolver struct {
	project    ProjectPaths
	remappings []Remapping
}

// New creates a Resolver over a fixed project layout and remapping list.
// The remapping list's order is significant: it is the declaration order
// used to break prefix-length ties.
func New(project ProjectPaths, remappings []Remapping) *Resolver {
	return &Resolver{project: project, remappings: remappings}
}

// Resolve resolves importString as written in currentFile. exists reports
// whether a candidate path is known (to the VFS or a filesystem
// collaborator); Resolve returns the first candidate exists accepts.
func (r *Resolver) Resolve(currentFile paths.NormalizedPath, importString string, exists func(paths.NormalizedPath) bool) (paths.NormalizedPath, bool) {
	folded := strings.ReplaceAll(importString, "\\", "/")

	if isAbsoluteImport(folded) {
		p := paths.New(folded)
		if exists(p) {
			return p, true
		}
		return paths.NormalizedPath{}, false
	}

	if strings.HasPrefix(folded, "./") || strings.HasPrefix(folded, "../") {
		p := currentFile.Dir().Join(folded)
		if exists(p) {
			return p, true
		}
		return paths.NormalizedPath{}, false
	}

	if remapped, ok := r.applyBestRemapping(currentFile, folded); ok {
		folded = remapped
	}

	for _, candidate := range r.searchCandidates(folded) {
		if exists(candidate) {
			return candidate, true
		}
	}
	return paths.NormalizedPath{}, false
}

func (r *Resolver) searchCandidates(importPath string) []paths.NormalizedPath {
	out := make([]paths.NormalizedPath, 0, 1+len(r.project.IncludePaths))
	out = append(out, r.project.Root.Join(importPath))
	for _, inc := range r.project.IncludePaths {
		out = append(out, inc.Join(importPath))
	}
	return out
}

// applyBestRemapping filters to remappings whose context is empty or a
// path-prefix of the importer's context, then applies context and
// from-prefix precedence in sequence: the most specific applicable
// context tier (longest Context string) is tried first, and only if it
// has no matching "from" prefix does resolution fall back to a less
// specific tier, down to the context-empty tier last. Within whichever
// tier produces a match, the longest "from" prefix wins, with ties
// broken by declaration order.
func (r *Resolver) applyBestRemapping(currentFile paths.NormalizedPath, importString string) (string, bool) {
	importerContext, _ := currentFile.Dir().RelativeTo(r.project.Root)
	importerContextPath := paths.New(importerContext)

	applicable := make([]int, 0, len(r.remappings))
	for i, rm := range r.remappings {
		if contextApplies(rm.Context, importerContextPath) {
			applicable = append(applicable, i)
		}
	}

	tiers := make([]int, 0, len(applicable))
	seen := make(map[int]bool)
	for _, i := range applicable {
		l := len(r.remappings[i].Context)
		if !seen[l] {
			seen[l] = true
			tiers = append(tiers, l)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(tiers)))

	for _, tierLen := range tiers {
		bestIdx := -1
		bestLen := -1
		for _, i := range applicable {
			rm := r.remappings[i]
			if len(rm.Context) != tierLen {
				continue
			}
			if !strings.HasPrefix(importString, rm.From) {
				continue
			}
			if len(rm.From) > bestLen {
				bestLen = len(rm.From)
				bestIdx = i
			}
		}
		if bestIdx >= 0 {
			best := r.remappings[bestIdx]
			return best.To + importString[len(best.From):], true
		}
	}
	return "", false
}

func contextApplies(context string, importerContext paths.NormalizedPath) bool {
	if context == "" {
		return true
	}
	return importerContext.HasPrefix(paths.New(context))
}

func isAbsoluteImport(importString string) bool {
	return paths.New(importString).IsAbsolute()
}
