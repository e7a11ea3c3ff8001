// Package importresolver turns a Solidity import string, relative to a
// given importing file, into a concrete project-relative path: resolving
// relative imports directly, and remapping everything else against an
// ordered, context-ranked remapping list.
package importresolver
