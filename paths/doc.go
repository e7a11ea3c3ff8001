// Package paths provides canonical, comparable file path handles.
//
// A [NormalizedPath] folds separators to "/", collapses "." and ".."
// segments, preserves Windows drive and UNC prefixes, and case-folds on
// Windows (the only case-insensitive host it special-cases). Two
// NormalizedPath values referring to the same file are guaranteed to
// compare equal.
package paths
