// Package vfs implements the virtual file system: path-keyed file
// identifiers with monotonic per-file versions, and immutable snapshots
// that are safe to share across goroutines.
package vfs
