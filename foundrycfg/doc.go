// Package foundrycfg loads Foundry-style project configuration
// (foundry.toml, an optional solc settings overlay, env overrides) into
// the db.ResolvedConfig value the core consumes, per spec.md §6.1. The
// core never calls back into this package; it is a one-shot ingestion
// step run by the LSP transport before wiring a project into the
// database, the same "thin loader feeding an opaque resolved value"
// relationship the teacher's adapter/json package has to schema.Schema.
package foundrycfg
