// Package scope turns a parsed function body into the set of local
// variables visible at any byte offset inside it: parameters, named
// returns, and block-scoped locals, resolved with ordinary
// shadowing-correct, forward-only (definition-before-use) rules.
package scope
