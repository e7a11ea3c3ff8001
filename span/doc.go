// Package span provides byte-offset source ranges and conversion to/from
// UTF-16 (line, character) positions as used on the LSP wire.
package span
