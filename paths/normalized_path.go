package paths

import (
	"path"
	"runtime"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizedPath is a canonical string form of a file path.
//
// Two NormalizedPath values referring to the same file are guaranteed to
// compare equal: separators are folded to "/", "." and ".." segments are
// collapsed, Windows drive and UNC prefixes are preserved, and the path is
// case-folded when running on a case-insensitive host (Windows only — see
// DESIGN.md for why non-Windows case-insensitive filesystems are not
// special-cased).
//
// NormalizedPath is a value type with an unexported field; always pass by
// value. The zero value is invalid — use IsZero to check.
type NormalizedPath struct {
	raw string
}

// New normalizes p into a NormalizedPath. Normalization is purely lexical:
// it never touches the filesystem (VFS paths frequently do not exist on
// disk yet), so there is no symlink resolution step here.
func New(p string) NormalizedPath {
	if p == "" {
		return NormalizedPath{}
	}

	folded := strings.ReplaceAll(p, "\\", "/")

	switch {
	case isUNC(folded):
		return NormalizedPath{raw: normalizeCase(cleanUNC(folded))}
	case isDriveLetter(folded):
		drive := folded[:2]
		rest := folded[2:]
		cleaned := cleanGeneric(rest)
		return NormalizedPath{raw: normalizeCase(drive + cleaned)}
	default:
		return NormalizedPath{raw: normalizeCase(cleanGeneric(folded))}
	}
}

// IsZero reports whether this is the zero value.
func (n NormalizedPath) IsZero() bool { return n.raw == "" }

// String returns the normalized path string.
func (n NormalizedPath) String() string { return n.raw }

// IsAbsolute reports whether the path is root-rooted, drive-lettered, or UNC.
func (n NormalizedPath) IsAbsolute() bool {
	if n.raw == "" {
		return false
	}
	if strings.HasPrefix(n.raw, "/") {
		return true
	}
	return isDriveLetter(n.raw) || isUNC(n.raw)
}

// Dir returns the parent directory as a NormalizedPath.
func (n NormalizedPath) Dir() NormalizedPath {
	if n.IsZero() {
		return NormalizedPath{}
	}
	return New(path.Dir(n.raw))
}

// Base returns the final path element.
func (n NormalizedPath) Base() string {
	if n.IsZero() {
		return ""
	}
	return path.Base(n.raw)
}

// Join appends elem to n and re-normalizes the result.
func (n NormalizedPath) Join(elem ...string) NormalizedPath {
	parts := append([]string{n.raw}, elem...)
	return New(strings.Join(parts, "/"))
}

// HasPrefix reports whether n is equal to prefix or lies underneath it as a
// path-component prefix (not merely a string prefix: "/a/bb" is not under
// "/a/b").
func (n NormalizedPath) HasPrefix(prefix NormalizedPath) bool {
	if prefix.IsZero() {
		return true
	}
	if n.raw == prefix.raw {
		return true
	}
	p := prefix.raw
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return strings.HasPrefix(n.raw, p)
}

// RelativeTo returns the path of n relative to base using "/" separators,
// and false if n does not lie under base.
func (n NormalizedPath) RelativeTo(base NormalizedPath) (string, bool) {
	if !n.HasPrefix(base) {
		return "", false
	}
	if n.raw == base.raw {
		return "", true
	}
	rest := strings.TrimPrefix(n.raw, base.raw)
	return strings.TrimPrefix(rest, "/"), true
}

func cleanGeneric(p string) string {
	if p == "" {
		return ""
	}
	cleaned := path.Clean(p)
	// path.Clean("") == "." which is not a meaningful normalized form here.
	if cleaned == "." {
		return ""
	}
	return cleaned
}

func cleanUNC(p string) string {
	// Preserve the leading "//" that path.Clean would otherwise collapse to "/".
	rest := strings.TrimPrefix(p, "//")
	cleaned := path.Clean("/" + rest)
	return "/" + cleaned
}

func isDriveLetter(p string) bool {
	return len(p) >= 2 && isASCIILetter(p[0]) && p[1] == ':'
}

func isUNC(p string) bool {
	return strings.HasPrefix(p, "//") && len(p) > 2
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// normalizeCase applies NFC normalization always, and ASCII case-folding
// only when the host is Windows (the one case-insensitive platform this
// package special-cases — see DESIGN.md's "Windows path handling" note).
func normalizeCase(p string) string {
	p = norm.NFC.String(p)
	if runtime.GOOS == "windows" {
		return strings.ToLower(p)
	}
	return p
}
