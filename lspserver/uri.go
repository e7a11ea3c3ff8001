package lspserver

import (
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"

	"github.com/solidity-analyzer/solidity-analyzer/paths"
)

// uriToPath converts a file:// URI to a NormalizedPath, per the teacher's
// lsp.URIToPath.
func uriToPath(uri string) (paths.NormalizedPath, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return paths.NormalizedPath{}, fmt.Errorf("parse URI %q: %w", uri, err)
	}
	if u.Scheme != "file" {
		return paths.NormalizedPath{}, fmt.Errorf("not a file URI: %s", uri)
	}

	p := u.Path
	if runtime.GOOS == "windows" {
		if len(p) >= 3 && p[0] == '/' && isWindowsDriveLetter(p[1]) && p[2] == ':' {
			p = p[1:]
		}
	}
	return paths.New(p), nil
}

// pathToURI converts a NormalizedPath back to a file:// URI.
func pathToURI(p paths.NormalizedPath) string {
	raw := p.String()
	if runtime.GOOS == "windows" && len(raw) >= 2 && isWindowsDriveLetter(raw[0]) && raw[1] == ':' {
		raw = "/" + raw
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(raw)}
	return u.String()
}

func isWindowsDriveLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
