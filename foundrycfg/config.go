package foundrycfg

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"

	"github.com/solidity-analyzer/solidity-analyzer/db"
	"github.com/solidity-analyzer/solidity-analyzer/importresolver"
	"github.com/solidity-analyzer/solidity-analyzer/paths"
)

// FileSystem is the read-only collaborator this package consults for
// foundry.toml, an optional remappings.txt, and an optional solc
// settings overlay (spec.md §6.1). Tests substitute an in-memory
// implementation; production wiring uses OSFileSystem.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFileSystem reads from the real filesystem via os.ReadFile.
type OSFileSystem struct{}

// ReadFile implements FileSystem.
func (OSFileSystem) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// rawConfig is foundry.toml's shape, trimmed to the fields that affect
// name resolution and that db.ProjectInput carries through.
type rawConfig struct {
	Profile map[string]rawProfile `toml:"profile"`
}

type rawProfile struct {
	Src         string   `toml:"src"`
	Out         string   `toml:"out"`
	Libs        []string `toml:"libs"`
	Test        string   `toml:"test"`
	Script      string   `toml:"script"`
	Solc        string   `toml:"solc"`
	SolcVersion string   `toml:"solc_version"`
	Remappings  []string `toml:"remappings"`
}

const (
	settingsOverlayName = "solc_settings.jsonc"
	remappingsFileName  = "remappings.txt"
	foundryTomlName     = "foundry.toml"
	defaultProfileName  = "default"
)

// Load reads foundry.toml (and, if present, remappings.txt and
// solc_settings.jsonc) under root and resolves it into a db.ProjectInput
// for the active profile. activeProfile, if empty, falls back to the
// FOUNDRY_PROFILE environment variable and then "default" — Foundry's
// own profile-selection order.
//
// A missing foundry.toml is not an error: it resolves to the
// conventional src/lib/test/script layout with no remappings, which is
// what a freshly-scaffolded Foundry project looks like before any
// customization.
func Load(fsys FileSystem, root paths.NormalizedPath, activeProfile string) (db.ProjectInput, error) {
	raw, err := readTOML(fsys, root)
	if err != nil {
		return db.ProjectInput{}, err
	}

	name := activeProfile
	if name == "" {
		name = os.Getenv("FOUNDRY_PROFILE")
	}
	if name == "" {
		name = defaultProfileName
	}

	rp := raw.Profile[name]
	if name != defaultProfileName {
		// Foundry profiles inherit unset fields from [profile.default];
		// a profile that only overrides e.g. `libs` still needs `src`.
		rp = mergeProfile(raw.Profile[defaultProfileName], rp)
	}

	remappings, err := parseRemappings(rp.Remappings)
	if err != nil {
		return db.ProjectInput{}, fmt.Errorf("foundry.toml profile %q: %w", name, err)
	}
	fileRemappings, err := readRemappingsFile(fsys, root)
	if err != nil {
		return db.ProjectInput{}, err
	}
	remappings = append(remappings, fileRemappings...)

	settings, err := loadSettingsOverlay(fsys, root)
	if err != nil {
		return db.ProjectInput{}, err
	}

	solcVersion := rp.SolcVersion
	if solcVersion == "" {
		solcVersion = rp.Solc
	}

	ws := db.Workspace{
		Root:   root,
		Src:    subdir(root, rp.Src, "src"),
		Lib:    firstLib(root, rp.Libs),
		Test:   subdir(root, rp.Test, "test"),
		Script: subdir(root, rp.Script, "script"),
	}

	return db.ProjectInput{
		Workspace: ws,
		Config: db.ResolvedConfig{
			ActiveProfile: db.Profile{
				Name:        name,
				SolcVersion: solcVersion,
				Remappings:  remappings,
				RawSettings: settings,
			},
		},
	}, nil
}

func readTOML(fsys FileSystem, root paths.NormalizedPath) (rawConfig, error) {
	data, err := fsys.ReadFile(root.Join(foundryTomlName).String())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return rawConfig{}, nil
		}
		return rawConfig{}, fmt.Errorf("read foundry.toml: %w", err)
	}
	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return rawConfig{}, fmt.Errorf("parse foundry.toml: %w", err)
	}
	return raw, nil
}

// mergeProfile fills zero-valued fields of override from base, modeling
// Foundry's profile inheritance from [profile.default].
func mergeProfile(base, override rawProfile) rawProfile {
	out := override
	if out.Src == "" {
		out.Src = base.Src
	}
	if out.Out == "" {
		out.Out = base.Out
	}
	if len(out.Libs) == 0 {
		out.Libs = base.Libs
	}
	if out.Test == "" {
		out.Test = base.Test
	}
	if out.Script == "" {
		out.Script = base.Script
	}
	if out.Solc == "" {
		out.Solc = base.Solc
	}
	if out.SolcVersion == "" {
		out.SolcVersion = base.SolcVersion
	}
	if len(out.Remappings) == 0 {
		out.Remappings = base.Remappings
	}
	return out
}

func subdir(root paths.NormalizedPath, configured, fallback string) paths.NormalizedPath {
	if configured == "" {
		configured = fallback
	}
	return root.Join(configured)
}

func firstLib(root paths.NormalizedPath, libs []string) paths.NormalizedPath {
	if len(libs) == 0 {
		return root.Join("lib")
	}
	return root.Join(libs[0])
}

// parseRemappings parses foundry.toml's `remappings` list, each entry
// shaped `[context:]from=to` per spec.md §3's Remapping type.
func parseRemappings(entries []string) ([]importresolver.Remapping, error) {
	var out []importresolver.Remapping
	for _, raw := range entries {
		r, ok, err := parseRemappingLine(raw)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func parseRemappingLine(raw string) (importresolver.Remapping, bool, error) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return importresolver.Remapping{}, false, nil
	}

	var context, rest string
	// A context-scoped remapping is "context:from=to"; since neither side
	// of a remapping legitimately contains ':' on any platform this engine
	// targets, the first colon (if one precedes the first '=') is the
	// context separator.
	if colon := strings.IndexByte(line, ':'); colon >= 0 {
		if eq := strings.IndexByte(line, '='); eq < 0 || colon < eq {
			context = line[:colon]
			rest = line[colon+1:]
		} else {
			rest = line
		}
	} else {
		rest = line
	}

	eq := strings.IndexByte(rest, '=')
	if eq < 0 {
		return importresolver.Remapping{}, false, fmt.Errorf("invalid remapping %q: missing '='", raw)
	}
	return importresolver.Remapping{
		Context: context,
		From:    rest[:eq],
		To:      rest[eq+1:],
	}, true, nil
}

// readRemappingsFile folds in a project-root remappings.txt, the
// alternative (non-TOML) place Foundry projects commonly declare
// remappings; entries here are appended after foundry.toml's own list,
// so foundry.toml's ordering still wins prefix-length ties per spec.md §4.3.
func readRemappingsFile(fsys FileSystem, root paths.NormalizedPath) ([]importresolver.Remapping, error) {
	data, err := fsys.ReadFile(root.Join(remappingsFileName).String())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read remappings.txt: %w", err)
	}
	var out []importresolver.Remapping
	for _, line := range strings.Split(string(data), "\n") {
		r, ok, err := parseRemappingLine(line)
		if err != nil {
			return nil, fmt.Errorf("remappings.txt: %w", err)
		}
		if ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// loadSettingsOverlay decodes an optional solc_settings.jsonc — a
// human-edited, comment-bearing copy of solc's "standard JSON" input
// settings — using tidwall/jsonc to strip comments before encoding/json
// decodes it. Absence is not an error: most profiles carry no settings
// overlay at all.
func loadSettingsOverlay(fsys FileSystem, root paths.NormalizedPath) (map[string]any, error) {
	data, err := fsys.ReadFile(root.Join(settingsOverlayName).String())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", settingsOverlayName, err)
	}
	var out map[string]any
	if err := json.Unmarshal(jsonc.ToJSON(data), &out); err != nil {
		return nil, fmt.Errorf("parse %s: %w", settingsOverlayName, err)
	}
	return out, nil
}
