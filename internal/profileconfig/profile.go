// Package profileconfig loads an optional .blocklocate.yaml describing a
// non-default lexer profile -- extra block-opening keywords and their
// pair-kind aliases -- so a project that uses non-Ruby-standard block
// keywords (DSLs built on Ruby's block syntax often add their own) doesn't
// need a custom Lexer of its own.
//
// It is grounded on the discover-then-merge-then-validate shape of
// yaklabco-gomdlint/internal/configloader/loader.go, scaled down from that
// package's multi-source (system/user/project/env/CLI) precedence chain to
// a single project-level file, since blocklocate has nothing analogous to
// system-wide or per-user linter defaults to merge in.
package profileconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jarredhawkins/blocklocate/internal/lexpair"
	"github.com/jarredhawkins/blocklocate/internal/rubylex"
)

// FileName is the config file Discover and Load look for.
const FileName = ".blocklocate.yaml"

// Profile is the on-disk shape of .blocklocate.yaml.
type Profile struct {
	// ExtraOpeners maps a block-opening keyword (e.g. "for", "until") onto
	// the name of the lexpair.Kind it should be treated as closing with
	// "end" (e.g. "while-end"). Values are matched case-sensitively against
	// lexpair.Kind.String().
	ExtraOpeners map[string]string `yaml:"extra_openers"`
}

// Discover walks upward from startDir looking for .blocklocate.yaml,
// stopping at the filesystem root. It returns "" (no error) if none is
// found -- the absence of a profile is the normal case, not a failure.
func Discover(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("profileconfig: resolve start dir: %w", err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Load reads and validates the profile at path.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("profileconfig: read %s: %w", path, err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("profileconfig: parse %s: %w", path, err)
	}

	if err := validate(&p); err != nil {
		return nil, fmt.Errorf("profileconfig: %s: %w", path, err)
	}

	return &p, nil
}

func validate(p *Profile) error {
	for keyword, kindName := range p.ExtraOpeners {
		if keyword == "" {
			return fmt.Errorf("extra_openers has an empty keyword")
		}
		if _, ok := lexpair.ParseKind(kindName); !ok {
			return fmt.Errorf("extra_openers[%q]: unknown kind %q", keyword, kindName)
		}
	}
	return nil
}

// Apply registers every profile opener onto lx via AddOpener, skipping
// entries whose kind name doesn't resolve -- Load already validates this
// for profiles it loaded itself, but Apply is also the entry point for a
// Profile callers construct by hand, so it re-checks rather than trusting
// the caller.
func Apply(lx *rubylex.Lexer, p *Profile) {
	if p == nil {
		return
	}
	for keyword, kindName := range p.ExtraOpeners {
		kind, ok := lexpair.ParseKind(kindName)
		if !ok {
			continue
		}
		lx.AddOpener(keyword, kind)
	}
}
