package catalog

import (
	"fmt"

	"github.com/spf13/viper"
)

// Load reads a catalog from the given YAML file and validates it. An empty
// path returns the built-in default catalog. A structurally invalid catalog
// is a fatal error: every downstream rewrite decision depends on it.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	var cat Catalog
	if err := v.Unmarshal(&cat); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}

	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}

	return &cat, nil
}

// Validate checks the catalog for structural problems that would make
// rewrites unsafe. It rejects empty names, self-renames, duplicate rules,
// and rename chains — a rule whose output is another rule's input would
// break the run-twice-is-a-no-op invariant.
func (c *Catalog) Validate() error {
	propFrom := make(map[string]bool)
	propTo := make(map[string]bool)
	seen := make(map[string]bool)

	for _, r := range c.PropRenames {
		if r.From == "" || r.To == "" {
			return fmt.Errorf("prop rename with empty from/to: %+v", r)
		}
		if r.From == r.To {
			return fmt.Errorf("prop rename %q maps to itself", r.From)
		}
		key := r.RuleName() + fmt.Sprintf("%v", r.AppliesTo)
		if seen[key] {
			return fmt.Errorf("duplicate prop rename %s", r.RuleName())
		}
		seen[key] = true
		propFrom[r.From] = true
		propTo[r.To] = true
	}
	for _, r := range c.PropRenames {
		if propFrom[r.To] {
			return fmt.Errorf("prop rename chain: %q is both a rename target and a rename source", r.To)
		}
	}

	identFrom := make(map[string]bool)
	for _, r := range c.IdentifierRenames {
		if r.From == "" || r.To == "" {
			return fmt.Errorf("identifier rename with empty from/to: %+v", r)
		}
		if r.From == r.To {
			return fmt.Errorf("identifier rename %q maps to itself", r.From)
		}
		if identFrom[r.From] {
			return fmt.Errorf("duplicate identifier rename for %q", r.From)
		}
		identFrom[r.From] = true
	}
	for _, r := range c.IdentifierRenames {
		if identFrom[r.To] {
			return fmt.Errorf("identifier rename chain: %q is both a rename target and a rename source", r.To)
		}
	}

	for _, r := range c.ImportRemaps {
		if r.FromPath == "" || r.ToPath == "" {
			return fmt.Errorf("import remap with empty path: %+v", r)
		}
		if r.FromPath == r.ToPath {
			return fmt.Errorf("import remap %q maps to itself", r.FromPath)
		}
	}
	// A move whose target path is itself remapped would rewrite its own
	// output on the next pass. That holds for full-statement moves and for
	// subset moves whenever the second rule covers a moved symbol: the
	// statement a split creates is indistinguishable from authored source.
	for _, r := range c.ImportRemaps {
		for _, other := range c.ImportRemaps {
			if other.FromPath != r.ToPath {
				continue
			}
			if len(r.Symbols) == 0 {
				return fmt.Errorf("import remap chain: %q is both a remap target and a remap source", r.ToPath)
			}
			for _, s := range r.Symbols {
				if other.Covers(s) {
					return fmt.Errorf("import remap chain: %q moved to %q would be remapped again to %q", s, r.ToPath, other.ToPath)
				}
			}
		}
	}
	// Same hazard for identifier renames that move modules: the specifier
	// they place on ToPath must not land on another remap's source path.
	for _, r := range c.IdentifierRenames {
		if r.ToPath == "" {
			continue
		}
		for _, m := range c.ImportRemaps {
			if m.FromPath == r.ToPath && m.Covers(r.To) {
				return fmt.Errorf("identifier rename chain: %q moved to %q would be remapped again to %q", r.To, r.ToPath, m.ToPath)
			}
		}
	}

	for _, e := range c.Exclusions {
		if e.Component == "" || e.Prop == "" {
			return fmt.Errorf("exclusion with empty component/prop: %+v", e)
		}
		if !propFrom[e.Prop] {
			return fmt.Errorf("exclusion (%s, %s) references no prop rename", e.Component, e.Prop)
		}
	}

	for _, p := range c.Patches {
		if p.PathSuffix == "" || p.Find == "" {
			return fmt.Errorf("patch with empty path_suffix/find: %+v", p)
		}
		if p.Find == p.Replace {
			return fmt.Errorf("patch for %q replaces text with itself", p.PathSuffix)
		}
	}

	return nil
}
