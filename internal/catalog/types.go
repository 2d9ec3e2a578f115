// Package catalog defines the declarative transformation rule table consumed
// by the rewrite engine. The catalog is the single source of truth for what
// gets rewritten: prop renames, import-path remaps, identifier renames,
// per-file patches, and the exclusions that pin specific (component, prop)
// pairs to their pre-rename form.
package catalog

import "fmt"

// PropRename renames a JSX attribute. An empty AppliesTo list means the
// rule applies to every tag; a non-empty list restricts it to those tags
// and takes precedence over an all-tags rule for the same attribute.
type PropRename struct {
	From      string   `mapstructure:"from" json:"from"`
	To        string   `mapstructure:"to" json:"to"`
	AppliesTo []string `mapstructure:"applies_to" json:"applies_to"`
}

// RuleName returns the stable key used for per-rule hit counts.
func (r PropRename) RuleName() string {
	return fmt.Sprintf("prop:%s->%s", r.From, r.To)
}

// Matches reports whether the rule applies to the given tag.
func (r PropRename) Matches(tag string) bool {
	if len(r.AppliesTo) == 0 {
		return true
	}
	for _, t := range r.AppliesTo {
		if t == tag {
			return true
		}
	}
	return false
}

// Specific reports whether the rule names explicit tags rather than
// applying to all of them.
func (r PropRename) Specific() bool {
	return len(r.AppliesTo) > 0
}

// ImportRemap moves symbols from one module path to another. An empty
// Symbols list moves the whole statement; otherwise only the listed named
// symbols move and the remainder stays on the original path (import split).
type ImportRemap struct {
	FromPath string   `mapstructure:"from_path" json:"from_path"`
	ToPath   string   `mapstructure:"to_path" json:"to_path"`
	Symbols  []string `mapstructure:"symbols" json:"symbols"`
}

// RuleName returns the stable key used for per-rule hit counts.
func (r ImportRemap) RuleName() string {
	return fmt.Sprintf("import:%s->%s", r.FromPath, r.ToPath)
}

// Covers reports whether the rule moves the given symbol.
func (r ImportRemap) Covers(symbol string) bool {
	if len(r.Symbols) == 0 {
		return true
	}
	for _, s := range r.Symbols {
		if s == symbol {
			return true
		}
	}
	return false
}

// IdentifierRename replaces an imported identifier that no longer exists
// (e.g. a removed icon) with its successor, rewriting both the import
// specifier and every JSX tag usage consistently. When FromPath/ToPath are
// set the specifier also moves to the new module.
type IdentifierRename struct {
	From     string `mapstructure:"from" json:"from"`
	To       string `mapstructure:"to" json:"to"`
	FromPath string `mapstructure:"from_path" json:"from_path"`
	ToPath   string `mapstructure:"to_path" json:"to_path"`
}

// RuleName returns the stable key used for per-rule hit counts.
func (r IdentifierRename) RuleName() string {
	return fmt.Sprintf("ident:%s->%s", r.From, r.To)
}

// Exclusion pins a (component, prop) pair to the pre-rename form. It is
// evaluated with higher precedence than any PropRename.
type Exclusion struct {
	Component string `mapstructure:"component" json:"component"`
	Prop      string `mapstructure:"prop" json:"prop"`
}

// Patch is a known per-file fix. It applies only to files whose path ends
// in PathSuffix, and only when Find is present and Replace is not already,
// which keeps it a no-op on a second run.
type Patch struct {
	PathSuffix string `mapstructure:"path_suffix" json:"path_suffix"`
	Find       string `mapstructure:"find" json:"find"`
	Replace    string `mapstructure:"replace" json:"replace"`
}

// RuleName returns the stable key used for per-rule hit counts.
func (r Patch) RuleName() string {
	return fmt.Sprintf("patch:%s", r.PathSuffix)
}

// Catalog is the full transformation rule table. Read-only after loading.
type Catalog struct {
	PropRenames       []PropRename       `mapstructure:"prop_renames" json:"prop_renames"`
	ImportRemaps      []ImportRemap      `mapstructure:"import_remaps" json:"import_remaps"`
	IdentifierRenames []IdentifierRename `mapstructure:"identifier_renames" json:"identifier_renames"`
	Exclusions        []Exclusion        `mapstructure:"exclusions" json:"exclusions"`
	Patches           []Patch            `mapstructure:"patches" json:"patches"`
}

// Excluded reports whether the (tag, prop) pair is pinned to its
// pre-rename form.
func (c *Catalog) Excluded(tag, prop string) bool {
	for _, e := range c.Exclusions {
		if e.Component == tag && e.Prop == prop {
			return true
		}
	}
	return false
}

// RuleCount returns the total number of rules across all scopes.
func (c *Catalog) RuleCount() int {
	return len(c.PropRenames) + len(c.ImportRemaps) + len(c.IdentifierRenames) + len(c.Patches)
}
