package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmptyPathReturnsDefault(t *testing.T) {
	cat, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, cat)
	assert.Greater(t, cat.RuleCount(), 0)
	assert.NoError(t, cat.Validate())
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	content := `
prop_renames:
  - from: isOpen
    to: open
  - from: spacing
    to: gap
    applies_to: [Stack, HStack]
import_remaps:
  - from_path: pkg
    to_path: pkg/grid
    symbols: [Grid, GridItem]
exclusions:
  - component: Modal
    prop: isOpen
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cat, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cat.PropRenames, 2)
	assert.Equal(t, "isOpen", cat.PropRenames[0].From)
	assert.False(t, cat.PropRenames[0].Specific())
	assert.True(t, cat.PropRenames[1].Specific())
	assert.True(t, cat.PropRenames[1].Matches("Stack"))
	assert.False(t, cat.PropRenames[1].Matches("Grid"))

	require.Len(t, cat.ImportRemaps, 1)
	assert.True(t, cat.ImportRemaps[0].Covers("Grid"))
	assert.False(t, cat.ImportRemaps[0].Covers("Box"))

	assert.True(t, cat.Excluded("Modal", "isOpen"))
	assert.False(t, cat.Excluded("Button", "isOpen"))
}

func TestLoad_MissingFileIsFatal(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate_RejectsSelfRename(t *testing.T) {
	cat := &Catalog{PropRenames: []PropRename{{From: "open", To: "open"}}}
	assert.Error(t, cat.Validate())
}

func TestValidate_RejectsRenameChain(t *testing.T) {
	// isOpen -> open -> expanded would rewrite its own output on the
	// second pass.
	cat := &Catalog{PropRenames: []PropRename{
		{From: "isOpen", To: "open"},
		{From: "open", To: "expanded"},
	}}
	assert.Error(t, cat.Validate())
}

func TestValidate_RejectsIdentifierChain(t *testing.T) {
	cat := &Catalog{IdentifierRenames: []IdentifierRename{
		{From: "AddIcon", To: "PlusIcon"},
		{From: "PlusIcon", To: "LuPlus"},
	}}
	assert.Error(t, cat.Validate())
}

func TestValidate_RejectsImportRemapChain(t *testing.T) {
	cat := &Catalog{ImportRemaps: []ImportRemap{
		{FromPath: "pkg/toast", ToPath: "pkg/toaster"},
		{FromPath: "pkg/toaster", ToPath: "pkg/notify"},
	}}
	assert.Error(t, cat.Validate())
}

func TestValidate_RejectsSubsetRemapChain(t *testing.T) {
	// The split puts A on pkg2; the second rule would move that new
	// statement again on the next run.
	cat := &Catalog{ImportRemaps: []ImportRemap{
		{FromPath: "pkg", ToPath: "pkg2", Symbols: []string{"A"}},
		{FromPath: "pkg2", ToPath: "pkg3"},
	}}
	assert.Error(t, cat.Validate())
}

func TestValidate_AllowsDisjointRemapsOnSamePath(t *testing.T) {
	// The second rule never covers the symbol the first one moves, so
	// the statement the split creates is stable.
	cat := &Catalog{ImportRemaps: []ImportRemap{
		{FromPath: "pkg", ToPath: "pkg2", Symbols: []string{"A"}},
		{FromPath: "pkg2", ToPath: "pkg3", Symbols: []string{"B"}},
	}}
	assert.NoError(t, cat.Validate())
}

func TestValidate_RejectsIdentifierMoveOntoRemappedPath(t *testing.T) {
	cat := &Catalog{
		IdentifierRenames: []IdentifierRename{
			{From: "AddIcon", To: "LuPlus", FromPath: "pkg/icons", ToPath: "pkg2"},
		},
		ImportRemaps: []ImportRemap{
			{FromPath: "pkg2", ToPath: "pkg3"},
		},
	}
	assert.Error(t, cat.Validate())
}

func TestValidate_RejectsDanglingExclusion(t *testing.T) {
	cat := &Catalog{
		PropRenames: []PropRename{{From: "isOpen", To: "open"}},
		Exclusions:  []Exclusion{{Component: "Modal", Prop: "isLoading"}},
	}
	assert.Error(t, cat.Validate())
}

func TestValidate_DefaultCatalogIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoad_InvalidCatalogIsFatal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	content := `
prop_renames:
  - from: isOpen
    to: isOpen
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
