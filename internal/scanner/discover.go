// Package scanner enumerates candidate source files for a rewrite run.
package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
)

// Options controls file discovery.
type Options struct {
	// Extensions filters files by extension, dot included (".tsx").
	Extensions []string
	// Exclude holds doublestar glob patterns matched against the path
	// relative to the root; a matched directory is pruned entirely.
	Exclude []string
}

// Discover walks each root and returns the matching absolute file paths,
// deterministic per root and in root order across roots. Dotfiles and
// excluded directories are skipped, and symlinked directories are not
// followed — a linked dependency tree would otherwise be scanned as source.
// A missing root is not an error: it is reported in the returned list of
// warnings and the walk continues with the remaining roots.
func Discover(roots []string, opts Options) ([]string, []string, error) {
	extSet := make(map[string]bool, len(opts.Extensions))
	for _, e := range opts.Extensions {
		extSet[strings.ToLower(e)] = true
	}

	perRoot := make([][]string, len(roots))
	warnings := make([]string, 0)
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(4)

	for i, root := range roots {
		i, root := i, root
		g.Go(func() error {
			files, warn, err := walkRoot(root, extSet, opts.Exclude)
			if err != nil {
				return err
			}
			mu.Lock()
			perRoot[i] = files
			if warn != "" {
				warnings = append(warnings, warn)
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, warnings, err
	}

	// Merge in root order; deduplicate overlapping roots.
	seen := make(map[string]bool)
	var all []string
	for _, files := range perRoot {
		for _, f := range files {
			if seen[f] {
				continue
			}
			seen[f] = true
			all = append(all, f)
		}
	}

	sort.Strings(warnings)
	return all, warnings, nil
}

// walkRoot discovers files under a single root.
func walkRoot(root string, extSet map[string]bool, exclude []string) ([]string, string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, "", err
	}
	if info, err := os.Stat(absRoot); err != nil || !info.IsDir() {
		return nil, "root " + root + " does not exist, skipping", nil
	}

	var files []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		// Dotfiles and dot-directories.
		base := filepath.Base(path)
		if path != absRoot && strings.HasPrefix(base, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		for _, pattern := range exclude {
			matched, _ := doublestar.PathMatch(pattern, rel)
			if matched {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() {
			// WalkDir does not follow directory symlinks, but an explicit
			// check keeps linked node_modules out even when a future
			// refactor changes the walker.
			if d.Type()&fs.ModeSymlink != 0 {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		if len(extSet) > 0 && !extSet[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	sort.Strings(files)
	return files, "", nil
}
