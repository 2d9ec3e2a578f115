// Package config provides configuration loading and defaults for propshift.
package config

// DefaultRoots are the default directories to scan for source files.
var DefaultRoots = []string{"src"}

// DefaultExtensions is the default source-file extension filter.
var DefaultExtensions = []string{".ts", ".tsx", ".js", ".jsx"}

// DefaultExcludes are glob patterns for directories that are never scanned.
var DefaultExcludes = []string{
	"**/node_modules/**",
	"**/dist/**",
	"**/build/**",
	"**/.next/**",
	"**/coverage/**",
}

// DefaultConfigDir is the default location for propshift configuration.
const DefaultConfigDir = "~/.config/propshift"

// DefaultDBName is the filename for the run-history SQLite database.
const DefaultDBName = "propshift.db"

// DefaultDeclarationsOut is the default target for synthesized ambient
// declarations.
const DefaultDeclarationsOut = "src/types/shims.d.ts"

// DefaultProgressLog is the default progress log appended after each run.
const DefaultProgressLog = "MIGRATION_LOG.md"

// DefaultChecker holds the default external type-checker invocation.
// The pattern's first capture group extracts the diagnostic count from
// the checker's combined output.
var DefaultChecker = Checker{
	Command: "npx",
	Args:    []string{"tsc", "--noEmit", "--pretty", "false"},
	Pattern: `Found (\d+) error`,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
