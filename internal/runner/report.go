package runner

import (
	"fmt"
	"os"
	"time"
)

// Report aggregates one run's statistics. Single-writer: the orchestrator
// appends to it as files complete; nothing else mutates it.
type Report struct {
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	DryRun    bool          `json:"dry_run"`

	FilesScanned  int `json:"files_scanned"`
	FilesModified int `json:"files_modified"`
	// FilesSkipped counts files containing at least one region the
	// extractor could not classify. They may still have been partially
	// rewritten; they are listed so an operator can inspect them.
	FilesSkipped int `json:"files_skipped"`
	FilesFailed  int `json:"files_failed"`

	RuleHits map[string]int `json:"rule_hits"`

	SkippedFiles []string `json:"skipped_files,omitempty"`
	FailedFiles  []string `json:"failed_files,omitempty"`
	Warnings     []string `json:"warnings,omitempty"`

	// Nil means the external checker could not produce a count.
	ErrorsBefore *int `json:"errors_before"`
	ErrorsAfter  *int `json:"errors_after"`
}

// record folds one file's outcome into the report.
func (r *Report) record(fr FileResult) {
	r.FilesScanned++
	if fr.Err != nil {
		r.FilesFailed++
		r.FailedFiles = append(r.FailedFiles, fr.Path)
		return
	}
	if fr.Modified {
		r.FilesModified++
	}
	if len(fr.Skipped) > 0 {
		r.FilesSkipped++
		r.SkippedFiles = append(r.SkippedFiles, fr.Path)
	}
	for rule, n := range fr.Hits {
		if r.RuleHits == nil {
			r.RuleHits = make(map[string]int)
		}
		r.RuleHits[rule] += n
	}
}

// TotalHits returns the sum of all rule hit counts.
func (r *Report) TotalHits() int {
	total := 0
	for _, n := range r.RuleHits {
		total += n
	}
	return total
}

const progressHeader = `| Date | Scanned | Modified | Skipped | Failed | Errors before | Errors after |
|------|---------|----------|---------|--------|---------------|--------------|
`

// AppendProgress appends one Markdown table row for the run to the
// progress log, creating the file with a header when absent.
func AppendProgress(path string, rep *Report) error {
	_, statErr := os.Stat(path)
	fresh := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening progress log: %w", err)
	}
	defer f.Close()

	if fresh {
		if _, err := f.WriteString(progressHeader); err != nil {
			return fmt.Errorf("writing progress header: %w", err)
		}
	}

	row := fmt.Sprintf("| %s | %d | %d | %d | %d | %s | %s |\n",
		rep.StartedAt.Format("2006-01-02 15:04"),
		rep.FilesScanned, rep.FilesModified, rep.FilesSkipped, rep.FilesFailed,
		countOrUnknown(rep.ErrorsBefore), countOrUnknown(rep.ErrorsAfter))
	if _, err := f.WriteString(row); err != nil {
		return fmt.Errorf("writing progress row: %w", err)
	}
	return nil
}

func countOrUnknown(p *int) string {
	if p == nil {
		return "unknown"
	}
	return fmt.Sprintf("%d", *p)
}
