// Package report writes a machine-readable YAML summary of one run.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/harrison/rwc/internal/models"
)

// Report is the document written to the report file.
type Report struct {
	RunID     string        `yaml:"run_id"`
	StartedAt string        `yaml:"started_at"`
	Metrics   []string      `yaml:"metrics"`
	Files     []FileEntry   `yaml:"files"`
	Errors    []ErrorEntry  `yaml:"errors,omitempty"`
	Total     models.Counts `yaml:"total"`
}

// FileEntry records the counts of one path token.
type FileEntry struct {
	Path   string        `yaml:"path"`
	Counts models.Counts `yaml:"counts"`
}

// ErrorEntry records one failed path or pattern.
type ErrorEntry struct {
	Path    string `yaml:"path,omitempty"`
	Pattern string `yaml:"pattern,omitempty"`
	Message string `yaml:"message"`
}

// Build assembles a report from drained results. Entries are sorted by
// path so the document is stable even though results arrive in any order.
func Build(started time.Time, opts models.Options, results []models.Result, summary models.Summary) *Report {
	r := &Report{
		RunID:     uuid.NewString(),
		StartedAt: started.UTC().Format(time.RFC3339),
		Metrics:   metricNames(opts),
		Files:     make([]FileEntry, 0, len(results)),
		Total:     summary.Total,
	}

	for _, res := range results {
		if res.Failed() {
			r.Errors = append(r.Errors, ErrorEntry{
				Path:    res.Path,
				Pattern: res.Pattern,
				Message: res.Err.Error(),
			})
			continue
		}
		r.Files = append(r.Files, FileEntry{Path: res.Path, Counts: res.Counts})
	}

	sort.SliceStable(r.Files, func(i, j int) bool { return r.Files[i].Path < r.Files[j].Path })
	sort.SliceStable(r.Errors, func(i, j int) bool {
		return r.Errors[i].Path+r.Errors[i].Pattern < r.Errors[j].Path+r.Errors[j].Pattern
	})
	return r
}

func metricNames(opts models.Options) []string {
	var names []string
	if opts.ShowLines {
		names = append(names, "lines")
	}
	if opts.ShowWords {
		names = append(names, "words")
	}
	if opts.ShowBytes {
		names = append(names, "bytes")
	}
	if opts.ShowChars {
		names = append(names, "chars")
	}
	return names
}

// Marshal encodes the report as YAML.
func (r *Report) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return data, nil
}

// Write encodes the report and stores it at path.
func (r *Report) Write(path string) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}
	return LockAndWrite(path, data)
}
