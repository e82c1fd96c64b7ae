package models

// Result is the item carried on the result channel: either the counts for
// one path token, or a failure tagged with the path or pattern it came from.
type Result struct {
	// Path is the token that was counted. Empty for pattern failures.
	Path string
	// Pattern is set instead of Path when expansion of a pattern failed.
	Pattern string
	Counts  Counts
	Err     error
}

// Failed reports whether the result carries an error.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Summary aggregates the results drained by one run.
type Summary struct {
	Files       int    // regular files and stdin counted
	Directories int    // directory tokens seen
	Failures    int    // per-file and per-pattern failures
	Total       Counts // sum over counted files
}

// Record folds one result into the summary.
func (s *Summary) Record(r Result) {
	switch {
	case r.Failed():
		s.Failures++
	case r.Counts.IsDirectory:
		s.Directories++
	default:
		s.Files++
		s.Total.Add(r.Counts)
	}
}
