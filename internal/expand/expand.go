// Package expand turns user patterns into a stream of path tokens.
//
// Patterns use doublestar syntax: "*", "?", "[...]", "{a,b}" and a "**"
// segment that matches across directory boundaries. A pattern without any
// of these is a literal and is passed through untouched, so a missing file
// surfaces later as a path error rather than as an empty match.
package expand

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/harrison/rwc/internal/logger"
	"github.com/harrison/rwc/internal/models"
)

// ErrBadPattern is wrapped by the failure reported for a malformed pattern.
var ErrBadPattern = errors.New("invalid glob pattern")

// Expander streams matches for a list of patterns.
type Expander struct {
	log *logger.ConsoleLogger

	// dirFS opens the walk root; os.DirFS outside tests.
	dirFS func(dir string) fs.FS
}

// New creates an Expander that logs walk progress to log.
func New(log *logger.ConsoleLogger) *Expander {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Expander{log: log, dirFS: os.DirFS}
}

// Expand sends one token per match on tokens and one failure per bad pattern
// on failures. The stdin marker and literal paths are sent before Expand
// moves to the next pattern; glob patterns are walked concurrently, each in
// its own goroutine, and every match is sent as soon as it is found.
//
// Expand returns once every walker has finished. It never closes either
// channel; the caller owns them.
func (e *Expander) Expand(patterns []string, tokens chan<- string, failures chan<- models.Result) {
	var wg sync.WaitGroup
	for _, pattern := range patterns {
		if pattern == models.StdinMarker || !hasMeta(pattern) {
			tokens <- pattern
			continue
		}

		if !doublestar.ValidatePattern(pattern) {
			failures <- models.Result{
				Pattern: pattern,
				Err:     fmt.Errorf("%s: %w", pattern, ErrBadPattern),
			}
			continue
		}

		pattern := pattern
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.walk(pattern, tokens, failures)
		}()
	}
	wg.Wait()
}

func (e *Expander) walk(pattern string, tokens chan<- string, failures chan<- models.Result) {
	base, rest := doublestar.SplitPattern(pattern)
	e.log.LogDebug(fmt.Sprintf("expanding %s in %s", rest, base))

	matches := 0
	err := doublestar.GlobWalk(e.dirFS(base), rest, func(match string, _ fs.DirEntry) error {
		matches++
		tokens <- joinBase(base, match)
		return nil
	})
	if err != nil {
		if errors.Is(err, doublestar.ErrBadPattern) {
			err = ErrBadPattern
		}
		failures <- models.Result{
			Pattern: pattern,
			Err:     fmt.Errorf("%s: %w", pattern, err),
		}
		return
	}

	if matches == 0 {
		e.log.LogInfo(pattern + ": no matches")
	}
}

// hasMeta reports whether pattern contains any glob syntax, including the
// escape character.
func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, `*?[{\`)
}

// joinBase maps a slash-separated match inside base back to a host path.
func joinBase(base, match string) string {
	if base == "." {
		return filepath.FromSlash(match)
	}
	return filepath.Join(filepath.FromSlash(base), filepath.FromSlash(match))
}
