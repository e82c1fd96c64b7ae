// Package counter maps one path token to one set of counts.
//
// A named entry that is not a regular file is reported as a directory
// without reading it. When only the byte count is requested for a named
// file, the size comes from file metadata. Everything else is counted in a
// single streaming pass, using a raw byte scan when neither words nor
// characters are needed and a lossy UTF-8 text scan otherwise.
package counter

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"

	"github.com/harrison/rwc/internal/logger"
	"github.com/harrison/rwc/internal/models"
)

// DefaultChunkSize is the read size used when none is configured.
const DefaultChunkSize = 64 * 1024

// Counter counts path tokens. It is safe for concurrent use; every call to
// Count owns its own Counts record.
type Counter struct {
	stdin     io.Reader
	stdinMu   sync.Mutex
	chunkSize int
	log       *logger.ConsoleLogger
}

// New creates a Counter reading the stdin marker from stdin.
// A non-positive chunkSize selects DefaultChunkSize.
func New(stdin io.Reader, chunkSize int, log *logger.ConsoleLogger) *Counter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Counter{
		stdin:     stdin,
		chunkSize: chunkSize,
		log:       log,
	}
}

// Task counts token and sends exactly one result on results.
func (c *Counter) Task(token string, opts models.Options, results chan<- models.Result) {
	counts, err := c.Count(token, opts)
	if err != nil {
		c.log.LogDebug(fmt.Sprintf("count %s failed: %v", token, err))
		results <- models.Result{Path: token, Err: err}
		return
	}
	results <- models.Result{Path: token, Counts: counts}
}

// Count resolves token to a source and counts it.
func (c *Counter) Count(token string, opts models.Options) (models.Counts, error) {
	var counts models.Counts

	if token == models.StdinMarker {
		// Concurrent stdin tokens take turns; later ones see what is left.
		c.stdinMu.Lock()
		defer c.stdinMu.Unlock()
		if c.stdin == nil {
			return counts, fmt.Errorf("%s: standard input is not available", token)
		}
		err := c.scan(stdinSource{r: c.stdin}, opts, &counts)
		if err != nil {
			return counts, fmt.Errorf("%s: %w", token, err)
		}
		return counts, nil
	}

	// Stat before opening so a FIFO or device is never opened for reading.
	info, err := os.Stat(token)
	if err != nil {
		return counts, pathError(token, err)
	}
	if !info.Mode().IsRegular() {
		counts.IsDirectory = true
		return counts, nil
	}

	f, err := os.Open(token)
	if err != nil {
		return counts, pathError(token, err)
	}
	src := fileSource{f: f, info: info}
	defer src.close()

	if opts.ShowBytes && !opts.AnythingButBytes() {
		if st, err := f.Stat(); err == nil {
			src.info = st
		}
		counts.Bytes = uint64(src.info.Size())
		return counts, nil
	}

	if err := c.scan(src, opts, &counts); err != nil {
		return counts, pathError(token, err)
	}
	return counts, nil
}

func (c *Counter) scan(src source, opts models.Options, counts *models.Counts) error {
	r := src.reader(c.chunkSize)
	chunk := make([]byte, c.chunkSize)
	if opts.UTFRequired {
		return scanText(r, chunk, opts, counts)
	}
	return scanBytes(r, chunk, opts, counts)
}

// pathError reports err against token without repeating the path that
// *fs.PathError already carries.
func pathError(token string, err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return fmt.Errorf("%s: %w", token, pe.Err)
	}
	return fmt.Errorf("%s: %w", token, err)
}
