// Package sink drains pipeline results and owns all output.
//
// The sink is the only writer of result lines and per-item diagnostics, so
// concurrent counting tasks never interleave partial lines. Failures of an
// individual path or pattern are logged and skipped. A failure to write the
// output stream itself ends the drain.
package sink

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/harrison/rwc/internal/display"
	"github.com/harrison/rwc/internal/logger"
	"github.com/harrison/rwc/internal/models"
)

// ErrOutput is wrapped by the error Drain returns when the output stream
// cannot be written.
var ErrOutput = errors.New("failed to write output")

// Sink formats results onto an output stream.
type Sink struct {
	out   *bufio.Writer
	log   *logger.ConsoleLogger
	opts  models.Options
	total bool

	record  bool
	results []models.Result
	summary models.Summary
}

// Option configures a Sink.
type Option func(*Sink)

// WithTotal appends a "total" line after the last result.
func WithTotal(enabled bool) Option {
	return func(s *Sink) { s.total = enabled }
}

// WithRecording keeps every drained result for Results.
func WithRecording(enabled bool) Option {
	return func(s *Sink) { s.record = enabled }
}

// New creates a Sink writing result lines to out and diagnostics to log.
func New(out io.Writer, log *logger.ConsoleLogger, opts models.Options, options ...Option) *Sink {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	s := &Sink{
		out:  bufio.NewWriter(out),
		log:  log,
		opts: opts,
	}
	for _, o := range options {
		o(s)
	}
	return s
}

// Drain consumes results until the channel is closed. It returns nil after
// a normal close, or an error wrapping ErrOutput as soon as a write to the
// output stream fails. Whatever is already buffered is flushed first.
func (s *Sink) Drain(results <-chan models.Result) error {
	for r := range results {
		if err := s.handle(r); err != nil {
			return s.fatal(err)
		}
	}

	if s.total {
		if err := display.WriteTotal(s.out, s.summary.Total, s.opts); err != nil {
			return s.fatal(err)
		}
	}
	if err := s.out.Flush(); err != nil {
		return s.fatal(err)
	}
	return nil
}

func (s *Sink) handle(r models.Result) error {
	s.summary.Record(r)
	if s.record {
		s.results = append(s.results, r)
	}

	switch {
	case r.Failed():
		// Result lines already written must reach the terminal before the diagnostic.
		if err := s.out.Flush(); err != nil {
			return err
		}
		// A broken error stream is not fatal; the output stream still works.
		_ = s.log.LogFailure(r.Err)
		return nil
	case r.Counts.IsDirectory:
		if !s.opts.ShowDirs {
			return nil
		}
		if err := display.WriteDirectory(s.out, r.Path); err != nil {
			return err
		}
	default:
		if err := display.WriteCounts(s.out, r.Path, r.Counts, s.opts); err != nil {
			return err
		}
	}
	return s.out.Flush()
}

func (s *Sink) fatal(err error) error {
	// Best effort; the stream is already failing.
	_ = s.out.Flush()
	return fmt.Errorf("%w: %v", ErrOutput, err)
}

// Summary returns the aggregate of everything drained so far.
func (s *Sink) Summary() models.Summary {
	return s.summary
}

// Results returns the drained results when recording is enabled.
func (s *Sink) Results() []models.Result {
	return s.results
}
