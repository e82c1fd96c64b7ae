// Package pipeline wires pattern expansion, per-file counting and the
// result sink together.
//
//	patterns -> Expander -> tokens -> one Counter task per token -> results -> Sink
//
// Both channels are unbounded, so no producer ever waits on the sink. The
// result channel closes once expansion and every counting task have
// finished sending; the sink's return marks the end of the run. Result lines
// appear in completion order, not input order. The number of counting tasks
// in flight is not capped: a pattern matching N files runs N tasks at once.
package pipeline

import (
	"io"

	"github.com/sourcegraph/conc"

	"github.com/harrison/rwc/internal/chanx"
	"github.com/harrison/rwc/internal/counter"
	"github.com/harrison/rwc/internal/expand"
	"github.com/harrison/rwc/internal/logger"
	"github.com/harrison/rwc/internal/models"
	"github.com/harrison/rwc/internal/sink"
)

// Config describes one run.
type Config struct {
	Patterns  []string
	Options   models.Options
	Stdin     io.Reader
	Stdout    io.Writer
	Logger    *logger.ConsoleLogger
	ChunkSize int

	// Total appends the aggregate line.
	Total bool
	// Record keeps every result in the Outcome, for reporting.
	Record bool
}

// Outcome is what a completed drain produced.
type Outcome struct {
	Summary models.Summary
	Results []models.Result
}

// Run executes the pipeline and returns once the sink has drained every
// result. An error is returned only when the output stream fails; in that
// case Run returns immediately and in-flight tasks are abandoned.
func Run(cfg Config) (*Outcome, error) {
	log := cfg.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	tokens := chanx.NewUnbounded[string]()
	results := chanx.NewUnbounded[models.Result]()

	s := sink.New(cfg.Stdout, log, cfg.Options, sink.WithTotal(cfg.Total), sink.WithRecording(cfg.Record))
	sinkDone := make(chan error, 1)
	go func() {
		sinkDone <- s.Drain(results.Out())
	}()

	exp := expand.New(log)
	go func() {
		exp.Expand(cfg.Patterns, tokens.In(), results.In())
		close(tokens.In())
	}()

	ctr := counter.New(cfg.Stdin, cfg.ChunkSize, log)
	go func() {
		tasks := conc.NewWaitGroup()
		for token := range tokens.Out() {
			log.LogDebug("counting " + token)
			token := token
			tasks.Go(func() {
				ctr.Task(token, cfg.Options, results.In())
			})
		}
		tasks.Wait()
		close(results.In())
	}()

	if err := <-sinkDone; err != nil {
		// Nothing reads results any more; discard them so producers can finish.
		go chanx.Drain(results.Out())
		return nil, err
	}
	return &Outcome{Summary: s.Summary(), Results: s.Results()}, nil
}
