// Package render drives a composition through a backend: frames are
// evaluated on a pool of workers and handed to the backend strictly in order.
package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/matt-g-everett/framecast/scene"
)

// Backend consumes the primitive lists of a composition, one frame at a
// time in index order.
type Backend interface {
	Begin(c scene.Contract) error
	WriteFrame(index int, prims []scene.Primitive) error
	End() error
}

// FileBackend is a Backend that leaves a file behind.
type FileBackend interface {
	Backend
	OutputPath() string
}

// RenderOutputMissingError reports a backend run that finished without
// producing its output file.
type RenderOutputMissingError struct {
	Path string
}

func (e *RenderOutputMissingError) Error() string {
	return fmt.Sprintf("render output missing: %s", e.Path)
}

// Job renders every frame of one composition.
type Job struct {
	Contract scene.Contract
	Composer scene.Composer
	Backend  Backend
	// Workers evaluating frames; zero means one per CPU.
	Workers int
	Logger  *slog.Logger
	// Progress, when set, is called after each delivered frame.
	Progress func(done, total int)
}

type result struct {
	index int
	prims []scene.Primitive
}

func (j *Job) workers() int {
	if j.Workers > 0 {
		return j.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (j *Job) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}

// Run evaluates frames 0..N-1 and writes them to the backend in order.
// Cancellation is observed between frames. End is always called once Begin
// has succeeded, and a FileBackend's output must exist afterwards.
func (j *Job) Run(ctx context.Context) (err error) {
	log := j.logger().With("composition", j.Contract.ID)
	total := j.Contract.DurationInFrames
	start := time.Now()

	if err := j.Backend.Begin(j.Contract); err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if endErr := j.Backend.End(); endErr != nil {
			err = errors.Join(err, fmt.Errorf("end: %w", endErr))
		}
		if err == nil {
			err = j.verifyOutput()
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	n := j.workers()
	jobs := make(chan int)
	results := make(chan result, n)
	done := make(chan struct{})
	// slots bounds how far evaluation may run ahead of delivery.
	slots := make(chan struct{}, 2*n)

	go func() {
		defer close(jobs)
		for i := 0; i < total; i++ {
			select {
			case slots <- struct{}{}:
			case <-ctx.Done():
				return
			}
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	for w := 0; w < n; w++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for i := range jobs {
				r := result{index: i, prims: j.Composer.Compose(i)}
				select {
				case results <- r:
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	defer func() {
		cancel()
		for w := 0; w < n; w++ {
			<-done
		}
	}()

	log.Debug("rendering", "frames", total, "workers", n)
	pending := make(map[int][]scene.Primitive, n)
	for next := 0; next < total; {
		if prims, ok := pending[next]; ok {
			delete(pending, next)
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := j.Backend.WriteFrame(next, prims); err != nil {
				return fmt.Errorf("frame %d: %w", next, err)
			}
			next++
			<-slots
			if j.Progress != nil {
				j.Progress(next, total)
			}
			continue
		}
		select {
		case r := <-results:
			pending[r.index] = r.prims
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	log.Info("rendered", "frames", total, "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

func (j *Job) verifyOutput() error {
	fb, ok := j.Backend.(FileBackend)
	if !ok {
		return nil
	}
	path := fb.OutputPath()
	if _, err := os.Stat(path); err != nil {
		j.logger().Error("output missing", "path", path, "err", err)
		return &RenderOutputMissingError{Path: path}
	}
	return nil
}
