// Package engine walks the output frame range, drives the transition once
// per frame and hands composited frames to a sink in order.
package engine

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/osokin/composite/internal/system"
	"github.com/osokin/composite/internal/transition"
	"github.com/osokin/composite/internal/yuv"
)

// Sink receives composited frames in presentation order.
type Sink interface {
	WriteFrame(f *yuv.Frame) error
	Close() error
}

// Viewer is implemented by sources that can hand out independent views
// sharing the underlying artwork, one per concurrent worker. Sources
// without views are used directly and must be stateless.
type Viewer interface {
	View() transition.Source
}

// Runner renders Frames output frames. Compositing runs on up to Workers
// goroutines; each worker gets its own source views so every frame's
// background buffer has a single writer. A writer goroutine reorders the
// finished frames, streams them to the sink in presentation order and
// returns each buffer to the pool as soon as it is written.
type Runner struct {
	Transition *transition.Transition
	Background transition.Source
	Overlay    transition.Source
	Sink       Sink
	Frames     int
	Workers    int
}

type rendered struct {
	pos   int
	frame *yuv.Frame
}

func view(s transition.Source) transition.Source {
	if v, ok := s.(Viewer); ok {
		return v.View()
	}
	return s
}

func (r *Runner) Run(ctx context.Context) error {
	if r.Frames <= 0 {
		return fmt.Errorf("no frames to render")
	}

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > r.Frames {
		workers = r.Frames
	}

	jobs := make(chan int, r.Frames)
	for pos := 0; pos < r.Frames; pos++ {
		jobs <- pos
	}
	close(jobs)

	results := make(chan rendered, workers)

	g, ctx := errgroup.WithContext(ctx)

	var renderers sync.WaitGroup
	for w := 0; w < workers; w++ {
		bg := view(r.Background)
		overlay := r.Overlay
		if overlay != nil {
			overlay = view(overlay)
		}
		renderers.Add(1)
		g.Go(func() error {
			defer renderers.Done()
			for pos := range jobs {
				frame, err := r.Transition.Process(bg, overlay, pos)
				if err != nil {
					return fmt.Errorf("frame %d: %w", pos, err)
				}
				select {
				case results <- rendered{pos: pos, frame: frame}:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}
	go func() {
		renderers.Wait()
		close(results)
	}()

	g.Go(func() error {
		pending := make(map[int]*yuv.Frame)
		next := 0
		for res := range results {
			pending[res.pos] = res.frame
			for {
				frame, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				if err := r.Sink.WriteFrame(frame); err != nil {
					return fmt.Errorf("write frame %d: %w", next, err)
				}
				system.PutFrame(frame)
				next++
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	return r.Sink.Close()
}
