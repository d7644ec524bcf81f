package engine

import (
	"context"
	"testing"

	"github.com/osokin/composite/internal/config"
	"github.com/osokin/composite/internal/geometry"
	"github.com/osokin/composite/internal/source"
	"github.com/osokin/composite/internal/transition"
	"github.com/osokin/composite/internal/yuv"
)

// memSink keeps copies of the frames it receives; the runner recycles the
// originals after writing.
type memSink struct {
	frames []*yuv.Frame
	closed bool
}

func (s *memSink) WriteFrame(f *yuv.Frame) error {
	s.frames = append(s.frames, f.Clone())
	return nil
}

func (s *memSink) Close() error {
	s.closed = true
	return nil
}

func testRunner(sink Sink, frames, workers int) *Runner {
	cfg := config.Transition{
		Start:   "0,0:100%x100%:100",
		Distort: true,
		Window:  geometry.Window{In: 0, Out: frames - 1},
	}
	return &Runner{
		Transition: transition.New(cfg, 16, 8, 1),
		Background: &source.Solid{W: 16, H: 8, Luma: 30, Chroma: 128},
		Overlay:    &source.Solid{W: 16, H: 8, Luma: 200, Chroma: 128},
		Sink:       sink,
		Frames:     frames,
		Workers:    workers,
	}
}

func TestRunnerRendersAllFrames(t *testing.T) {
	sink := &memSink{}
	r := testRunner(sink, 4, 2)

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(sink.frames) != 4 {
		t.Fatalf("expected 4 frames, got %d", len(sink.frames))
	}
	if !sink.closed {
		t.Error("the sink should be closed after the run")
	}

	for i, f := range sink.frames {
		if f.W != 16 || f.H != 8 {
			t.Fatalf("frame %d: expected 16x8, got %dx%d", i, f.W, f.H)
		}
		// Full-cover overlay at mix 100: every composited row carries
		// the overlay luma.
		if got := f.Row(4)[0]; got != 200 {
			t.Errorf("frame %d: expected overlay luma 200, got %d", i, got)
		}
	}
}

func TestRunnerWritesInOrder(t *testing.T) {
	sink := &memSink{}
	cfg := config.Transition{
		Start:   "0,0:100%x100%:0",
		End:     "0,0:100%x100%:100",
		Distort: true,
		Window:  geometry.Window{In: 0, Out: 3},
	}
	r := &Runner{
		Transition: transition.New(cfg, 16, 8, 1),
		Background: &source.Solid{W: 16, H: 8, Luma: 30, Chroma: 128},
		Overlay:    &source.Solid{W: 16, H: 8, Luma: 200, Chroma: 128},
		Sink:       sink,
		Frames:     4,
		Workers:    4,
	}

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// The mix animates 0..100 over the window, so each position blends to
	// a distinct luma; the sink must see them in presentation order no
	// matter which worker finishes first.
	expected := []byte{30, 72, 115, 157}
	if len(sink.frames) != len(expected) {
		t.Fatalf("expected %d frames, got %d", len(expected), len(sink.frames))
	}
	for i, f := range sink.frames {
		if got := f.Row(4)[0]; got != expected[i] {
			t.Errorf("frame %d: expected luma %d, got %d", i, expected[i], got)
		}
	}
}

func TestRunnerWithoutOverlay(t *testing.T) {
	sink := &memSink{}
	r := testRunner(sink, 2, 1)
	r.Overlay = nil

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for i, f := range sink.frames {
		if got := f.Row(0)[0]; got != 30 {
			t.Errorf("frame %d: expected background luma 30, got %d", i, got)
		}
	}
}

func TestRunnerRejectsEmptyRange(t *testing.T) {
	r := testRunner(&memSink{}, 0, 1)
	r.Frames = 0

	if err := r.Run(context.Background()); err == nil {
		t.Error("expected an error for an empty frame range")
	}
}
