// Package video delivers composited frames to their final destination:
// an ffmpeg encode or a raw packed-4:2:2 file.
package video

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/osokin/composite/internal/yuv"
)

// FFmpegSink pipes packed 4:2:2 frames into an ffmpeg child process as
// yuyv422 rawvideo. Frames must all have the size the sink was opened
// with.
type FFmpegSink struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	out   bytes.Buffer
	w, h  int
}

func NewFFmpegSink(path string, w, h, fps int, encoderName string, quality int) (*FFmpegSink, error) {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "yuyv422",
		"-video_size", fmt.Sprintf("%dx%d", w, h),
		"-framerate", fmt.Sprintf("%d", fps),
		"-i", "-",
		"-pix_fmt", "yuv420p",
		"-c:v", encoderName,
	}

	switch encoderName {
	case "h264_videotoolbox":
		bitrate := quality * 100
		args = append(args, "-b:v", fmt.Sprintf("%dk", bitrate))
	case "h264_nvenc":
		args = append(args, "-cq", fmt.Sprintf("%d", quality))
	default: // libx264
		args = append(args, "-crf", fmt.Sprintf("%d", quality), "-preset", "medium")
	}

	args = append(args, path)

	s := &FFmpegSink{
		cmd: exec.Command("ffmpeg", args...),
		w:   w,
		h:   h,
	}
	s.cmd.Stdout = &s.out
	s.cmd.Stderr = &s.out

	stdin, err := s.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe error: %w", err)
	}
	s.stdin = stdin

	if err := s.cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}
	return s, nil
}

func (s *FFmpegSink) WriteFrame(f *yuv.Frame) error {
	if f.W != s.w || f.H != s.h {
		return fmt.Errorf("frame size %dx%d does not match sink %dx%d", f.W, f.H, s.w, s.h)
	}
	_, err := s.stdin.Write(f.Pix)
	return err
}

func (s *FFmpegSink) Close() error {
	s.stdin.Close()
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %v, output: %s", err, s.out.String())
	}
	return nil
}

// RawSink appends frames verbatim to a file, for inspection with tools
// that read raw yuyv422 data.
type RawSink struct {
	f *os.File
}

func NewRawSink(path string) (*RawSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &RawSink{f: f}, nil
}

func (s *RawSink) WriteFrame(f *yuv.Frame) error {
	_, err := s.f.Write(f.Pix)
	return err
}

func (s *RawSink) Close() error {
	return s.f.Close()
}
