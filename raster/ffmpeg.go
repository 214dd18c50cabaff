package raster

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os/exec"
	"strconv"

	"github.com/matt-g-everett/framecast/scene"
)

// FFmpeg pipes PNG frames into an ffmpeg process that encodes Path.
type FFmpeg struct {
	Path   string
	Raster *Rasterizer

	// Binary defaults to "ffmpeg", Codec to libx264 and PixFmt to yuv420p.
	Binary string
	Codec  string
	PixFmt string
	// Flags are extra output options placed before the output path.
	Flags []string
	// StderrLines of ffmpeg output are kept for error reports; zero means 100.
	StderrLines int
	// Context, when set, kills ffmpeg once it is done.
	Context context.Context
	Logger  *slog.Logger

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr *lastLines
	enc    png.Encoder
}

func (f *FFmpeg) binary() string {
	if f.Binary != "" {
		return f.Binary
	}
	return "ffmpeg"
}

// Args returns the ffmpeg arguments used for a contract.
func (f *FFmpeg) Args(c scene.Contract) []string {
	codec, pixFmt := f.Codec, f.PixFmt
	if codec == "" {
		codec = "libx264"
	}
	if pixFmt == "" {
		pixFmt = "yuv420p"
	}
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-y",
		"-f", "image2pipe",
		"-framerate", strconv.Itoa(c.FPS),
		"-c:v", "png",
		"-i", "pipe:0",
		"-c:v", codec,
		"-pix_fmt", pixFmt,
		"-r", strconv.Itoa(c.FPS),
	}
	args = append(args, f.Flags...)
	return append(args, f.Path)
}

func (f *FFmpeg) Begin(c scene.Contract) error {
	if f.Path == "" {
		return errors.New("ffmpeg: no output path")
	}
	if f.Context != nil {
		f.cmd = exec.CommandContext(f.Context, f.binary(), f.Args(c)...)
	} else {
		f.cmd = exec.Command(f.binary(), f.Args(c)...)
	}
	lines := f.StderrLines
	if lines == 0 {
		lines = 100
	}
	f.stderr = newLastLines(lines)
	f.cmd.Stderr = f.stderr
	f.enc = png.Encoder{CompressionLevel: png.BestSpeed}

	stdin, err := f.cmd.StdinPipe()
	if err != nil {
		return err
	}
	f.stdin = stdin
	if f.Logger != nil {
		f.Logger.Debug("starting encoder", "binary", f.binary(), "args", f.cmd.Args[1:])
	}
	if err := f.cmd.Start(); err != nil {
		stdin.Close()
		return fmt.Errorf("ffmpeg: %w", err)
	}
	if err := f.Raster.Begin(c); err != nil {
		f.stdin.Close()
		f.cmd.Wait()
		return err
	}
	return nil
}

func (f *FFmpeg) WriteFrame(index int, prims []scene.Primitive) error {
	if err := f.Raster.WriteFrame(index, prims); err != nil {
		return err
	}
	if err := f.enc.Encode(f.stdin, f.Raster.Image()); err != nil {
		return fmt.Errorf("ffmpeg: %w: %s", err, f.stderr)
	}
	return nil
}

// End closes the frame pipe and waits for the encoder to finish.
func (f *FFmpeg) End() error {
	rerr := f.Raster.End()
	if f.cmd == nil {
		return rerr
	}
	cerr := f.stdin.Close()
	if err := f.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg: %w: %s", err, f.stderr)
	}
	return errors.Join(rerr, cerr)
}

func (f *FFmpeg) OutputPath() string {
	return f.Path
}
