package audio

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// FFmpegConverter converts any input ffmpeg can decode.
type FFmpegConverter struct {
	Binary string
	Target Format
}

func (c FFmpegConverter) binary() string {
	if strings.TrimSpace(c.Binary) == "" {
		return "ffmpeg"
	}
	return c.Binary
}

// Available reports whether the ffmpeg binary resolves.
func (c FFmpegConverter) Available() bool {
	_, err := exec.LookPath(c.binary())
	return err == nil
}

// Convert implements Converter.
func (c FFmpegConverter) Convert(ctx context.Context, src, dst string) error {
	bin, err := exec.LookPath(c.binary())
	if err != nil {
		return fmt.Errorf("%w: %s", ErrFFmpegUnavailable, c.binary())
	}
	channels := c.Target.Channels
	if channels < 1 {
		channels = 1
	}
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", src,
		"-vn",
		"-sn",
		"-dn",
		"-ac", strconv.Itoa(channels),
		"-ar", strconv.Itoa(c.Target.SampleRate),
		"-c:a", "pcm_s16le",
		dst,
	}
	cmd := exec.CommandContext(ctx, bin, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg convert: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
