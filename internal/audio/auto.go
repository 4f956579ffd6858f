package audio

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// AutoConverter decodes .wav sources natively and hands everything else,
// including WAV encodings the native decoder rejects, to ffmpeg.
type AutoConverter struct {
	Native NativeConverter
	FFmpeg FFmpegConverter
}

// Convert implements Converter.
func (c AutoConverter) Convert(ctx context.Context, src, dst string) error {
	if !strings.EqualFold(filepath.Ext(src), ".wav") {
		return c.FFmpeg.Convert(ctx, src, dst)
	}
	err := c.Native.Convert(ctx, src, dst)
	if err == nil || !errors.Is(err, ErrUnsupportedFormat) {
		return err
	}
	if !c.FFmpeg.Available() {
		return fmt.Errorf("%w (%w)", err, ErrFFmpegUnavailable)
	}
	return c.FFmpeg.Convert(ctx, src, dst)
}
