package audio

import (
	"context"
	"errors"

	"ttsprep/internal/config"
	"ttsprep/internal/deps"
)

var (
	// ErrFFmpegUnavailable indicates a conversion needed ffmpeg but the
	// binary could not be found.
	ErrFFmpegUnavailable = errors.New("ffmpeg unavailable")
	// ErrUnsupportedFormat indicates a WAV file the native decoder cannot read.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

// Format describes a PCM stream.
type Format struct {
	SampleRate int
	Channels   int
}

// Target returns the mono output format at sampleRate.
func Target(sampleRate int) Format {
	return Format{SampleRate: sampleRate, Channels: 1}
}

// Converter writes a copy of src to dst in its target format.
type Converter interface {
	Convert(ctx context.Context, src, dst string) error
}

// New builds the converter selected by cfg.Decoder. ffmpeg is resolved the
// way the deps check reports it: a binary next to the executable at selfPath
// wins over PATH.
func New(cfg config.Audio, selfPath string) Converter {
	target := Target(cfg.SampleRate)
	native := NativeConverter{Target: target}
	ffmpeg := FFmpegConverter{Binary: cfg.FFmpegBinary, Target: target}
	if st := deps.ResolveFFmpeg(cfg.FFmpegBinary, selfPath); st.Available {
		ffmpeg.Binary = st.Command
	}
	switch cfg.Decoder {
	case config.DecoderNative:
		return native
	case config.DecoderFFmpeg:
		return ffmpeg
	default:
		return AutoConverter{Native: native, FFmpeg: ffmpeg}
	}
}
