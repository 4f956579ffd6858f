package audio

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	resampling "github.com/tphakala/go-audio-resampling"

	"ttsprep/internal/fileutil"
)

const (
	wavFormatPCM   = 1
	outputBitDepth = 16
)

// NativeConverter decodes PCM WAV files and writes 16-bit PCM WAV at Target.
type NativeConverter struct {
	Target Format
}

// Convert implements Converter.
func (c NativeConverter) Convert(ctx context.Context, src, dst string) error {
	samples, format, bitDepth, err := decode(src)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if format == c.Target && bitDepth == outputBitDepth {
		if err := fileutil.CopyFile(src, dst); err != nil {
			_ = fileutil.RemoveIfExists(dst)
			return fmt.Errorf("copy %s: %w", src, err)
		}
		return nil
	}
	mono := downmix(samples, format.Channels)
	out, err := resample(mono, format.SampleRate, c.Target.SampleRate)
	if err != nil {
		return fmt.Errorf("resample %s: %w", src, err)
	}
	if err := encode(dst, out, c.Target.SampleRate); err != nil {
		_ = fileutil.RemoveIfExists(dst)
		return err
	}
	return nil
}

// decode reads a PCM WAV file and returns its samples scaled to [-1, 1],
// interleaved by channel.
func decode(path string) ([]float64, Format, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Format{}, 0, err
	}
	defer file.Close()

	dec := wav.NewDecoder(file)
	if !dec.IsValidFile() {
		return nil, Format{}, 0, fmt.Errorf("%s: %w: not a valid wav file", path, ErrUnsupportedFormat)
	}
	if dec.WavAudioFormat != wavFormatPCM {
		return nil, Format{}, 0, fmt.Errorf("%s: %w: wav encoding %d", path, ErrUnsupportedFormat, dec.WavAudioFormat)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, Format{}, 0, fmt.Errorf("decode %s: %w", path, err)
	}
	if buf.Format == nil || buf.Format.NumChannels < 1 || buf.Format.SampleRate < 1 {
		return nil, Format{}, 0, fmt.Errorf("%s: %w: missing format chunk", path, ErrUnsupportedFormat)
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth == 0 {
		bitDepth = buf.SourceBitDepth
	}
	if bitDepth < 8 || bitDepth > 32 {
		return nil, Format{}, 0, fmt.Errorf("%s: %w: %d-bit samples", path, ErrUnsupportedFormat, bitDepth)
	}

	samples := make([]float64, len(buf.Data))
	scale := float64(int64(1) << (bitDepth - 1))
	for i, v := range buf.Data {
		if bitDepth == 8 {
			// 8-bit WAV is unsigned.
			v -= 128
		}
		samples[i] = float64(v) / scale
	}
	return samples, Format{SampleRate: buf.Format.SampleRate, Channels: buf.Format.NumChannels}, bitDepth, nil
}

// downmix averages interleaved channels into one.
func downmix(samples []float64, channels int) []float64 {
	if channels <= 1 {
		return samples
	}
	frames := len(samples) / channels
	out := make([]float64, frames)
	for f := 0; f < frames; f++ {
		var sum float64
		base := f * channels
		for c := 0; c < channels; c++ {
			sum += samples[base+c]
		}
		out[f] = sum / float64(channels)
	}
	return out
}

func resample(samples []float64, from, to int) ([]float64, error) {
	if from == to || len(samples) == 0 {
		return samples, nil
	}
	r, err := resampling.New(&resampling.Config{
		InputRate:  float64(from),
		OutputRate: float64(to),
		Channels:   1,
		Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
	})
	if err != nil {
		return nil, fmt.Errorf("create resampler: %w", err)
	}
	// Trailing silence pushes the last input frames through every filter
	// stage; the flush alone does not drain intermediate stages.
	padded := append(samples[:len(samples):len(samples)], make([]float64, from/10)...)
	out, err := r.Process(padded)
	if err != nil {
		return nil, err
	}
	tail, err := r.Flush()
	if err != nil {
		return nil, fmt.Errorf("flush resampler: %w", err)
	}
	return fitLength(append(out, tail...), resampledLength(len(samples), from, to)), nil
}

// resampledLength is the frame count n input frames occupy at the new rate.
func resampledLength(n, from, to int) int {
	return int((int64(n)*int64(to) + int64(from)/2) / int64(from))
}

// fitLength trims the zero-padded filter tail, or pads a short flush, so the
// output lasts exactly as long as the input.
func fitLength(samples []float64, n int) []float64 {
	if len(samples) >= n {
		return samples[:n]
	}
	return append(samples, make([]float64, n-len(samples))...)
}

func encode(path string, samples []float64, sampleRate int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	data := make([]int, len(samples))
	for i, s := range samples {
		switch {
		case s > 1.0:
			data[i] = 32767
		case s < -1.0:
			data[i] = -32768
		default:
			data[i] = int(s * 32767.0)
		}
	}

	enc := wav.NewEncoder(file, sampleRate, outputBitDepth, 1, 1)
	buf := &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{SampleRate: sampleRate, NumChannels: 1},
		SourceBitDepth: outputBitDepth,
	}
	writeErr := enc.Write(buf)
	closeErr := enc.Close()
	fileErr := file.Close()
	if err := errors.Join(writeErr, closeErr, fileErr); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
