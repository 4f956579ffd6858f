// Package audio converts utterance recordings to the mono PCM WAV format the
// training pipeline consumes.
//
// NativeConverter handles PCM WAV sources in-process: it downmixes every
// channel to mono by averaging and resamples to the target rate.
// FFmpegConverter shells out to ffmpeg for anything else. AutoConverter
// routes between the two by file extension and falls back to ffmpeg for
// WAV encodings the native decoder rejects.
package audio
