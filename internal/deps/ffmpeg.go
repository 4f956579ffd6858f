package deps

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"ttsprep/internal/config"
)

// Requirements lists the external binaries the configured pipeline uses.
// ffmpeg is optional unless the decoder is forced to ffmpeg.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{{
		Name:        "FFmpeg",
		Command:     cfg.Audio.FFmpegBinary,
		Description: "Converts non-WAV audio and WAV encodings the native decoder rejects",
		Optional:    cfg.Audio.Decoder != config.DecoderFFmpeg,
	}}
}

// Check reports the status of every requirement of cfg. selfPath is the
// running executable, used to find a bundled ffmpeg.
func Check(cfg *config.Config, selfPath string) []Status {
	reqs := Requirements(cfg)
	statuses := make([]Status, 0, len(reqs))
	for _, req := range reqs {
		st := ResolveFFmpeg(req.Command, selfPath)
		st.Description = req.Description
		st.Optional = req.Optional
		statuses = append(statuses, st)
	}
	return statuses
}

// ResolveFFmpeg reports the ffmpeg binary conversions will execute.
//
// An explicitly configured path or name is resolved as given. The bare
// default name first prefers an ffmpeg binary that sits next to the
// executable at selfPath, then falls back to PATH.
func ResolveFFmpeg(configured, selfPath string) Status {
	req := Requirement{
		Name:        "FFmpeg",
		Command:     strings.TrimSpace(configured),
		Description: "Audio conversion fallback",
	}
	if req.Command == "" {
		req.Command = config.DefaultFFmpegBinary()
	}

	if req.Command == config.DefaultFFmpegBinary() {
		if candidate, ok := sidecarCandidate(selfPath, req.Command); ok {
			if info, err := os.Stat(candidate); err == nil && isExecutable(info) {
				req.Command = candidate
				return Status{Requirement: req, Available: true}
			}
		}
	}

	return CheckBinaries([]Requirement{req})[0]
}

func sidecarCandidate(selfPath, name string) (string, bool) {
	if strings.TrimSpace(selfPath) == "" {
		return "", false
	}
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(filepath.Dir(selfPath), name), true
}

func isExecutable(info os.FileInfo) bool {
	if info == nil {
		return false
	}
	if info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
