package config

const (
	defaultWorkDir       = "."
	defaultSelectionFile = "create_config.json"
	defaultWavsDir       = "wavs"
	defaultFeatureDir    = "train"
	defaultSampleRate    = 16000
	defaultWorkers       = 1
	defaultDecoder       = DecoderAuto
	defaultFFmpegBinary  = "ffmpeg"
	defaultHistoryPath   = ".ttsprep/history.db"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Decoder backends accepted by audio.decoder.
const (
	DecoderAuto   = "auto"
	DecoderNative = "native"
	DecoderFFmpeg = "ffmpeg"
)

var defaultStaleDirs = []string{"lin_spectrograms", "mel_spectrograms"}

var defaultCorpora = []string{
	"cherokee-audio-data-private/beginning-cherokee",
	"cherokee-audio-data-private/durbin-feeling",
	"cherokee-audio-data-private/thirteen-moons-disk1",
	"cherokee-audio-data-private/thirteen-moons-disk2",
	"cherokee-audio-data-private/thirteen-moons-disk3",
	"cherokee-audio-data-private/thirteen-moons-disk4",
	"cherokee-audio-data-private/thirteen-moons-disk5",

	"cherokee-audio-data/durbin-feeling-tones",
	"cherokee-audio-data/michael-conrad2",
	"cherokee-audio-data-private/sam-hider",
	"cherokee-audio-data/see-say-write",
	"cherokee-audio-data/cno",
	"cherokee-audio-data/walc-1",
	"cherokee-audio-data/wwacc",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir:       defaultWorkDir,
			SelectionFile: defaultSelectionFile,
			WavsDir:       defaultWavsDir,
			FeatureDir:    defaultFeatureDir,
			StaleDirs:     append([]string(nil), defaultStaleDirs...),
		},
		Corpora: Corpora{
			Dirs: append([]string(nil), defaultCorpora...),
		},
		Audio: Audio{
			SampleRate:   defaultSampleRate,
			Workers:      defaultWorkers,
			Decoder:      defaultDecoder,
			FFmpegBinary: defaultFFmpegBinary,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

// DefaultFFmpegBinary returns the ffmpeg command used when none is configured.
func DefaultFFmpegBinary() string {
	return defaultFFmpegBinary
}
