package ffmpeg

import "time"

// MediaInfo contains metadata about a media file
type MediaInfo struct {
	FilePath   string
	Duration   time.Duration
	Width      int
	Height     int
	FPS        float64
	VideoCodec string
	HasAudio   bool
	AudioCodec string
}

// RunOptions configures one ffmpeg invocation
type RunOptions struct {
	Args       []string
	LogHandler func(line string)
}

// Every clip is encoded with the same profile so the concat step can
// stream-copy. Changing any of these requires re-encoding at concat time.
const (
	DefaultCRF        = 23
	DefaultPreset     = "veryfast"
	DefaultFPS        = 30
	DefaultVideoCodec = "libx264"
	DefaultAudioCodec = "aac"
	DefaultPixFmt     = "yuv420p"
	AudioSampleRate   = 44100
	AudioChannels     = 2
)

// SlideOptions describes one segment render: a single still or animated
// image, optional narration audio, and a precompiled filter chain.
type SlideOptions struct {
	ImagePath string
	AudioPath string // empty means silent narration track
	Animated  bool
	Duration  time.Duration
	Filters   []string
	FPS       int
	CRF       int
	Preset    string
	Output    string
}

// ConcatOptions joins ordered clips by stream copy
type ConcatOptions struct {
	Inputs       []string
	ManifestPath string
	Output       string
}

// MixOptions overlays background music onto an existing narration track
type MixOptions struct {
	VideoPath string
	MusicPath string
	Volume    float64
	Output    string
}

// TitleOptions burns a whole-video title and optional subtitle line
type TitleOptions struct {
	VideoPath string
	Title     string
	Subtitle  string
	FontName  string
	Width     int
	Height    int
	CRF       int
	Preset    string
	Output    string
}
