package engine

import (
	"time"

	"slidecast/internal/effects"
)

// Segment is one slide of the output: an image, optional narration audio,
// and declarative edit options. Segment order in the job is final video order.
type Segment struct {
	ImagePath string          `yaml:"image" json:"image" validate:"required"`
	AudioPath string          `yaml:"audio" json:"audio,omitempty"`
	Effects   effects.Effects `yaml:"effects" json:"effects"`
}

// JobConfig describes one complete slideshow job. It is constructed once by
// the caller and never mutated by the engine.
type JobConfig struct {
	Segments               []Segment          `yaml:"segments" json:"segments" validate:"required,min=1,dive"`
	Resolution             effects.Resolution `yaml:"resolution" json:"resolution" validate:"required"`
	DefaultSegmentDuration float64            `yaml:"default_segment_duration" json:"default_segment_duration" validate:"gte=0"` // seconds, used when a segment has no narration
	BackgroundMusicPath    string             `yaml:"background_music" json:"background_music,omitempty"`
	BackgroundMusicVolume  float64            `yaml:"background_music_volume" json:"background_music_volume" validate:"gte=0,lte=1"`
	Title                  string             `yaml:"title" json:"title,omitempty"`
	Subtitle               string             `yaml:"subtitle" json:"subtitle,omitempty"`
	FillColor              string             `yaml:"fill_color" json:"fill_color,omitempty"`
	CleanupIntermediates   bool               `yaml:"cleanup_intermediates" json:"cleanup_intermediates"`
	RemoveSources          bool               `yaml:"remove_sources" json:"remove_sources"`
	OutputDir              string             `yaml:"output_dir" json:"output_dir" validate:"required"`
	FinalOutputPath        string             `yaml:"final_output" json:"final_output,omitempty"`
	FinalWithTitlePath     string             `yaml:"final_with_title" json:"final_with_title,omitempty"`
}

// Result is the aggregate outcome of one Generate call. MixErr and TitleErr
// record non-fatal failures of the optional artifacts: the job still counts
// as a success and the caller inspects which paths are present.
type Result struct {
	JobID         string
	Success       bool
	OutputPath    string
	MusicPath     string
	TitledPath    string
	TotalDuration time.Duration
	MixErr        error
	TitleErr      error
	Err           error
	CompletedAt   time.Time
}

// jobState is the mutable per-job bookkeeping, owned exclusively by one
// Generate invocation and discarded when it returns.
type jobState struct {
	clipPaths    []string // append-only, segment order
	durations    []time.Duration
	manifestPath string
}

const (
	defaultMusicVolume = 0.3
	defaultOutputName  = "final.mp4"
	defaultMusicName   = "final_music.mp4"
	defaultTitledName  = "final_titled.mp4"
)

// animatedExtensions are image formats that carry their own motion; the Ken
// Burns zoompan is incompatible with them and is skipped.
var animatedExtensions = map[string]bool{
	".gif":  true,
	".apng": true,
	".webp": true,
}
