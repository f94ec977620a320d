package config

import (
	"context"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type contextKey string

const configKey contextKey = "config"

// Config holds all application configuration
type Config struct {
	// Core settings
	WorkDir string `yaml:"work_dir"`

	// FFmpeg settings
	FFmpeg FFmpegConfig `yaml:"ffmpeg"`

	// Render settings applied to every job
	Render RenderConfig `yaml:"render"`

	// Subtitle settings
	Subtitles SubtitleConfig `yaml:"subtitles"`
}

type FFmpegConfig struct {
	BinaryPath  string `yaml:"binary_path"`
	ProbePath   string `yaml:"probe_path"`
	Threads     int    `yaml:"threads"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

type RenderConfig struct {
	FPS         int     `yaml:"fps"`
	CRF         int     `yaml:"crf"`
	Preset      string  `yaml:"preset"`
	FadeSecs    float64 `yaml:"fade_secs"`
	MaxKenBurns float64 `yaml:"max_ken_burns_zoom"`
}

type SubtitleConfig struct {
	FontName string  `yaml:"font_name"`
	BoxAlpha float64 `yaml:"box_alpha"`
}

// Load reads configuration from file or returns defaults. A .env file in the
// working directory is applied first so environment overrides work the same
// way in development and under a supervisor.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path == "" {
		path = findConfigFile()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// Save writes configuration to file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func defaultConfig() *Config {
	return &Config{
		WorkDir: "./work",
		FFmpeg: FFmpegConfig{
			BinaryPath:  "ffmpeg",
			ProbePath:   "ffprobe",
			Threads:     0,
			TimeoutSecs: 0,
		},
		Render: RenderConfig{
			FPS:         30,
			CRF:         23,
			Preset:      "veryfast",
			FadeSecs:    1.0,
			MaxKenBurns: 1.04,
		},
		Subtitles: SubtitleConfig{
			FontName: "Arial",
			BoxAlpha: 0.5,
		},
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SLIDECAST_FFMPEG"); v != "" {
		cfg.FFmpeg.BinaryPath = v
	}
	if v := os.Getenv("SLIDECAST_FFPROBE"); v != "" {
		cfg.FFmpeg.ProbePath = v
	}
	if v := os.Getenv("SLIDECAST_THREADS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.FFmpeg.Threads = n
		}
	}
	if v := os.Getenv("SLIDECAST_WORK_DIR"); v != "" {
		cfg.WorkDir = v
	}
}

func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		"./config.yml",
		filepath.Join(os.Getenv("HOME"), ".slidecast", "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// WithConfig stores config in context
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from context
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey).(*Config); ok {
		return cfg
	}
	return defaultConfig()
}
