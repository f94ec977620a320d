package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"slidecast/internal/config"
	"slidecast/internal/effects"
	"slidecast/internal/ffmpeg"
	"slidecast/pkg/util"
)

// Engine composes slideshow jobs. One Engine may serve concurrent Generate
// calls: jobs share no mutable state as long as each is given its own
// OutputDir, which is the caller's responsibility.
type Engine struct {
	logger   zerolog.Logger
	media    Media
	cfg      *config.Config
	validate *validator.Validate
}

// New creates an engine around a media backend.
func New(logger zerolog.Logger, media Media, cfg *config.Config) *Engine {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &Engine{
		logger:   logger.With().Str("component", "engine").Logger(),
		media:    media,
		cfg:      cfg,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Generate runs one complete slideshow job: validate, render every segment
// in order, concatenate, optionally mix music and burn a title, write the
// metadata sidecar, then clean up intermediates. Fatal errors come back both
// in Result.Err and as the returned error; non-fatal mix/title failures are
// captured on a still-successful Result.
func (e *Engine) Generate(ctx context.Context, job JobConfig) (*Result, error) {
	jobID := uuid.New().String()
	result := &Result{JobID: jobID}

	logger := e.logger.With().Str("job", jobID).Logger()
	startedAt := time.Now().UTC()

	if t := e.cfg.FFmpeg.TimeoutSecs; t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(t)*time.Second)
		defer cancel()
	}

	if err := e.validateJob(&job); err != nil {
		result.Err = err
		logger.Error().Err(err).Msg("job rejected")
		return result, err
	}
	normalizeJob(&job)

	logger.Info().
		Int("segments", len(job.Segments)).
		Int("width", job.Resolution.Width).
		Int("height", job.Resolution.Height).
		Str("output", job.FinalOutputPath).
		Msg("starting slideshow job")

	for _, dir := range []string{job.OutputDir, filepath.Dir(job.FinalOutputPath)} {
		if err := util.EnsureDir(dir); err != nil {
			cfgErr := &ConfigError{Reason: "output directory not writable", Err: err}
			result.Err = cfgErr
			return result, cfgErr
		}
	}

	state := &jobState{
		manifestPath: filepath.Join(job.OutputDir, "concat.txt"),
	}

	if err := e.assembleTimeline(ctx, &job, state, logger); err != nil {
		result.Err = err
		logger.Error().Err(err).Msg("timeline assembly failed")
		return result, err
	}

	for _, d := range state.durations {
		result.TotalDuration += d
	}

	if err := e.media.Concat(ctx, ffmpeg.ConcatOptions{
		Inputs:       state.clipPaths,
		ManifestPath: state.manifestPath,
		Output:       job.FinalOutputPath,
	}); err != nil {
		concatErr := &ConcatError{Err: err}
		result.Err = concatErr
		logger.Error().Err(concatErr).Msg("concat failed")
		return result, concatErr
	}
	result.OutputPath = job.FinalOutputPath

	if job.BackgroundMusicPath != "" {
		musicOut := filepath.Join(job.OutputDir, defaultMusicName)
		if err := e.media.MixMusic(ctx, ffmpeg.MixOptions{
			VideoPath: job.FinalOutputPath,
			MusicPath: job.BackgroundMusicPath,
			Volume:    job.BackgroundMusicVolume,
			Output:    musicOut,
		}); err != nil {
			result.MixErr = &MixError{Err: err}
			logger.Warn().Err(err).Msg("music mix failed, narration-only output stands")
		} else {
			result.MusicPath = musicOut
		}
	}

	if job.Title != "" || job.Subtitle != "" {
		if err := e.media.BurnTitle(ctx, ffmpeg.TitleOptions{
			VideoPath: job.FinalOutputPath,
			Title:     job.Title,
			Subtitle:  job.Subtitle,
			FontName:  e.cfg.Subtitles.FontName,
			Width:     job.Resolution.Width,
			Height:    job.Resolution.Height,
			CRF:       e.cfg.Render.CRF,
			Preset:    e.cfg.Render.Preset,
			Output:    job.FinalWithTitlePath,
		}); err != nil {
			result.TitleErr = &TitleError{Err: err}
			logger.Warn().Err(err).Msg("title burn failed, uncaptioned output stands")
		} else {
			result.TitledPath = job.FinalWithTitlePath
		}
	}

	result.Success = true
	result.CompletedAt = time.Now().UTC()

	if err := writeSidecar(result, &job, startedAt); err != nil {
		logger.Warn().Err(err).Msg("sidecar write failed")
	}

	if job.CleanupIntermediates {
		e.cleanup(state, &job, result, logger)
	}

	logger.Info().
		Dur("total_duration", result.TotalDuration).
		Str("output", result.OutputPath).
		Msg("slideshow job complete")

	return result, nil
}

// validateJob applies struct validation plus the cross-field rules the tags
// cannot express.
func (e *Engine) validateJob(job *JobConfig) error {
	if err := e.validate.Struct(job); err != nil {
		return &ConfigError{Reason: "validation failed", Err: err}
	}
	if job.DefaultSegmentDuration == 0 {
		for i, seg := range job.Segments {
			if seg.AudioPath == "" {
				return &ConfigError{
					Reason: fmt.Sprintf("segment %d has no narration and no default duration is set", i),
				}
			}
		}
	}
	return nil
}

// normalizeJob fills the documented defaults on a validated job. A zero
// DefaultSegmentDuration stays zero: validation has already guaranteed every
// segment carries narration in that case, so it is never read.
func normalizeJob(job *JobConfig) {
	if job.BackgroundMusicPath != "" && job.BackgroundMusicVolume == 0 {
		job.BackgroundMusicVolume = defaultMusicVolume
	}
	if job.FinalOutputPath == "" {
		job.FinalOutputPath = filepath.Join(job.OutputDir, defaultOutputName)
	}
	if job.FinalWithTitlePath == "" {
		job.FinalWithTitlePath = filepath.Join(job.OutputDir, defaultTitledName)
	}
	if job.FillColor == "" {
		job.FillColor = "black"
	}
}

// planConfig merges app config into the planner knobs for one job.
func (e *Engine) planConfig(job *JobConfig) effects.PlanConfig {
	cfg := effects.DefaultPlanConfig()
	if e.cfg.Render.FPS > 0 {
		cfg.FPS = e.cfg.Render.FPS
	}
	if e.cfg.Render.FadeSecs > 0 {
		cfg.FadeWindow = e.cfg.Render.FadeSecs
	}
	if e.cfg.Render.MaxKenBurns > 1 {
		cfg.MaxZoom = e.cfg.Render.MaxKenBurns
	}
	if e.cfg.Subtitles.FontName != "" {
		cfg.FontName = e.cfg.Subtitles.FontName
	}
	if e.cfg.Subtitles.BoxAlpha > 0 {
		cfg.BoxAlpha = e.cfg.Subtitles.BoxAlpha
	}
	cfg.FillColor = job.FillColor
	return cfg
}
