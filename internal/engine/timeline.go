package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"slidecast/internal/effects"
	"slidecast/internal/ffmpeg"
	"slidecast/pkg/util"
)

// assembleTimeline renders every segment strictly in input order, appending
// each produced clip path to the job state. Rendering is deliberately
// sequential: the external engine saturates the machine per invocation, and
// a failure maps unambiguously to one segment index. The first error aborts
// the remaining segments.
func (e *Engine) assembleTimeline(ctx context.Context, job *JobConfig, state *jobState, logger zerolog.Logger) error {
	planCfg := e.planConfig(job)

	for i, seg := range job.Segments {
		if err := ctx.Err(); err != nil {
			return &RenderError{Index: i, Err: err}
		}

		duration, err := e.segmentDuration(ctx, &seg, job)
		if err != nil {
			return err
		}

		animated := animatedExtensions[util.GetExtension(seg.ImagePath)]
		chain := effects.Plan(seg.Effects, job.Resolution, animated, duration.Seconds(), planCfg)

		clipPath := filepath.Join(job.OutputDir, fmt.Sprintf("video_%d.mp4", i))

		logger.Debug().
			Int("segment", i).
			Dur("duration", duration).
			Bool("animated", animated).
			Int("filters", len(chain)).
			Msg("rendering segment")

		if err := e.media.RenderSlide(ctx, ffmpeg.SlideOptions{
			ImagePath: seg.ImagePath,
			AudioPath: seg.AudioPath,
			Animated:  animated,
			Duration:  duration,
			Filters:   chain,
			FPS:       e.cfg.Render.FPS,
			CRF:       e.cfg.Render.CRF,
			Preset:    e.cfg.Render.Preset,
			Output:    clipPath,
		}); err != nil {
			return &RenderError{Index: i, Err: err}
		}

		state.clipPaths = append(state.clipPaths, clipPath)
		state.durations = append(state.durations, duration)
	}

	return nil
}

// segmentDuration resolves a segment's effective duration: the narration
// length when audio is present, the job default otherwise.
func (e *Engine) segmentDuration(ctx context.Context, seg *Segment, job *JobConfig) (time.Duration, error) {
	if seg.AudioPath == "" {
		return time.Duration(job.DefaultSegmentDuration * float64(time.Second)), nil
	}
	d, err := e.media.ProbeDuration(ctx, seg.AudioPath)
	if err != nil {
		return 0, &ProbeError{Path: seg.AudioPath, Err: err}
	}
	if d <= 0 {
		return 0, &ProbeError{Path: seg.AudioPath, Err: fmt.Errorf("no duration reported")}
	}
	return d, nil
}
