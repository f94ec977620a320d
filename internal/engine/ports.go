package engine

import (
	"context"
	"time"

	"slidecast/internal/ffmpeg"
)

// Media is the subset of the media engine the pipeline drives. The ffmpeg
// Executor satisfies it; tests substitute a fake so orchestration logic can
// be exercised without binaries.
type Media interface {
	ProbeDuration(ctx context.Context, path string) (time.Duration, error)
	RenderSlide(ctx context.Context, opts ffmpeg.SlideOptions) error
	Concat(ctx context.Context, opts ffmpeg.ConcatOptions) error
	MixMusic(ctx context.Context, opts ffmpeg.MixOptions) error
	BurnTitle(ctx context.Context, opts ffmpeg.TitleOptions) error
}
