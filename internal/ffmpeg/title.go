package ffmpeg

import (
	"context"
	"fmt"
	"strings"

	"slidecast/internal/effects"
)

// BurnTitle burns a whole-video title and optional subtitle line into the
// pixels of a finished video. The video stream must re-encode; the audio is
// copied unchanged.
func (e *Executor) BurnTitle(ctx context.Context, opts TitleOptions) error {
	if opts.VideoPath == "" {
		return fmt.Errorf("video path is required")
	}
	if opts.Output == "" {
		return fmt.Errorf("output path is required")
	}
	if opts.Title == "" && opts.Subtitle == "" {
		return fmt.Errorf("title or subtitle text is required")
	}

	e.logger.Info().
		Str("video", opts.VideoPath).
		Str("title", opts.Title).
		Msg("burning title")

	res := effects.Resolution{Width: opts.Width, Height: opts.Height}
	chain := effects.TitleChain(opts.Title, opts.Subtitle, res, opts.FontName, 0.5)
	if len(chain) == 0 {
		return fmt.Errorf("empty title filter chain")
	}

	crf := opts.CRF
	if crf == 0 {
		crf = DefaultCRF
	}
	preset := opts.Preset
	if preset == "" {
		preset = DefaultPreset
	}

	runOpts := RunOptions{
		Args: []string{
			"-i", opts.VideoPath,
			"-vf", strings.Join(chain, ","),
			"-c:v", DefaultVideoCodec,
			"-crf", fmt.Sprintf("%d", crf),
			"-preset", preset,
			"-pix_fmt", DefaultPixFmt,
			"-c:a", "copy",
			opts.Output,
		},
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("title burn")
		},
	}

	if err := e.Run(ctx, runOpts); err != nil {
		return fmt.Errorf("title burn failed: %w", err)
	}

	e.logger.Info().Str("output", opts.Output).Msg("title burn complete")
	return nil
}
