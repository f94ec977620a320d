package ffmpeg

import (
	"context"
	"fmt"
	"strings"

	"slidecast/pkg/util"
)

// RenderSlide renders one segment clip: a looped still (or animated image)
// with the compiled filter chain, muxed with narration audio or a silent
// stand-in track. Every clip uses the shared encoding profile so the concat
// step can stream-copy.
func (e *Executor) RenderSlide(ctx context.Context, opts SlideOptions) error {
	if opts.ImagePath == "" {
		return fmt.Errorf("image path is required")
	}
	if opts.Output == "" {
		return fmt.Errorf("output path is required")
	}
	if opts.Duration <= 0 {
		return fmt.Errorf("duration must be positive")
	}

	e.logger.Info().
		Str("image", opts.ImagePath).
		Str("audio", opts.AudioPath).
		Dur("duration", opts.Duration).
		Str("output", opts.Output).
		Msg("rendering slide")

	runOpts := RunOptions{
		Args: slideArgs(opts),
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("slide render")
		},
	}

	if err := e.Run(ctx, runOpts); err != nil {
		return fmt.Errorf("slide render failed: %w", err)
	}

	e.logger.Info().Str("output", opts.Output).Msg("slide rendered")
	return nil
}

// slideArgs assembles the full argument list for one segment render.
func slideArgs(opts SlideOptions) []string {
	fps := opts.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	crf := opts.CRF
	if crf == 0 {
		crf = DefaultCRF
	}
	preset := opts.Preset
	if preset == "" {
		preset = DefaultPreset
	}

	var args []string

	// Input 0: image. Stills are looped at the target frame rate; animated
	// inputs loop their own frames.
	if opts.Animated {
		args = append(args, "-stream_loop", "-1", "-i", opts.ImagePath)
	} else {
		args = append(args, "-loop", "1", "-framerate", fmt.Sprintf("%d", fps), "-i", opts.ImagePath)
	}

	// Input 1: narration, or silence so every clip carries one audio
	// stream in the shared layout.
	if opts.AudioPath != "" {
		args = append(args, "-i", opts.AudioPath)
	} else {
		args = append(args, "-f", "lavfi",
			"-i", fmt.Sprintf("anullsrc=r=%d:cl=stereo", AudioSampleRate))
	}

	if len(opts.Filters) > 0 {
		args = append(args, "-vf", strings.Join(opts.Filters, ","))
	}

	args = append(args,
		"-map", "0:v",
		"-map", "1:a",
		"-c:v", DefaultVideoCodec,
		"-crf", fmt.Sprintf("%d", crf),
		"-preset", preset,
		"-pix_fmt", DefaultPixFmt,
		"-r", fmt.Sprintf("%d", fps),
		"-c:a", DefaultAudioCodec,
		"-ar", fmt.Sprintf("%d", AudioSampleRate),
		"-ac", fmt.Sprintf("%d", AudioChannels),
		"-t", util.FormatSeconds(opts.Duration),
		opts.Output,
	)

	return args
}
