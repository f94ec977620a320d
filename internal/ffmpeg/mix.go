package ffmpeg

import (
	"context"
	"fmt"
)

// MixMusic overlays background music onto the video's narration track. The
// video stream is copied untouched; narration stays at full volume and the
// music is scaled by opts.Volume. duration=first plus -shortest bounds the
// result to the video length, so music never extends the output.
func (e *Executor) MixMusic(ctx context.Context, opts MixOptions) error {
	if opts.VideoPath == "" || opts.MusicPath == "" {
		return fmt.Errorf("video and music paths are required")
	}
	if opts.Output == "" {
		return fmt.Errorf("output path is required")
	}
	if opts.Volume < 0 || opts.Volume > 1 {
		return fmt.Errorf("music volume must be in [0,1], got %f", opts.Volume)
	}

	e.logger.Info().
		Str("video", opts.VideoPath).
		Str("music", opts.MusicPath).
		Float64("volume", opts.Volume).
		Msg("mixing background music")

	filter := fmt.Sprintf(
		"[1:a]volume=%.3f[music];[0:a][music]amix=inputs=2:duration=first:dropout_transition=0[mixed]",
		opts.Volume)

	runOpts := RunOptions{
		Args: []string{
			"-i", opts.VideoPath,
			"-i", opts.MusicPath,
			"-filter_complex", filter,
			"-map", "0:v",
			"-map", "[mixed]",
			"-c:v", "copy",
			"-c:a", DefaultAudioCodec,
			"-ar", fmt.Sprintf("%d", AudioSampleRate),
			"-shortest",
			opts.Output,
		},
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("music mix")
		},
	}

	if err := e.Run(ctx, runOpts); err != nil {
		return fmt.Errorf("music mix failed: %w", err)
	}

	e.logger.Info().Str("output", opts.Output).Msg("music mix complete")
	return nil
}
