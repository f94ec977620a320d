package ffmpeg

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"slidecast/pkg/util"
)

// Concat joins ordered clips into one file by stream copy. All inputs must
// share the common encoding profile; line order in the manifest is the final
// video order.
func (e *Executor) Concat(ctx context.Context, opts ConcatOptions) error {
	if len(opts.Inputs) == 0 {
		return fmt.Errorf("no input files provided")
	}
	if opts.Output == "" {
		return fmt.Errorf("output path is required")
	}
	if opts.ManifestPath == "" {
		return fmt.Errorf("manifest path is required")
	}

	e.logger.Info().
		Int("inputs", len(opts.Inputs)).
		Str("output", opts.Output).
		Msg("concatenating clips")

	for _, input := range opts.Inputs {
		if !util.FileExists(input) {
			return fmt.Errorf("concat input missing: %s", input)
		}
	}

	if err := writeManifest(opts.ManifestPath, opts.Inputs); err != nil {
		return fmt.Errorf("failed to write concat manifest: %w", err)
	}

	runOpts := RunOptions{
		Args: []string{
			"-f", "concat",
			"-safe", "0",
			"-i", opts.ManifestPath,
			"-c", "copy",
			opts.Output,
		},
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("concat")
		},
	}

	if err := e.Run(ctx, runOpts); err != nil {
		return fmt.Errorf("concat failed: %w", err)
	}

	e.logger.Info().Str("output", opts.Output).Msg("concat complete")
	return nil
}

// writeManifest writes the concat demuxer file list atomically, one clip per
// line, in presentation order.
func writeManifest(path string, inputs []string) error {
	var sb strings.Builder
	for _, input := range inputs {
		absPath, err := filepath.Abs(input)
		if err != nil {
			return err
		}
		fmt.Fprintf(&sb, "file '%s'\n", absPath)
	}
	return util.WriteFileAtomic(path, []byte(sb.String()))
}
