package engine

import (
	"os"

	"github.com/rs/zerolog"
)

// cleanup deletes intermediate artifacts after a successful job. Each delete
// is independently best-effort: failures are logged and never surface to the
// caller. Final artifacts and the metadata sidecar are never touched.
func (e *Engine) cleanup(state *jobState, job *JobConfig, result *Result, logger zerolog.Logger) {
	keep := map[string]bool{
		result.OutputPath: true,
		result.MusicPath:  true,
		result.TitledPath: true,
	}

	targets := make([]string, 0, len(state.clipPaths)+1)
	targets = append(targets, state.clipPaths...)
	targets = append(targets, state.manifestPath)

	if job.RemoveSources {
		for _, seg := range job.Segments {
			targets = append(targets, seg.ImagePath)
			if seg.AudioPath != "" {
				targets = append(targets, seg.AudioPath)
			}
		}
	}

	for _, path := range targets {
		if path == "" || keep[path] {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Warn().Err(err).Str("path", path).Msg("cleanup delete failed")
		}
	}
}
