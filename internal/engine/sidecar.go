package engine

import (
	"encoding/json"
	"strings"
	"time"

	"slidecast/pkg/util"
)

// sidecar is the JSON document written beside the final artifact, read by
// external listing endpoints. Write-only from the engine's perspective.
type sidecar struct {
	JobID         string    `json:"job_id"`
	Width         int       `json:"width"`
	Height        int       `json:"height"`
	DurationSecs  float64   `json:"duration_secs"`
	Title         string    `json:"title,omitempty"`
	SegmentCount  int       `json:"segment_count"`
	NarratedCount int       `json:"narrated_count"`
	HasMusic      bool      `json:"has_music"`
	OutputPath    string    `json:"output_path"`
	MusicPath     string    `json:"music_path,omitempty"`
	TitledPath    string    `json:"titled_path,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	CompletedAt   time.Time `json:"completed_at"`
}

func writeSidecar(result *Result, job *JobConfig, startedAt time.Time) error {
	narrated := 0
	for _, seg := range job.Segments {
		if seg.AudioPath != "" {
			narrated++
		}
	}

	doc := sidecar{
		JobID:         result.JobID,
		Width:         job.Resolution.Width,
		Height:        job.Resolution.Height,
		DurationSecs:  result.TotalDuration.Seconds(),
		Title:         job.Title,
		SegmentCount:  len(job.Segments),
		NarratedCount: narrated,
		HasMusic:      result.MusicPath != "",
		OutputPath:    result.OutputPath,
		MusicPath:     result.MusicPath,
		TitledPath:    result.TitledPath,
		CreatedAt:     startedAt,
		CompletedAt:   result.CompletedAt,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return util.WriteFileAtomic(sidecarPath(result.OutputPath), data)
}

// sidecarPath derives the sidecar file name from the final artifact path.
func sidecarPath(outputPath string) string {
	if idx := strings.LastIndex(outputPath, "."); idx > strings.LastIndexAny(outputPath, `/\`) {
		return outputPath[:idx] + ".json"
	}
	return outputPath + ".json"
}
