package engine

import "fmt"

// ConfigError reports an invalid job configuration. It is raised before any
// engine invocation, so the caller can fix the input and retry.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid job config: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid job config: %s", e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ProbeError reports that narration audio metadata could not be read. Fatal.
type ProbeError struct {
	Path string
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe failed for %s: %v", e.Path, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// RenderError reports a failed segment render. Fatal; Index identifies the
// segment for diagnosis.
type RenderError struct {
	Index int
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("segment %d render failed: %v", e.Index, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// ConcatError reports a failed concatenation after all segments rendered.
// Fatal; indicates a corrupt intermediate clip or a manifest bug.
type ConcatError struct {
	Err error
}

func (e *ConcatError) Error() string {
	return fmt.Sprintf("concat failed: %v", e.Err)
}

func (e *ConcatError) Unwrap() error { return e.Err }

// MixError reports a failed background-music overlay. Non-fatal: the
// narration-only artifact remains valid.
type MixError struct {
	Err error
}

func (e *MixError) Error() string {
	return fmt.Sprintf("music mix failed: %v", e.Err)
}

func (e *MixError) Unwrap() error { return e.Err }

// TitleError reports a failed title burn-in. Non-fatal: absence of the
// captioned variant does not fail the job.
type TitleError struct {
	Err error
}

func (e *TitleError) Error() string {
	return fmt.Sprintf("title burn failed: %v", e.Err)
}

func (e *TitleError) Unwrap() error { return e.Err }
