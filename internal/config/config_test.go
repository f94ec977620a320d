package config

import (
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Render.FPS != 30 || cfg.Render.CRF != 23 {
		t.Errorf("unexpected render defaults: %+v", cfg.Render)
	}
	if cfg.FFmpeg.BinaryPath != "ffmpeg" {
		t.Errorf("unexpected ffmpeg binary default %q", cfg.FFmpeg.BinaryPath)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cfg.Render.CRF = 18
	cfg.Subtitles.FontName = "Helvetica"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Render.CRF != 18 {
		t.Errorf("crf %d did not round-trip", loaded.Render.CRF)
	}
	if loaded.Subtitles.FontName != "Helvetica" {
		t.Errorf("font %q did not round-trip", loaded.Subtitles.FontName)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SLIDECAST_FFMPEG", "/opt/ffmpeg/bin/ffmpeg")
	t.Setenv("SLIDECAST_THREADS", "8")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.FFmpeg.BinaryPath != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("env binary override not applied: %q", cfg.FFmpeg.BinaryPath)
	}
	if cfg.FFmpeg.Threads != 8 {
		t.Errorf("env threads override not applied: %d", cfg.FFmpeg.Threads)
	}
}
