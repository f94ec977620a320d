package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"slidecast/internal/config"
	"slidecast/internal/engine"
	"slidecast/internal/ffmpeg"
	"slidecast/internal/logging"
	"slidecast/pkg/util"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	ctx := context.Background()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "slidecast",
	Short: "slidecast - narrated slideshow video composer",
	Long:  "Renders ordered image+narration segments into a single video, with Ken Burns motion, fades, subtitles, and background music.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(verbose)

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		cmd.SetContext(config.WithConfig(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(configInitCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render [job file]",
	Short: "Render a slideshow job described by a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())
		logger := logging.WithComponent("cli")

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		var job engine.JobConfig
		if err := yaml.Unmarshal(data, &job); err != nil {
			return fmt.Errorf("failed to parse job file: %w", err)
		}
		logger.Info().Str("job_file", args[0]).Int("segments", len(job.Segments)).Msg("rendering job")

		exec, err := ffmpeg.New(log.Logger, cfg.FFmpeg.BinaryPath, cfg.FFmpeg.ProbePath, cfg.FFmpeg.Threads)
		if err != nil {
			return err
		}

		eng := engine.New(log.Logger, exec, cfg)
		result, err := eng.Generate(cmd.Context(), job)
		if err != nil {
			return err
		}

		fmt.Println("\n=== Job Summary ===")
		fmt.Printf("Job ID:    %s\n", result.JobID)
		fmt.Printf("Duration:  %s\n", util.FormatDuration(result.TotalDuration))
		fmt.Printf("Output:    %s\n", result.OutputPath)
		if result.MusicPath != "" {
			fmt.Printf("With music: %s\n", result.MusicPath)
		} else if result.MixErr != nil {
			fmt.Printf("Music mix:  unavailable (%v)\n", result.MixErr)
		}
		if result.TitledPath != "" {
			fmt.Printf("Captioned: %s\n", result.TitledPath)
		} else if result.TitleErr != nil {
			fmt.Printf("Caption:    unavailable (%v)\n", result.TitleErr)
		}

		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "config-init [path]",
	Short: "Write the current configuration to a file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		path := "./config.yaml"
		if len(args) == 1 {
			path = args[0]
		}

		if err := cfg.Save(path); err != nil {
			return err
		}
		fmt.Printf("Config written to %s\n", path)
		return nil
	},
}

var probeCmd = &cobra.Command{
	Use:   "probe [media file]",
	Short: "Inspect a media file's duration and streams",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		exec, err := ffmpeg.New(log.Logger, cfg.FFmpeg.BinaryPath, cfg.FFmpeg.ProbePath, cfg.FFmpeg.Threads)
		if err != nil {
			return err
		}

		info, err := exec.Probe(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("File:      %s\n", info.FilePath)
		fmt.Printf("Duration:  %s\n", util.FormatDuration(info.Duration))
		if info.VideoCodec != "" {
			fmt.Printf("Video:     %s %dx%d @ %.2f fps\n", info.VideoCodec, info.Width, info.Height, info.FPS)
		}
		if info.HasAudio {
			fmt.Printf("Audio:     %s\n", info.AudioCodec)
		}

		return nil
	},
}
