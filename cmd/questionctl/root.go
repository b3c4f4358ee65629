package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"hireprompt-backend/internal/bootstrap"
	"hireprompt-backend/internal/extract"
	"hireprompt-backend/internal/llm"
	"hireprompt-backend/internal/profiles"
	"hireprompt-backend/internal/questions"
	"hireprompt-backend/internal/shared/config"
	"hireprompt-backend/internal/shared/telemetry"
)

type rootOptions struct {
	noColor bool
	verbose bool
	timeout time.Duration
}

// pipeline is the extract, normalize and generate chain shared by subcommands.
type pipeline struct {
	Extractor  extract.Extractor
	Normalizer *profiles.Normalizer
	Generator  *questions.Generator
	Provider   string
	Model      string
}

// newPipeline wires providers from the same environment the API reads.
var newPipeline = func(ctx context.Context) (*pipeline, error) {
	cfg := config.Load()
	client, err := bootstrap.NewLLMClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("llm client: %w", err)
	}
	return &pipeline{
		Extractor:  bootstrap.NewExtractor(cfg),
		Normalizer: profiles.NewNormalizer(client, cfg.NormalizeMaxInputRune),
		Generator:  questions.NewGenerator(client),
		Provider:   llm.Provider(client),
		Model:      llm.Model(client),
	}, nil
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "questionctl",
		Short:         "Turn a résumé PDF into interview questions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			telemetry.Configure(telemetry.Options{Level: level, Format: "console", Service: "questionctl", Output: cmd.ErrOrStderr()})
		},
	}
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 5*time.Minute, "overall deadline for the run")

	root.AddCommand(newExtractCmd(opts), newGenerateCmd(opts))
	return root
}

func readPDF(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, extract.DefaultMaxBytes+1))
}
