package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newExtractCmd(opts *rootOptions) *cobra.Command {
	var normalize bool
	cmd := &cobra.Command{
		Use:   "extract <pdf>",
		Short: "Print the text extracted from a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			p, err := newPipeline(ctx)
			if err != nil {
				return err
			}
			data, err := readPDF(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			text, err := p.Extractor.ExtractText(ctx, data, "application/pdf", filepath.Base(args[0]))
			if err != nil {
				return err
			}
			if !normalize {
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}

			stop := startSpinner(cmd.ErrOrStderr(), "structuring résumé")
			profile, err := p.Normalizer.NormalizeProfile(ctx, text)
			stop()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), profile)
			return nil
		},
	}
	cmd.Flags().BoolVar(&normalize, "normalize", false, "also run the structuring step")
	return cmd
}
