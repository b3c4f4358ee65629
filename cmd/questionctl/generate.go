package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"hireprompt-backend/internal/questions"
)

type generateOptions struct {
	title            string
	description      string
	skills           []string
	responsibilities []string
	output           string
}

// result is the rendered form of one run.
type result struct {
	File      string               `json:"file" yaml:"file"`
	JobTitle  string               `json:"jobTitle" yaml:"jobTitle"`
	Provider  string               `json:"provider" yaml:"provider"`
	Model     string               `json:"model,omitempty" yaml:"model,omitempty"`
	Questions []questions.Question `json:"questions" yaml:"questions"`
}

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	g := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate <pdf>",
		Short: "Generate interview questions for a PDF résumé and a job spec",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch g.output {
			case "text", "json", "yaml":
			default:
				return fmt.Errorf("unknown output %q (want text, json or yaml)", g.output)
			}
			if strings.TrimSpace(g.title) == "" {
				return fmt.Errorf("--title is required")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()
			res, err := runGenerate(ctx, cmd.ErrOrStderr(), args[0], g)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), g.output, res)
		},
	}
	cmd.Flags().StringVar(&g.title, "title", "", "job title")
	cmd.Flags().StringVar(&g.description, "description", "", "job description")
	cmd.Flags().StringArrayVar(&g.skills, "skill", nil, "required skill (repeatable)")
	cmd.Flags().StringArrayVar(&g.responsibilities, "responsibility", nil, "responsibility (repeatable)")
	cmd.Flags().StringVarP(&g.output, "output", "o", "text", "output format: text, json or yaml")
	return cmd
}

func runGenerate(ctx context.Context, progress io.Writer, path string, g *generateOptions) (result, error) {
	p, err := newPipeline(ctx)
	if err != nil {
		return result{}, err
	}
	data, err := readPDF(path)
	if err != nil {
		return result{}, fmt.Errorf("read %s: %w", path, err)
	}
	text, err := p.Extractor.ExtractText(ctx, data, "application/pdf", filepath.Base(path))
	if err != nil {
		return result{}, err
	}

	stop := startSpinner(progress, "structuring résumé")
	profile, err := p.Normalizer.NormalizeProfile(ctx, text)
	stop()
	if err != nil {
		return result{}, err
	}

	stop = startSpinner(progress, "generating questions")
	qs, err := p.Generator.GenerateQuestions(ctx, questions.GenerateInput{
		Profile:          profile,
		JobTitle:         g.title,
		JobDescription:   g.description,
		RequiredSkills:   g.skills,
		Responsibilities: g.responsibilities,
	})
	stop()
	if err != nil {
		return result{}, err
	}

	provider := p.Provider
	if provider == "" {
		provider = "mock"
	}
	return result{
		File:      filepath.Base(path),
		JobTitle:  g.title,
		Provider:  provider,
		Model:     p.Model,
		Questions: qs,
	}, nil
}

func render(w io.Writer, format string, res result) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	}

	headingColor.Fprintf(w, "%s · %s\n", res.JobTitle, res.File)
	mutedColor.Fprintf(w, "provider %s %s\n\n", res.Provider, res.Model)
	for i, q := range res.Questions {
		fmt.Fprintf(w, "%2d. ", i+1)
		typeColor.Fprintf(w, "[%s] ", q.Type)
		fmt.Fprintln(w, q.Question)
		if q.Rationale != "" {
			mutedColor.Fprintf(w, "    %s\n", q.Rationale)
		}
	}
	return nil
}
