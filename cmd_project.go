package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"launchpilot/apperrors"
	"launchpilot/domain"
	"launchpilot/repository"
	"launchpilot/service"
)

var (
	inputPath   string
	inputFormat string
	withSummary bool
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Run a projection locally and print it as JSON",
	Example: `  launchpilot project -f launch.yaml
  cat launch.json | launchpilot project -f - --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := readInputs(cmd.InOrStdin())
		if err != nil {
			return err
		}
		return runProjection(cmd.Context(), req, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	projectCmd.Flags().StringVarP(&inputPath, "file", "f", "", "inputs file (.json, .yaml, .yml) or - for stdin")
	projectCmd.Flags().StringVar(&inputFormat, "format", "", "input format when it cannot be inferred: json or yaml")
	projectCmd.Flags().BoolVar(&withSummary, "summary", false, "include a narrative summary")
	_ = projectCmd.MarkFlagRequired("file")
}

func readInputs(stdin io.Reader) (domain.ProjectionRequest, error) {
	format := inputFormat
	var r io.Reader
	if inputPath == "-" {
		r = stdin
		if format == "" {
			format = "json"
		}
	} else {
		f, err := os.Open(inputPath)
		if err != nil {
			return domain.ProjectionRequest{}, fmt.Errorf("failed to open inputs: %w", err)
		}
		defer f.Close()
		r = f
		if format == "" {
			format = strings.TrimPrefix(strings.ToLower(filepath.Ext(inputPath)), ".")
		}
	}
	return decodeInputs(r, format)
}

func decodeInputs(r io.Reader, format string) (domain.ProjectionRequest, error) {
	var in domain.ProjectionRequest
	switch format {
	case "json":
		if err := json.NewDecoder(r).Decode(&in); err != nil {
			return in, fmt.Errorf("failed to decode JSON inputs: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&in); err != nil {
			return in, fmt.Errorf("failed to decode YAML inputs: %w", err)
		}
	default:
		return in, fmt.Errorf("unsupported input format %q", format)
	}
	return in, nil
}

func runProjection(ctx context.Context, req domain.ProjectionRequest, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var narrator service.Narrator
	if withSummary {
		narrator = service.NewAIService(service.AIConfig{
			APIKey: cfg.OpenAI.APIKey,
			Model:  cfg.OpenAI.Model,
			APIURL: cfg.OpenAI.APIURL,
		}, logger)
	}

	svc := service.NewProjectionService(
		repository.NewProjectionRepositoryMemory(),
		repository.NewMemoryCache(),
		narrator,
		logger,
	)

	projection, err := svc.ProjectRequest(ctx, req)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Kind == apperrors.KindValidation {
			printDetails(stderr, appErr.Details)
		}
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(projection); err != nil {
		logger.Error("failed to write projection", zap.Error(err))
		return err
	}
	return nil
}

func printDetails(w io.Writer, details map[string]string) {
	fields := make([]string, 0, len(details))
	for field := range details {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintf(w, "  %s: %s\n", field, details[field])
	}
}
