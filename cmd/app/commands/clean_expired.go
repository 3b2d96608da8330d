package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/zkvault/zkvault/internal/sweeper"
)

// ExpiredSweeper purges rows that reached a terminal state.
type ExpiredSweeper interface {
	Sweep(ctx context.Context, dryRun bool) ([]sweeper.Result, error)
}

// RunCleanExpired runs one sweep over expired refresh tokens and expired secrets.
// Supports dry-run mode to preview deletion counts and both text/JSON output formats.
// Partial results are still written when a target fails.
//
// Requirements: Database must be migrated and accessible.
func RunCleanExpired(
	ctx context.Context,
	sw ExpiredSweeper,
	logger *slog.Logger,
	writer io.Writer,
	dryRun bool,
	format string,
) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format: %s (valid options: text, json)", format)
	}

	logger.Info("cleaning expired rows", slog.Bool("dry_run", dryRun))

	results, sweepErr := sw.Sweep(ctx, dryRun)

	if format == "json" {
		if err := outputCleanExpiredJSON(writer, results); err != nil {
			return err
		}
	} else {
		outputCleanExpiredText(writer, results)
	}

	if sweepErr != nil {
		return fmt.Errorf("failed to clean expired rows: %w", sweepErr)
	}

	logger.Info("cleanup completed", slog.Bool("dry_run", dryRun))
	return nil
}

// outputCleanExpiredText outputs the result in human-readable text format.
func outputCleanExpiredText(writer io.Writer, results []sweeper.Result) {
	for _, result := range results {
		if result.DryRun {
			_, _ = fmt.Fprintf(writer, "Dry-run mode: Would delete %d expired row(s) from %s\n", result.Count, result.Name)
		} else {
			_, _ = fmt.Fprintf(writer, "Successfully deleted %d expired row(s) from %s\n", result.Count, result.Name)
		}
	}
}

// outputCleanExpiredJSON outputs the result in JSON format for machine consumption.
func outputCleanExpiredJSON(writer io.Writer, results []sweeper.Result) error {
	if results == nil {
		results = []sweeper.Result{}
	}

	jsonBytes, err := json.MarshalIndent(map[string]any{"results": results}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	_, err = fmt.Fprintln(writer, string(jsonBytes))
	return err
}
