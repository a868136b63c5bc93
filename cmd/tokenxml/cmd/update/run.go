package update

import (
	"context"
	"io"

	tokenxml "github.com/SlightlyCircuitous/update-token-xml"
	"github.com/SlightlyCircuitous/update-token-xml/internal/cmd/application"
	"github.com/SlightlyCircuitous/update-token-xml/internal/cmd/output"
	"github.com/SlightlyCircuitous/update-token-xml/pkg/errors"
	"github.com/SlightlyCircuitous/update-token-xml/pkg/logging"
)

// Run executes one update and writes the report to w.
func Run(ctx context.Context, app application.Application, flags *Flags, setCode, catalogPath string, w io.Writer) error {
	if _, err := output.ParseFormat(app.OutputFormat()); err != nil {
		return errors.NewValidationError("format", app.OutputFormat(), err.Error())
	}
	format := output.DetectFormat(app.OutputFormat(), w)

	outputDir := flags.OutputDir
	if outputDir == "" {
		outputDir = app.OutputDir()
	}
	clientOpts := []tokenxml.Option{tokenxml.WithOutputDir(outputDir)}
	switch {
	case flags.NoCache:
		clientOpts = append(clientOpts, tokenxml.WithCache("", 0))
	case flags.Cache != "":
		clientOpts = append(clientOpts, tokenxml.WithCache(flags.Cache, 0))
	}

	client, err := app.Client(clientOpts...)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			app.Logger().Warn().Err(closeErr).Msg("Failed to close page cache")
		}
	}()

	metricsFile := flags.MetricsFile
	if metricsFile == "" {
		metricsFile = app.MetricsFile()
	}

	ctx = logging.WithLogger(ctx, app.Logger())
	result, err := client.Update(ctx, setCode, catalogPath,
		tokenxml.WithDryRun(flags.DryRun),
		tokenxml.WithQuery(flags.Query),
		tokenxml.WithSkipExistingSet(flags.SkipExistingSet),
		tokenxml.WithMetricsFile(metricsFile),
	)
	if err != nil {
		return err
	}

	return output.NewFormatter(format).Format(w, output.NewReport(result))
}
