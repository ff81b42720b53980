// Package batch handles directory-wide statement conversion from the
// command line.
package batch

import (
	"fmt"

	"fjacquet/stmt-sorter/cmd/root"
	"fjacquet/stmt-sorter/internal/batch"
	"fjacquet/stmt-sorter/internal/container"
	"fjacquet/stmt-sorter/internal/logging"
	"fjacquet/stmt-sorter/internal/validation"

	"github.com/spf13/cobra"
)

// Cmd represents the batch command.
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Convert every statement file in a directory",
	Long: `Batch converts all supported statement files (PDF, XLS, XLSX, CSV) found
in the input directory and writes one summary report per statement into the
output directory. Files are converted independently, so a broken statement
is reported and skipped without stopping the run.

Example:
  stmt-sorter batch -i statements/ -o reports/`,
	RunE: batchFunc,
}

func batchFunc(cmd *cobra.Command, args []string) error {
	inputDir := root.SharedFlags.Input
	outputDir := root.SharedFlags.Output
	if inputDir == "" || outputDir == "" {
		return fmt.Errorf("input and output directories are required, use --input and --output")
	}
	if err := validation.IsValidOutputFormat(root.SharedFlags.Format); err != nil {
		return err
	}

	c, err := container.NewContainer(root.Cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			root.Log.WithError(err).Warn("Failed to close container")
		}
	}()

	runner := batch.NewRunner(c.Processor(), c.WorkbookWriter(), c.OCREngine(), root.Log)
	result, err := runner.Run(cmd.Context(), inputDir, outputDir, root.SharedFlags.Format)
	if err != nil {
		return err
	}

	root.Log.Info("Batch conversion completed",
		logging.Field{Key: "processed", Value: result.Processed},
		logging.Field{Key: "skipped", Value: result.Skipped},
		logging.Field{Key: "failed", Value: result.Failed})

	cmd.Printf("Converted %d statement(s), skipped %d, failed %d\n",
		result.Processed, result.Skipped, result.Failed)
	return nil
}
