// Package batch converts every statement file in a directory in one run.
// Files are converted independently, so one broken statement does not stop
// the rest of the directory.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/stmt-sorter/internal/factory"
	"fjacquet/stmt-sorter/internal/fileutils"
	"fjacquet/stmt-sorter/internal/logging"
	"fjacquet/stmt-sorter/internal/models"
	"fjacquet/stmt-sorter/internal/ocr"
	"fjacquet/stmt-sorter/internal/process"
	"fjacquet/stmt-sorter/internal/workbook"
)

// Result summarizes one batch run.
type Result struct {
	Processed int
	Skipped   int
	Failed    int
	Outputs   []string
}

// Runner converts all supported statement files found in a directory.
type Runner struct {
	processor *process.Processor
	writer    *workbook.Writer
	ocrEngine ocr.Engine
	logger    logging.Logger
}

// NewRunner creates a batch runner over the given pipeline components.
func NewRunner(processor *process.Processor, writer *workbook.Writer, ocrEngine ocr.Engine, logger logging.Logger) *Runner {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Runner{
		processor: processor,
		writer:    writer,
		ocrEngine: ocrEngine,
		logger:    logger,
	}
}

// Run converts every supported file in inputDir, writing one report per
// statement into outputDir. Unsupported files are skipped and per-file
// failures are logged and counted, not returned.
func (r *Runner) Run(ctx context.Context, inputDir, outputDir, format string) (Result, error) {
	var result Result

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return result, fmt.Errorf("failed to read input directory: %w", err)
	}
	if err := fileutils.EnsureDirectoryExists(outputDir); err != nil {
		return result, err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		inputPath := filepath.Join(inputDir, entry.Name())
		parserType, err := factory.ForFilename(entry.Name())
		if err != nil {
			result.Skipped++
			continue
		}

		outputPath, err := r.convertFile(ctx, inputPath, outputDir, parserType, format)
		if err != nil {
			result.Failed++
			r.logger.WithError(err).Error("Failed to convert statement",
				logging.Field{Key: logging.FieldInputFile, Value: inputPath})
			continue
		}

		result.Processed++
		result.Outputs = append(result.Outputs, outputPath)
	}

	return result, nil
}

func (r *Runner) convertFile(ctx context.Context, inputPath, outputDir string, parserType factory.ParserType, format string) (string, error) {
	p, err := factory.GetParserWithOCR(parserType, r.logger, r.ocrEngine)
	if err != nil {
		return "", err
	}

	file, err := os.Open(inputPath) // #nosec G304 -- path comes from the scanned directory
	if err != nil {
		return "", err
	}
	defer func() {
		if err := file.Close(); err != nil {
			r.logger.WithError(err).Warn("Failed to close input file")
		}
	}()

	transactions, err := p.Parse(file)
	if err != nil {
		return "", err
	}
	if len(transactions) == 0 {
		return "", fmt.Errorf("no transactions found in %s", filepath.Base(inputPath))
	}

	account := models.Account{BankName: models.DefaultBankName}
	if extractor, ok := p.(models.AccountExtractor); ok {
		account = extractor.AccountInfo()
	}

	processed := r.processor.Process(ctx, transactions)
	outputPath := filepath.Join(outputDir, outputName(inputPath, format))

	if format == "csv" {
		return outputPath, r.writer.WriteCSVFile(outputPath, processed.Transactions)
	}
	return outputPath, r.writer.WriteWorkbookFile(outputPath, processed.Transactions, account)
}

// outputName derives the report name from the statement name, so a
// directory of statements yields a recognizable directory of reports.
func outputName(inputPath, format string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	ext := "xlsx"
	if format == "csv" {
		ext = "csv"
	}
	return fmt.Sprintf("%s_summary.%s", base, ext)
}
