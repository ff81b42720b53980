package ocr

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"fjacquet/stmt-sorter/internal/logging"
	"fjacquet/stmt-sorter/internal/parsererror"
)

// Options configures the external OCR toolchain.
type Options struct {
	TesseractBin string
	PdftoppmBin  string
	DPI          int
	PSM          int
	OEM          int
	Timeout      time.Duration
}

// DefaultOptions returns the options used for unset fields. PSM 6 treats
// the page as a single block of text, which suits statement tables.
func DefaultOptions() Options {
	return Options{
		TesseractBin: "tesseract",
		PdftoppmBin:  "pdftoppm",
		DPI:          300,
		PSM:          6,
		OEM:          3,
		Timeout:      2 * time.Minute,
	}
}

// TesseractEngine shells out to pdftoppm and tesseract. Pages that fail
// recognition are skipped so one bad scan does not lose the whole
// statement.
type TesseractEngine struct {
	opts   Options
	logger logging.Logger
}

// NewTesseractEngine creates a TesseractEngine, filling unset options with
// defaults.
func NewTesseractEngine(opts Options, logger logging.Logger) *TesseractEngine {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	defaults := DefaultOptions()
	if opts.TesseractBin == "" {
		opts.TesseractBin = defaults.TesseractBin
	}
	if opts.PdftoppmBin == "" {
		opts.PdftoppmBin = defaults.PdftoppmBin
	}
	if opts.DPI <= 0 {
		opts.DPI = defaults.DPI
	}
	if opts.PSM <= 0 {
		opts.PSM = defaults.PSM
	}
	if opts.OEM <= 0 {
		opts.OEM = defaults.OEM
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaults.Timeout
	}

	return &TesseractEngine{opts: opts, logger: logger}
}

// ExtractText rasterizes every page of the PDF and concatenates the OCR
// output in page order.
func (e *TesseractEngine) ExtractText(ctx context.Context, pdfPath string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	workDir, err := os.MkdirTemp("", "stmt-ocr-*")
	if err != nil {
		return "", &parsererror.ExtractionError{
			FilePath: pdfPath,
			Stage:    "rasterize",
			Reason:   "cannot create work directory",
			Err:      err,
		}
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			e.logger.WithError(err).Warn("Failed to remove OCR work directory")
		}
	}()

	pages, err := e.rasterize(ctx, pdfPath, workDir)
	if err != nil {
		return "", err
	}

	e.logger.Debug("Running OCR on rasterized pages",
		logging.Field{Key: logging.FieldFile, Value: pdfPath},
		logging.Field{Key: logging.FieldCount, Value: len(pages)})

	var text strings.Builder
	for _, page := range pages {
		pageText, err := e.recognize(ctx, page)
		if err != nil {
			e.logger.WithError(err).Warn("OCR failed for page",
				logging.Field{Key: logging.FieldPage, Value: filepath.Base(page)})
			continue
		}
		text.WriteString(pageText)
		text.WriteString("\n")
	}

	return CleanText(text.String()), nil
}

func (e *TesseractEngine) rasterize(ctx context.Context, pdfPath, workDir string) ([]string, error) {
	prefix := filepath.Join(workDir, "page")
	args := []string{"-r", strconv.Itoa(e.opts.DPI), "-gray", "-png", pdfPath, prefix}

	cmd := exec.CommandContext(ctx, e.opts.PdftoppmBin, args...) // #nosec G204 -- binary and flags come from configuration
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, &parsererror.ExtractionError{
			FilePath: pdfPath,
			Stage:    "rasterize",
			Reason:   strings.TrimSpace(string(output)),
			Err:      err,
		}
	}

	pages, err := filepath.Glob(prefix + "*.png")
	if err != nil {
		return nil, &parsererror.ExtractionError{
			FilePath: pdfPath,
			Stage:    "rasterize",
			Reason:   "cannot list rasterized pages",
			Err:      err,
		}
	}
	// pdftoppm zero-pads page numbers, so lexicographic order is page order.
	sort.Strings(pages)

	if len(pages) == 0 {
		return nil, &parsererror.ExtractionError{
			FilePath: pdfPath,
			Stage:    "rasterize",
			Reason:   "no pages produced",
		}
	}
	return pages, nil
}

func (e *TesseractEngine) recognize(ctx context.Context, imagePath string) (string, error) {
	args := []string{
		imagePath, "stdout",
		"-l", "eng",
		"--oem", strconv.Itoa(e.opts.OEM),
		"--psm", strconv.Itoa(e.opts.PSM),
	}

	cmd := exec.CommandContext(ctx, e.opts.TesseractBin, args...) // #nosec G204 -- binary and flags come from configuration
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", &parsererror.ExtractionError{
			FilePath: imagePath,
			Stage:    "ocr",
			Reason:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}
	}
	return stdout.String(), nil
}
