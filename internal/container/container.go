// Package container provides dependency injection for the statement
// sorter. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"os"
	"time"

	"fjacquet/stmt-sorter/internal/categorizer"
	"fjacquet/stmt-sorter/internal/common"
	"fjacquet/stmt-sorter/internal/config"
	"fjacquet/stmt-sorter/internal/factory"
	"fjacquet/stmt-sorter/internal/logging"
	"fjacquet/stmt-sorter/internal/models"
	"fjacquet/stmt-sorter/internal/ocr"
	"fjacquet/stmt-sorter/internal/process"
	"fjacquet/stmt-sorter/internal/server"
	"fjacquet/stmt-sorter/internal/store"
	"fjacquet/stmt-sorter/internal/workbook"
)

// Container holds all application dependencies and provides methods to
// access them. It is immutable after creation: all fields are private and
// reached through getters, so nothing can swap a dependency out from
// under a running pipeline.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	ruleStore   *store.RuleStore
	aiClient    categorizer.AIClient
	categorizer *categorizer.Categorizer
	processor   *process.Processor
	ocrEngine   ocr.Engine
	workbook    *workbook.Writer
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Logger first, everything else logs through it.
	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	common.SetLogger(logger)

	if cfg.CSV.Delimiter != "" {
		common.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
	}

	ruleStore := store.NewRuleStore(cfg.Rules.File)

	aiClient := newAIClient(cfg, ruleStore, logger)
	cat := categorizer.NewCategorizer(ruleStore, aiClient, logger)
	processor := process.NewProcessor(cat, logger)

	var ocrEngine ocr.Engine
	if cfg.OCR.Enabled {
		ocrEngine = ocr.NewTesseractEngine(ocr.Options{
			TesseractBin: cfg.OCR.TesseractBin,
			PdftoppmBin:  cfg.OCR.PdftoppmBin,
			DPI:          cfg.OCR.DPI,
			PSM:          cfg.OCR.PSM,
			OEM:          cfg.OCR.OEM,
			Timeout:      time.Duration(cfg.OCR.TimeoutSeconds) * time.Second,
		}, logger)
	}

	outputDir := cfg.Output.Directory
	if outputDir == "" {
		outputDir = os.TempDir()
	}
	writer := workbook.NewWriter(outputDir, logger)

	logger.Info("Container initialized",
		logging.Field{Key: "output_dir", Value: outputDir},
		logging.Field{Key: "ocr_enabled", Value: cfg.OCR.Enabled},
		logging.Field{Key: "ai_enabled", Value: aiClient != nil})

	return &Container{
		logger:      logger,
		config:      cfg,
		ruleStore:   ruleStore,
		aiClient:    aiClient,
		categorizer: cat,
		processor:   processor,
		ocrEngine:   ocrEngine,
		workbook:    writer,
	}, nil
}

// newAIClient builds the Gemini fallback client when AI categorization is
// enabled and a key is present. A client that fails to initialize is
// logged and skipped: rule matching alone still categorizes everything.
func newAIClient(cfg *config.Config, ruleStore *store.RuleStore, logger logging.Logger) categorizer.AIClient {
	if !cfg.AI.Enabled || cfg.AI.APIKey == "" {
		logger.Debug("AI categorization disabled")
		return nil
	}

	rules, err := ruleStore.LoadRules()
	if err != nil {
		logger.WithError(err).Warn("Cannot load rules for AI categorization, continuing without AI")
		return nil
	}

	names := make([]string, 0, len(rules)+2)
	for _, rule := range rules {
		names = append(names, rule.Name)
	}
	names = append(names, models.CategoryOtherDeposit, models.CategoryOtherWithdrawal)

	client, err := categorizer.NewGeminiClient(
		context.Background(),
		cfg.AI.APIKey,
		cfg.AI.Model,
		time.Duration(cfg.AI.TimeoutSeconds)*time.Second,
		names,
		logger,
	)
	if err != nil {
		logger.WithError(err).Warn("Failed to create AI client, continuing without AI")
		return nil
	}

	logger.Info("AI categorization enabled",
		logging.Field{Key: "model", Value: cfg.AI.Model})
	return client
}

// Logger returns the application logger.
func (c *Container) Logger() logging.Logger {
	return c.logger
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// RuleStore returns the category rule store.
func (c *Container) RuleStore() *store.RuleStore {
	return c.ruleStore
}

// Categorizer returns the transaction categorizer.
func (c *Container) Categorizer() *categorizer.Categorizer {
	return c.categorizer
}

// Processor returns the statement processing pipeline.
func (c *Container) Processor() *process.Processor {
	return c.processor
}

// OCREngine returns the OCR engine, or nil when OCR is disabled.
func (c *Container) OCREngine() ocr.Engine {
	return c.ocrEngine
}

// WorkbookWriter returns the report writer.
func (c *Container) WorkbookWriter() *workbook.Writer {
	return c.workbook
}

// Parser returns a fresh parser for the given type, wired with the
// container's logger and OCR engine.
func (c *Container) Parser(parserType factory.ParserType) (models.Parser, error) {
	return factory.GetParserWithOCR(parserType, c.logger, c.ocrEngine)
}

// ParserForFilename returns a fresh parser for the file's extension.
func (c *Container) ParserForFilename(filename string) (models.Parser, error) {
	parserType, err := factory.ForFilename(filename)
	if err != nil {
		return nil, err
	}
	return c.Parser(parserType)
}

// Server builds the HTTP server over the container's pipeline.
func (c *Container) Server() *server.Server {
	return server.New(server.Deps{
		Config:    c.config,
		Logger:    c.logger,
		Processor: c.processor,
		Workbook:  c.workbook,
		OCREngine: c.ocrEngine,
	})
}

// Sweeper builds the output directory sweeper from the retention settings.
func (c *Container) Sweeper() *server.Sweeper {
	return server.NewSweeper(
		c.workbook.OutputDir(),
		time.Duration(c.config.Output.RetentionMinutes)*time.Minute,
		time.Duration(c.config.Output.SweepMinutes)*time.Minute,
		c.logger,
	)
}

// Close releases resources held by the container, currently only the AI
// client connection.
func (c *Container) Close() error {
	if closer, ok := c.aiClient.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
