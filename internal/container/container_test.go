package container

import (
	"context"
	"testing"

	"fjacquet/stmt-sorter/internal/config"
	"fjacquet/stmt-sorter/internal/factory"
	"fjacquet/stmt-sorter/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 8080
	cfg.Server.MaxUploadMB = 100
	cfg.Output.Directory = t.TempDir()
	cfg.Output.RetentionMinutes = 60
	cfg.Output.SweepMinutes = 10
	cfg.OCR.Enabled = true
	cfg.CSV.Delimiter = ","
	return cfg
}

func TestNewContainerRejectsNilConfig(t *testing.T) {
	c, err := NewContainer(nil)
	assert.Error(t, err)
	assert.Nil(t, c)
	assert.Contains(t, err.Error(), "configuration cannot be nil")
}

func TestNewContainerWiresDependencies(t *testing.T) {
	cfg := testConfig(t)

	c, err := NewContainer(cfg)
	require.NoError(t, err)

	assert.NotNil(t, c.Logger())
	assert.Equal(t, cfg, c.Config())
	assert.NotNil(t, c.RuleStore())
	assert.NotNil(t, c.Categorizer())
	assert.NotNil(t, c.Processor())
	assert.NotNil(t, c.OCREngine())
	assert.NotNil(t, c.WorkbookWriter())
	assert.Equal(t, cfg.Output.Directory, c.WorkbookWriter().OutputDir())

	assert.NoError(t, c.Close())
}

func TestNewContainerWithoutOCR(t *testing.T) {
	cfg := testConfig(t)
	cfg.OCR.Enabled = false

	c, err := NewContainer(cfg)
	require.NoError(t, err)

	assert.Nil(t, c.OCREngine())
}

func TestContainerParser(t *testing.T) {
	c, err := NewContainer(testConfig(t))
	require.NoError(t, err)

	for _, parserType := range []factory.ParserType{factory.PDF, factory.XLS, factory.XLSX, factory.CSV} {
		p, err := c.Parser(parserType)
		assert.NoError(t, err, string(parserType))
		assert.NotNil(t, p)
	}

	p, err := c.Parser(factory.ParserType("dbf"))
	assert.Error(t, err)
	assert.Nil(t, p)
}

func TestContainerParserForFilename(t *testing.T) {
	c, err := NewContainer(testConfig(t))
	require.NoError(t, err)

	p, err := c.ParserForFilename("statement.csv")
	require.NoError(t, err)
	assert.NotNil(t, p)

	_, err = c.ParserForFilename("statement.docx")
	assert.Error(t, err)
}

func TestContainerCategorizerUsesBuiltInRules(t *testing.T) {
	c, err := NewContainer(testConfig(t))
	require.NoError(t, err)

	category := c.Categorizer().Categorize(context.Background(), models.Transaction{
		Description: "ATM WDL CASH",
		Type:        models.TypeWithdrawal,
	})
	assert.Equal(t, "ATM Withdrawal", category.Name)
}

func TestContainerServerAndSweeper(t *testing.T) {
	c, err := NewContainer(testConfig(t))
	require.NoError(t, err)

	assert.NotNil(t, c.Server())
	assert.NotNil(t, c.Sweeper())
}
