package categorizer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"fjacquet/stmt-sorter/internal/logging"
	"fjacquet/stmt-sorter/internal/models"
)

// GeminiClient implements the AIClient interface using the Google Gemini API.
type GeminiClient struct {
	client     *genai.Client
	model      *genai.GenerativeModel
	categories []string
	timeout    time.Duration
	logger     logging.Logger
}

// NewGeminiClient connects to the Gemini API. The category names are offered
// to the model as the allowed answers.
func NewGeminiClient(ctx context.Context, apiKey, modelName string, timeout time.Duration, categories []string, logger logging.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is not set")
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		client:     client,
		model:      client.GenerativeModel(modelName),
		categories: categories,
		timeout:    timeout,
		logger:     logger,
	}, nil
}

// Close releases the underlying API client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// Categorize asks the Gemini model to place the transaction into one of the
// known categories.
func (c *GeminiClient) Categorize(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	prompt := fmt.Sprintf(`Categorize the following bank statement transaction:
Description: %s
Amount: %s
Date: %s

Assign this transaction to exactly one of the following categories:
%s

Respond in this format:
Category: [Selected Category Name]`,
		tx.Description,
		tx.Amount().StringFixed(2),
		tx.Date,
		strings.Join(c.categories, ", "))

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return tx, fmt.Errorf("gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return tx, fmt.Errorf("no response from gemini API")
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	category := extractCategory(responseText, c.categories)

	c.logger.WithFields(
		logging.Field{Key: "description", Value: tx.Description},
		logging.Field{Key: "category", Value: category},
	).Debug("Transaction categorized by Gemini")

	tx.Category = category
	return tx, nil
}

// extractCategory parses the model response, falling back to scanning for a
// known category name when the structured line is missing.
func extractCategory(response string, categories []string) string {
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "Category:") {
			return strings.Trim(strings.TrimSpace(strings.TrimPrefix(line, "Category:")), "[]")
		}
	}

	for _, name := range categories {
		if strings.Contains(response, name) {
			return name
		}
	}
	return ""
}
