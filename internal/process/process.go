// Package process turns raw parsed statement rows into categorized,
// date normalized transactions ready for report generation.
package process

import (
	"context"
	"strings"

	"fjacquet/stmt-sorter/internal/dateutils"
	"fjacquet/stmt-sorter/internal/logging"
	"fjacquet/stmt-sorter/internal/models"
)

// Categorizer assigns a category to a typed transaction.
type Categorizer interface {
	Categorize(ctx context.Context, tx models.Transaction) models.Category
}

// Result holds the processed transactions and their direction counts.
type Result struct {
	Transactions []models.Transaction
	Deposits     int
	Withdrawals  int
}

// Processor runs the statement pipeline over parsed rows: direction
// resolution, categorization and date normalization.
type Processor struct {
	categorizer Categorizer
	logger      logging.Logger
}

// NewProcessor creates a Processor. The categorizer is required.
func NewProcessor(categorizer Categorizer, logger logging.Logger) *Processor {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Processor{categorizer: categorizer, logger: logger}
}

// Process types, categorizes and date normalizes parsed rows. Rows with
// neither a description nor a date are dropped as header or filler noise.
// Rows that already carry a category, such as re-uploaded exports, keep it.
func (p *Processor) Process(ctx context.Context, transactions []models.Transaction) Result {
	result := Result{Transactions: make([]models.Transaction, 0, len(transactions))}

	for _, tx := range transactions {
		if strings.TrimSpace(tx.Description) == "" && strings.TrimSpace(tx.Date) == "" {
			continue
		}

		tx.Type, _ = tx.DetermineType()
		if tx.Category == "" {
			tx.Category = p.categorizer.Categorize(ctx, tx).Name
		}
		tx.Date = dateutils.NormalizeDate(tx.Date)
		tx.ValueDate = dateutils.NormalizeDate(tx.ValueDate)

		if tx.Type == models.TypeDeposit {
			result.Deposits++
		} else {
			result.Withdrawals++
		}
		result.Transactions = append(result.Transactions, tx)
	}

	p.logger.Info("Processed transactions",
		logging.Field{Key: logging.FieldCount, Value: len(result.Transactions)},
		logging.Field{Key: logging.FieldDeposits, Value: result.Deposits},
		logging.Field{Key: logging.FieldWithdrawals, Value: result.Withdrawals})
	return result
}
