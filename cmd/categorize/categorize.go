// Package categorize handles transaction categorization commands
package categorize

import (
	"fmt"

	"fjacquet/stmt-sorter/cmd/root"
	"fjacquet/stmt-sorter/internal/container"
	"fjacquet/stmt-sorter/internal/logging"
	"fjacquet/stmt-sorter/internal/models"

	"github.com/spf13/cobra"
)

var (
	description string
	withdrawal  bool
)

// Cmd represents the categorize command.
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a transaction description",
	Long: `Categorize runs one transaction description through the category rules and
prints the matching category. Useful for checking how a rules file behaves.`,
	RunE: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&description, "description", "d", "", "Transaction description to categorize")
	Cmd.Flags().BoolVarP(&withdrawal, "withdrawal", "w", false, "Treat the transaction as a withdrawal")
	_ = Cmd.MarkFlagRequired("description")
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	if description == "" {
		return fmt.Errorf("description is required, use --description")
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

	tx := models.Transaction{Description: description, Type: models.TypeDeposit}
	if withdrawal {
		tx.Type = models.TypeWithdrawal
	}

	category := c.Categorizer().Categorize(cmd.Context(), tx)
	root.Log.Info("Transaction categorized",
		logging.Field{Key: logging.FieldCategory, Value: category.Name})
	fmt.Fprintln(cmd.OutOrStdout(), category.Name)
	return nil
}
