package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/itemreport/internal/config"
	"github.com/nao1215/itemreport/internal/database"
	"github.com/nao1215/itemreport/internal/model"
)

// defaultHistoryLimit is the number of records listed by default.
const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previously generated reports",
		Long: `History lists the reports stored in the local history database.

Examples:
  # List the most recent reports
  itemreport history

  # List every stored report
  itemreport history --limit 0

  # Print a stored report again
  itemreport history --show 12`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", defaultHistoryLimit,
		"Maximum number of reports to list (0 lists all)")
	cmd.Flags().Int64("show", 0,
		"Print the stored report with this ID")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	showID, err := cmd.Flags().GetInt64("show")
	if err != nil {
		return err
	}
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	out := cmd.OutOrStdout()

	if _, err := os.Stat(filepath.Join(dbDir, database.FileName)); errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(out, "No reports recorded yet.")
		return nil
	}

	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false})
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()

	if showID > 0 {
		record, err := db.GetReport(ctx, showID)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, record.Body)
		return nil
	}

	records, err := db.ListReports(ctx, limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "No reports recorded yet.")
		return nil
	}

	fmt.Fprintf(out, "Generated reports (%d):\n\n", len(records))
	fmt.Fprintf(out, "  %-6s  %-20s  %-9s  %-8s  %-10s  %s\n", "ID", "Date", "Type", "Role", "Items", "Total")
	for _, r := range records {
		fmt.Fprintf(out, "  %-6d  %-20s  %-9s  %-8s  %-10s  %s\n",
			r.ID,
			r.Timestamp.Local().Format("2006-01-02 15:04:05"),
			r.ReportType,
			displayRole(r.Role),
			fmt.Sprintf("%d/%d", r.VisibleCount, r.InputCount),
			model.FormatNumber(r.Total),
		)
	}

	return nil
}

// displayRole returns a placeholder for users stored without a role.
func displayRole(role string) string {
	if role == "" {
		return "-"
	}
	return role
}
