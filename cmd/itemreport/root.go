package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for itemreport.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "itemreport",
		Short: "Generate role-aware item reports",
		Long: `itemreport generates tabular reports (CSV, HTML, Markdown) from a list of items.

Items above the permission threshold are hidden from users without the ADMIN
role. For ADMIN users, items above the priority limit are highlighted.

Every generated report is stored in a local history database unless
--no-history is given.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
