package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/itemreport/internal/config"
	"github.com/nao1215/itemreport/internal/database"
	"github.com/nao1215/itemreport/internal/input"
	ilog "github.com/nao1215/itemreport/internal/log"
	"github.com/nao1215/itemreport/internal/model"
	"github.com/nao1215/itemreport/internal/pipeline"
	"github.com/nao1215/itemreport/internal/report"
)

var (
	successColor = color.New(color.FgGreen)
	failureColor = color.New(color.FgRed)
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [items-file]",
		Short: "Generate reports from a list of items",
		Long: `Generate renders one or more reports from a JSON or YAML items file.

Items are read from the given file (.json, .yaml or .yml). Without a file,
a JSON document is read from stdin. Both a bare list and {"items": [...]}
are accepted.

Users without the ADMIN role only see items whose value is at most the
permission threshold. For ADMIN users, items above the priority limit are
highlighted.

Examples:
  # CSV report for an administrator, printed to stdout
  itemreport generate items.json --user Ana --role admin

  # HTML report written to a file
  itemreport generate items.yaml -u Bob -t HTML -o out/report.html

  # Several report types at once, one file per type
  itemreport generate items.json -u Ana -r ADMIN -t CSV -t HTML -t MARKDOWN -m --output-dir out/

  # Use a user profile from the config file
  itemreport generate items.json --profile ana

Configuration file (.itemreport) example:
  threshold: 500
  priorityLimit: 1000
  types: [CSV]
  users:
    ana:
      name: Ana
      role: ADMIN`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGenerateCmd,
	}

	// Report flags
	cmd.Flags().StringSliceP("type", "t", nil,
		"Report type: CSV, HTML or MARKDOWN (repeatable, default CSV)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Enable the MARKDOWN report type")

	// User flags
	cmd.Flags().StringP("user", "u", "",
		"Name of the user the report is generated for")
	cmd.Flags().StringP("role", "r", "",
		"Role of the user (ADMIN sees every item)")
	cmd.Flags().StringP("profile", "P", "",
		"User profile from the configuration file")

	// Rule flags
	cmd.Flags().Float64("threshold", config.DefaultPermissionThreshold,
		"Highest item value visible to users without the ADMIN role")
	cmd.Flags().Float64("priority-limit", config.DefaultPriorityLimit,
		"Items above this value are highlighted for ADMIN users")

	// Output flags
	cmd.Flags().StringP("output", "o", "",
		"Write the report to the specified file (creates directories if needed)")
	cmd.Flags().String("output-dir", "",
		"Write one file per report type into this directory")
	cmd.Flags().Bool("tee", false,
		"Also print reports to stdout when writing files")
	cmd.Flags().Int("concurrency", config.DefaultConcurrency,
		"Number of reports rendered at once")

	// Configuration and history
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .itemreport in current or home directory)")
	cmd.Flags().Bool("no-history", false,
		"Do not store generated reports in the history database")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")

	return cmd
}

// runGenerateCmd executes the generate command.
func runGenerateCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := ilog.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runGenerate(ctx, cmd, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// normalizeIdentifier trims and upper-cases a role or report type so that
// "admin" on the command line matches the ADMIN role.
func normalizeIdentifier(s string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(s))
}

// buildConfig creates a Config from the config file and cobra command flags.
// Flags given explicitly on the command line override file values.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error

	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicit config path must exist; otherwise a missing file is fine.
	if configPath := config.FindConfigFile(cfg.ConfigFilePath); configPath != "" {
		cfg.File, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	cfg.ReportTypes, err = flags.GetStringSlice("type")
	if err != nil {
		return nil, err
	}
	cfg.File.Apply(cfg)
	if len(cfg.ReportTypes) == 0 {
		cfg.ReportTypes = []string{config.DefaultReportType}
	}
	cfg.ReportTypes = lo.Uniq(lo.Map(cfg.ReportTypes, func(t string, _ int) string {
		return normalizeIdentifier(t)
	}))

	if flags.Changed("threshold") {
		if cfg.PermissionThreshold, err = flags.GetFloat64("threshold"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("priority-limit") {
		if cfg.PriorityLimit, err = flags.GetFloat64("priority-limit"); err != nil {
			return nil, err
		}
	}

	cfg.Profile, err = flags.GetString("profile")
	if err != nil {
		return nil, err
	}
	if cfg.Profile != "" {
		profile, err := cfg.File.Profile(cfg.Profile)
		if err != nil {
			return nil, err
		}
		cfg.UserName = profile.Name
		cfg.Role = profile.Role
	}
	if flags.Changed("user") {
		if cfg.UserName, err = flags.GetString("user"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("role") {
		if cfg.Role, err = flags.GetString("role"); err != nil {
			return nil, err
		}
	}
	cfg.Role = normalizeIdentifier(cfg.Role)

	if cfg.OutputFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}
	if cfg.OutputDir, err = flags.GetString("output-dir"); err != nil {
		return nil, err
	}
	if cfg.Tee, err = flags.GetBool("tee"); err != nil {
		return nil, err
	}
	if cfg.Markdown, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.Concurrency, err = flags.GetInt("concurrency"); err != nil {
		return nil, err
	}

	noHistory, err := flags.GetBool("no-history")
	if err != nil {
		return nil, err
	}
	cfg.SaveHistory = !noHistory

	dbDir, err := flags.GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if dbDir != "" {
		cfg.DBDir = dbDir
	}

	cfg.Verbose = getVerboseFlag(cmd)

	if len(args) > 0 {
		cfg.ItemsFile = args[0]
	}

	return cfg, nil
}

// newPipeline creates the report pipeline for cfg.
func newPipeline(cfg *config.Config, logger *slog.Logger) *pipeline.Pipeline {
	registry := report.NewRegistry()
	if cfg.Markdown {
		registry.Register(report.TypeMarkdown, report.NewMarkdownFormatter())
	}

	return pipeline.New(
		pipeline.WithLogger(logger),
		pipeline.WithRegistry(registry),
		pipeline.WithPermissionThreshold(cfg.PermissionThreshold),
		pipeline.WithPriorityLimit(cfg.PriorityLimit),
	)
}

// runGenerate loads the items and renders every requested report.
func runGenerate(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	items, err := loadItems(cmd.InOrStdin(), cfg.ItemsFile)
	if err != nil {
		return err
	}

	p := newPipeline(cfg, logger)
	user := model.User{Name: cfg.UserName, Role: model.Role(cfg.Role)}

	recorder := &historyRecorder{runID: database.NewRunID(), logger: logger}
	if cfg.SaveHistory {
		db, err := database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer db.Close()
		recorder.db = db
		logger.Debug("history database opened", "path", db.Path())
	}

	if len(cfg.ReportTypes) == 1 {
		return runSingleReport(ctx, cmd, cfg, p, user, items, recorder)
	}
	return runBatchReports(ctx, cmd, cfg, p, user, items, recorder)
}

// loadItems reads items from path, or JSON from stdin when path is empty or "-".
func loadItems(stdin io.Reader, path string) ([]model.Item, error) {
	if path == "" || path == "-" {
		items, err := input.ReadItems(stdin, input.FormatJSON)
		if err != nil {
			return nil, fmt.Errorf("failed to read items from stdin: %w", err)
		}
		return items, nil
	}
	return input.LoadItems(path)
}

// runSingleReport renders one report to stdout, to cfg.OutputFile, or to
// its type's file in cfg.OutputDir.
func runSingleReport(ctx context.Context, cmd *cobra.Command, cfg *config.Config, p *pipeline.Pipeline,
	user model.User, items []model.Item, recorder *historyRecorder) error {
	result, err := p.Generate(report.Type(cfg.ReportTypes[0]), user, items)
	if err != nil {
		return err
	}

	path := cfg.OutputFile
	if cfg.OutputDir != "" {
		path = filepath.Join(cfg.OutputDir, reportFileName(result.Type))
	}

	if err := writeReport(cmd.OutOrStdout(), path, cfg.Tee, result.Output); err != nil {
		return err
	}
	if path != "" {
		printStatus(cmd.ErrOrStderr(), successColor, "%s", summarize(result, path))
	}

	recorder.save(ctx, result)
	return nil
}

// runBatchReports renders every requested type concurrently, one file per
// type in cfg.OutputDir. A failed type does not stop the others.
func runBatchReports(ctx context.Context, cmd *cobra.Command, cfg *config.Config, p *pipeline.Pipeline,
	user model.User, items []model.Item, recorder *historyRecorder) error {
	requests := lo.Map(cfg.ReportTypes, func(t string, _ int) pipeline.Request {
		return pipeline.Request{Type: report.Type(t), User: user, Items: items}
	})

	bg := pipeline.NewBatchGenerator(p,
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithBatchLogger(recorder.logger),
	)

	results, err := bg.Generate(ctx, requests)
	if err != nil {
		return fmt.Errorf("batch generation cancelled: %w", err)
	}

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			printStatus(cmd.ErrOrStderr(), failureColor, "%s report failed: %v", r.Request.Type, r.Err)
			errs = append(errs, fmt.Errorf("%s: %w", r.Request.Type, r.Err))
			continue
		}

		path := filepath.Join(cfg.OutputDir, reportFileName(r.Result.Type))
		if err := writeReport(cmd.OutOrStdout(), path, cfg.Tee, r.Result.Output); err != nil {
			printStatus(cmd.ErrOrStderr(), failureColor, "%s report failed: %v", r.Request.Type, err)
			errs = append(errs, fmt.Errorf("%s: %w", r.Request.Type, err))
			continue
		}
		printStatus(cmd.ErrOrStderr(), successColor, "%s", summarize(r.Result, path))

		recorder.save(ctx, r.Result)
	}

	return errors.Join(errs...)
}

// reportFileName returns the file name used for a report type in batch mode.
func reportFileName(t report.Type) string {
	return "report." + t.Extension()
}

// summarize describes a written report in one line.
func summarize(result *pipeline.Result, path string) string {
	return fmt.Sprintf("%s report written to %s (%d of %d items, total %s)",
		result.Type, path, result.VisibleCount(), result.InputCount, model.FormatNumber(result.Total))
}

// printStatus prints a colored status line.
func printStatus(w io.Writer, c *color.Color, format string, args ...any) {
	_, _ = c.Fprintf(w, format+"\n", args...)
}

// writeReport writes body to path, or to stdout when path is empty.
// With tee, a report written to a file is also printed to stdout.
func writeReport(stdout io.Writer, path string, tee bool, body string) error {
	if path == "" {
		_, err := report.NewWriter(stdout).Write(body)
		return err
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Reports may contain restricted items, so only the owner can read them.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	writers := []*report.Writer{report.NewWriter(f)}
	if tee {
		writers = append(writers, report.NewWriter(stdout))
	}
	if _, err := report.NewMultiWriter(writers...).Write(body); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// historyRecorder stores generated reports under one run ID.
// A nil db disables recording.
type historyRecorder struct {
	db     *database.HistoryDB
	runID  string
	logger *slog.Logger
}

// save stores result. Failures are logged and do not fail the command.
func (h *historyRecorder) save(ctx context.Context, result *pipeline.Result) {
	if h.db == nil {
		return
	}

	record := &database.Record{
		RunID:        h.runID,
		ReportType:   string(result.Type),
		UserName:     result.User.Name,
		Role:         string(result.User.Role),
		InputCount:   result.InputCount,
		VisibleCount: result.VisibleCount(),
		Total:        result.Total,
		Body:         result.Output,
	}
	if err := h.db.SaveReport(ctx, record); err != nil {
		h.logger.Error("failed to save report history", "type", result.Type, "error", err)
		return
	}

	h.logger.Debug("report saved to history", "id", record.ID, "run_id", record.RunID)
}
