package main

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/nao1215/itemreport/internal/config"
)

//go:embed templates/itemreport.yaml
var configTemplate []byte

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an itemreport configuration file",
		Long: `Init writes a commented .itemreport file with the default threshold,
priority limit, report types and an example user profile.

Examples:
  # Create .itemreport in the current directory
  itemreport init

  # Create the per-user file in the XDG config directory
  itemreport init --global

  # Print the template instead of writing it
  itemreport init --print > team.yaml`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Path of the configuration file to create")
	cmd.Flags().BoolP("force", "f", false,
		"Replace an existing file")
	cmd.Flags().BoolP("global", "g", false,
		"Write config.yaml into the XDG config directory instead of --output")
	cmd.Flags().BoolP("print", "p", false,
		"Print the template to stdout and write nothing")
	cmd.MarkFlagsMutuallyExclusive("output", "global", "print")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	out := cmd.OutOrStdout()

	if toStdout, err := flags.GetBool("print"); err != nil {
		return err
	} else if toStdout {
		_, err := out.Write(configTemplate)
		return err
	}

	path, err := flags.GetString("output")
	if err != nil {
		return err
	}
	global, err := flags.GetBool("global")
	if err != nil {
		return err
	}
	if global {
		path = filepath.Join(config.XDGConfigDir(), "config.yaml")
	}
	force, err := flags.GetBool("force")
	if err != nil {
		return err
	}

	if err := writeConfigTemplate(path, force); err != nil {
		return err
	}
	return describeConfig(out, path)
}

// writeConfigTemplate creates path with the embedded template. Without
// force, an existing file is left untouched and reported as an error.
func writeConfigTemplate(path string, force bool) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	flag := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}

	f, err := os.OpenFile(path, flag, 0600) //nolint:gosec // User-provided config path is intentional
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", path)
	}
	if err != nil {
		return fmt.Errorf("failed to create configuration file: %w", err)
	}

	if _, err := f.Write(configTemplate); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	return f.Close()
}

// describeConfig loads the written file back and summarizes what it sets.
func describeConfig(w io.Writer, path string) error {
	cf, err := config.LoadConfigFile(path)
	if err != nil {
		return fmt.Errorf("written configuration does not load: %w", err)
	}

	profiles := lo.Keys(cf.Users)
	slices.Sort(profiles)

	fmt.Fprintf(w, "Created configuration file: %s\n", path)
	if cf.Threshold != nil && cf.PriorityLimit != nil {
		fmt.Fprintf(w, "  threshold %v, priority limit %v\n", *cf.Threshold, *cf.PriorityLimit)
	}
	if len(cf.Types) > 0 {
		fmt.Fprintf(w, "  report types: %s\n", strings.Join(cf.Types, ", "))
	}
	if len(profiles) > 0 {
		fmt.Fprintf(w, "  profiles: %s (use --profile NAME with generate)\n", strings.Join(profiles, ", "))
	}
	return nil
}
