package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"typings/internal/project"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default typings.toml",
		Long: `Write a default typings.toml into dir (the current directory when omitted).
The directory is created when missing. An existing configuration file is never
overwritten.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 && args[0] != "" {
		target = args[0]
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return err
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	for _, name := range project.ConfigNames {
		existing := filepath.Join(target, name)
		if _, err := os.Stat(existing); err == nil {
			return fmt.Errorf("already initialized: %s exists", existing)
		}
	}

	// a config further up still applies to files below target
	parentRoot, inParent, err := project.FindProjectRoot(filepath.Dir(target))
	if err != nil {
		return err
	}

	path := filepath.Join(target, project.ConfigNames[0])
	if err := os.WriteFile(path, []byte(project.DefaultTOML), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "wrote %s\n", formatPathForOutput(path))
	if inParent {
		fmt.Fprintf(out, "note: it takes precedence over %s for files below %s\n",
			formatPathForOutput(parentRoot), formatPathForOutput(target))
	}
	return nil
}

func formatPathForOutput(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(wd, path); err == nil && !filepath.IsAbs(rel) && rel != "" {
		return rel
	}
	return path
}
