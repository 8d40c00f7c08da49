package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"typings/internal/driver"
	"typings/internal/frontend"
	"typings/internal/project"
	"typings/internal/reportfmt"
)

func addCheckFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("project", "p", "", "configuration file (default: typings.toml found by walking up from the working directory)")
	f.Bool("allow-expect-error", false, "permit // $ExpectError directives")
	f.Bool("strict-type-lines", false, "report compiler errors on $ExpectType lines as unexpected errors")
	f.BoolP("noLines", "l", false, "omit line numbers from failure messages")
	f.BoolP("verbose", "v", false, "print the source of the asserted node before each failure")
	f.String("format", "pretty", "output format (pretty|json)")
	f.Int("jobs", 0, "files checked in parallel (0 = GOMAXPROCS)")
	f.Bool("cache", false, "reuse reports of unchanged files")
	f.String("ui", "off", "progress UI (auto|on|off)")
	f.Bool("watch", false, "re-check files when they change")
	f.String("loader", "source", "how files are loaded (source|packages)")
	f.String("package-mode", "file", "type-check the file alone or with its package (file|package)")
	f.StringSlice("tags", nil, "build tags, comma separated")
	f.String("go-version", "", "language version to check against, e.g. 1.22")
	f.Bool("timings", false, "print per-file stage timings to stderr")
}

// checkSettings is the configuration file overlaid with explicit flags.
type checkSettings struct {
	manifest *project.Manifest
	driver   driver.Options
	format   string
	report   reportfmt.Options
	cache    bool
	watch    bool
	timings  bool
	ui       uiMode
}

func resolveSettings(cmd *cobra.Command) (checkSettings, error) {
	flags := cmd.Flags()
	var s checkSettings

	projectPath, err := flags.GetString("project")
	if err != nil {
		return s, err
	}
	if projectPath != "" {
		s.manifest, err = project.LoadManifest(projectPath)
	} else {
		var wd string
		if wd, err = os.Getwd(); err == nil {
			s.manifest, _, err = project.Load(wd)
		}
	}
	if err != nil {
		return s, err
	}

	cfg := s.manifest.Config
	var errs []error
	overlay := func(name string, apply func() error) {
		if flags.Changed(name) {
			errs = append(errs, apply())
		}
	}
	overlay("allow-expect-error", func() (err error) {
		cfg.Check.AllowExpectError, err = flags.GetBool("allow-expect-error")
		return
	})
	overlay("strict-type-lines", func() (err error) {
		cfg.Check.StrictTypeLines, err = flags.GetBool("strict-type-lines")
		return
	})
	overlay("loader", func() (err error) {
		cfg.Frontend.Loader, err = flags.GetString("loader")
		cfg.Frontend.Loader = strings.ToLower(cfg.Frontend.Loader)
		return
	})
	overlay("package-mode", func() (err error) {
		cfg.Frontend.PackageMode, err = flags.GetString("package-mode")
		cfg.Frontend.PackageMode = strings.ToLower(cfg.Frontend.PackageMode)
		return
	})
	overlay("tags", func() (err error) {
		cfg.Frontend.Tags, err = flags.GetStringSlice("tags")
		return
	})
	overlay("go-version", func() (err error) {
		cfg.Frontend.GoVersion, err = flags.GetString("go-version")
		return
	})
	overlay("format", func() (err error) {
		cfg.Output.Format, err = flags.GetString("format")
		cfg.Output.Format = strings.ToLower(cfg.Output.Format)
		return
	})
	overlay("noLines", func() (err error) {
		cfg.Output.NoLines, err = flags.GetBool("noLines")
		return
	})
	overlay("verbose", func() (err error) {
		cfg.Output.Verbose, err = flags.GetBool("verbose")
		return
	})
	if err := errors.Join(errs...); err != nil {
		return s, err
	}
	if err := cfg.Validate(); err != nil {
		if s.manifest.Path != "" {
			return s, fmt.Errorf("%s (with flags): %w", s.manifest.Path, err)
		}
		return s, err
	}
	s.manifest.Config = cfg

	loader, err := frontend.ParseLoader(cfg.Frontend.Loader)
	if err != nil {
		return s, err
	}
	mode, err := frontend.ParsePackageMode(cfg.Frontend.PackageMode)
	if err != nil {
		return s, err
	}
	s.driver = driver.Options{
		AllowExpectError: cfg.Check.AllowExpectError,
		StrictTypeLines:  cfg.Check.StrictTypeLines,
		Frontend: frontend.Options{
			Loader:      loader,
			PackageMode: mode,
			Tags:        cfg.Frontend.Tags,
			GoVersion:   cfg.Frontend.GoVersion,
		},
	}
	if s.driver.Jobs, err = flags.GetInt("jobs"); err != nil {
		return s, err
	}

	colorFlag, err := cmd.Flags().GetString("color")
	if err != nil {
		return s, err
	}
	useColor, err := readColor(colorFlag)
	if err != nil {
		return s, err
	}
	s.format = cfg.Output.Format
	s.report = reportfmt.Options{NoLines: cfg.Output.NoLines, Verbose: cfg.Output.Verbose, Color: useColor}

	if s.cache, err = flags.GetBool("cache"); err != nil {
		return s, err
	}
	if s.watch, err = flags.GetBool("watch"); err != nil {
		return s, err
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return s, err
	}
	uiFlag, err := flags.GetString("ui")
	if err != nil {
		return s, err
	}
	if s.ui, err = readUIMode(uiFlag); err != nil {
		return s, err
	}
	return s, nil
}
