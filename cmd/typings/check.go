package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"typings/internal/directive"
	"typings/internal/driver"
	"typings/internal/reportfmt"
)

const cacheApp = "typings"

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errors.New("no files given (usage: typings [flags] <file.go>...)")
	}
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	tr, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer tr.Close(cmd)

	if s.cache {
		cache, err := driver.OpenReportCache(cacheApp)
		if err != nil {
			return err
		}
		s.driver.Cache = cache
	}

	ctx := cmd.Context()
	if s.watch {
		return driver.Watch(ctx, args, s.driver, driver.WatchOptions{
			OnRun: func(run *driver.Run) {
				if err := printRun(cmd, run, s); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "typings: %v\n", err)
				}
			},
		})
	}

	var run *driver.Run
	if s.format == "pretty" && shouldUseTUI(s.ui) {
		run, err = runCheckWithUI(ctx, "checking", args, s.driver)
	} else {
		run, err = driver.CheckFiles(ctx, args, s.driver)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return exitError{code: 130}
		}
		return err
	}

	if err := printRun(cmd, run, s); err != nil {
		return err
	}
	if run.Fatal() != nil {
		tr.DumpRing(cmd)
	}
	if code := run.Summary().ExitCode(); code != 0 {
		return exitError{code: code}
	}
	return nil
}

// printRun writes the results of run in input order.
func printRun(cmd *cobra.Command, run *driver.Run, s checkSettings) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	results := make([]directive.Result, len(run.Outcomes))
	for i := range run.Outcomes {
		results[i] = run.Outcomes[i].Result
	}

	if s.format == "json" {
		if err := reportfmt.JSON(out, results, run.Summary()); err != nil {
			return err
		}
	} else {
		for _, res := range results {
			if err := reportfmt.Pretty(out, errOut, res, s.report); err != nil {
				return err
			}
		}
		if len(results) > 1 {
			if err := reportfmt.Summary(out, results, run.Summary(), s.report); err != nil {
				return err
			}
		}
	}

	if s.timings {
		printTimings(errOut, run)
	}
	return nil
}

func printTimings(w io.Writer, run *driver.Run) {
	for _, o := range run.Outcomes {
		printStageTimings(w, o)
	}
}
