package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"irkit/internal/inspect"
	"irkit/internal/observ"
	"irkit/internal/report"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] [fixtures...]",
	Short: "Classify every value of one or more fixtures",
	Long: `Load each fixture (.toml, .yaml, .yml) or snapshot (.irk) into its own
native context and report how each of the four value-set classifiers treats
every value. Without arguments the fixtures listed in irkit.toml are used.`,
	RunE: inspectExecution,
}

func init() {
	inspectCmd.Flags().String("format", "", "output format (pretty|json); defaults to irkit.toml or pretty")
	inspectCmd.Flags().Int("jobs", 0, "max parallel loads (0=auto)")
	inspectCmd.Flags().String("ui", "auto", "user interface (auto|on|off)")
	inspectCmd.Flags().Bool("reasons", false, "list why each set rejected a value")
}

// errInspectFailed signals that some sources failed after the report was
// already printed.
var errInspectFailed = errors.New("inspection failed")

func inspectExecution(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	reasons, err := cmd.Flags().GetBool("reasons")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}
	mode, err := parseUIMode(uiValue)
	if err != nil {
		return err
	}

	cfg, haveConfig, err := configForInspect(".", args)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("format") {
		format = cfg.Inspect.Format
	}
	format = strings.ToLower(format)
	if format == "" {
		format = "pretty"
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
	if !cmd.Flags().Changed("jobs") {
		jobs = cfg.Inspect.Jobs
	}

	sources := args
	if len(sources) == 0 {
		if !haveConfig {
			return fmt.Errorf("no fixtures given and no %s found", configFileName)
		}
		if sources, err = cfg.fixtures(); err != nil {
			return err
		}
		if len(sources) == 0 {
			return fmt.Errorf("%s: [inspect].fixtures is empty", cfg.Path)
		}
	}

	timer := observ.NewTimer()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	opts := inspect.Options{Jobs: jobs}

	var rep *inspect.Report
	err = timer.Measure("inspect", func() error {
		var runErr error
		if progressView(mode, format, quiet(cmd), os.Stdout) {
			rep, runErr = runInspectWithUI(ctx, "irkit inspect", sources, opts)
		} else {
			rep, runErr = inspect.Run(ctx, sources, opts)
		}
		return runErr
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	err = timer.Measure("render", func() error {
		if format == "json" {
			return report.WriteJSON(out, rep)
		}
		return report.WritePretty(out, rep, report.Options{Color: useColor(), Reasons: reasons})
	})
	if err != nil {
		return err
	}
	if showTimings {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}
	if rep.Failed() {
		return errInspectFailed
	}
	return nil
}
