package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fsargs/internal/diag"
	"fsargs/internal/driver"
	"fsargs/internal/report"
)

var errDiagnostics = errors.New("resolution reported errors")

var argsCmd = &cobra.Command{
	Use:   "args [project]",
	Short: "Print the compiler arguments of a project",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runArgs,
}

func init() {
	argsCmd.Flags().String("config", "", "configuration name (default: workspace configuration)")
	argsCmd.Flags().Bool("quote", false, "quote path-valued arguments")
	argsCmd.Flags().String("format", "text", "output format (text|json|msgpack)")
	argsCmd.Flags().Bool("all", false, "compute every project of the workspace")
	argsCmd.Flags().Int("jobs", 0, "max parallel projects with --all (0=auto)")
	argsCmd.Flags().Bool("info", false, "show informational diagnostics")
	argsCmd.Flags().Bool("notes", false, "show diagnostic notes")
}

func runArgs(cmd *cobra.Command, args []string) (err error) {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer func() { cleanup(err != nil) }()

	flags := cmd.Flags()
	configuration, _ := flags.GetString("config")
	quote, _ := flags.GetBool("quote")
	formatStr, _ := flags.GetString("format")
	all, _ := flags.GetBool("all")
	jobs, _ := flags.GetInt("jobs")
	showInfo, _ := flags.GetBool("info")
	showNotes, _ := flags.GetBool("notes")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	timings, _ := cmd.Root().PersistentFlags().GetBool("timings")
	maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")

	format, err := report.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	ws, rt, err := loadWorkspace(cmd)
	if err != nil {
		return err
	}
	if configuration == "" {
		configuration = ws.DefaultConfiguration
	}

	base := driver.Context{
		Workspace:      ws,
		Configuration:  configuration,
		Runtime:        rt,
		Wrap:           quote,
		MaxDiagnostics: maxDiagnostics,
	}

	var (
		results   []*driver.Result
		workspace *diag.Bag
	)
	if all {
		out, err := driver.ComputeWorkspace(cmd.Context(), base, jobs)
		if err != nil {
			return err
		}
		results, workspace = out.Results, out.Diagnostics
	} else {
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		p, err := selectProject(ws, name)
		if err != nil {
			return err
		}
		res, err := driver.Compute(cmd.Context(), base.ForProject(p))
		if err != nil {
			return err
		}
		results = []*driver.Result{res}
	}

	bags := []*diag.Bag{workspace}
	for _, r := range results {
		r.Diagnostics.Sort()
		bags = append(bags, r.Diagnostics)
	}

	opts := report.Options{
		Format:      format,
		Color:       useColor(cmd, os.Stdout),
		Timings:     timings,
		Notes:       showNotes,
		MinSeverity: diag.SevWarning,
	}
	if showInfo {
		opts.MinSeverity = diag.SevInfo
	}
	if err := report.WriteResults(cmd.OutOrStdout(), results, workspace, opts); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	if format == report.FormatText {
		stderr := cmd.ErrOrStderr()
		if !quiet {
			errOpts := opts
			errOpts.Color = useColor(cmd, os.Stderr)
			if err := report.WriteDiagnostics(stderr, bags, errOpts); err != nil {
				return err
			}
			if summary := report.Summary(bags); summary != "" {
				fmt.Fprintln(stderr, report.SummaryLine(summary, errOpts.Color))
			}
		}
		if timings {
			if err := report.WriteTimings(stderr, results); err != nil {
				return err
			}
		}
	}

	for _, bag := range bags {
		if bag != nil && bag.HasErrors() {
			return errDiagnostics
		}
	}
	return nil
}
