package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"fsargs/internal/framework"
	"fsargs/internal/report"
)

var frameworksCmd = &cobra.Command{
	Use:   "frameworks",
	Short: "List the frameworks declared by the workspace runtime",
	Args:  cobra.NoArgs,
	RunE:  runFrameworks,
}

func runFrameworks(cmd *cobra.Command, args []string) error {
	_, rt, err := loadWorkspace(cmd)
	if err != nil {
		return err
	}
	selected, err := framework.Select(rt)
	if err != nil && !errors.Is(err, framework.ErrNoFrameworksInstalled) {
		return err
	}

	rows := make([][]string, 0, len(rt.Frameworks()))
	for _, fx := range rt.Frameworks() {
		mark := ""
		if err == nil && fx.Equal(selected) {
			mark = "*"
		}
		installed := "no"
		if rt.IsInstalled(fx) {
			installed = "yes"
		}
		rows = append(rows, []string{
			mark,
			fx.Moniker(),
			installed,
			strings.Join(rt.ReferenceDirectories(fx), ", "),
		})
	}
	return report.Table(cmd.OutOrStdout(), []string{"", "FRAMEWORK", "INSTALLED", "REFERENCE DIRS"}, rows)
}
