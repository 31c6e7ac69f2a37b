package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fsargs/internal/host"
	"fsargs/internal/project"
	"fsargs/internal/report"
	"fsargs/internal/toolfind"
)

var errToolNotFound = errors.New("tool not found")

var toolCmd = &cobra.Command{
	Use:   "tool",
	Short: "Locate the compiler or the interactive shell",
	Args:  cobra.NoArgs,
	RunE:  runTool,
}

func init() {
	toolCmd.Flags().Bool("shell", false, "locate the interactive shell instead of the compiler")
	toolCmd.Flags().String("compiler-dir", "", "compiler install folder (default: manifest or platform default)")
	toolCmd.Flags().Bool("candidates", false, "list every probed location")
}

func runTool(cmd *cobra.Command, args []string) error {
	shell, _ := cmd.Flags().GetBool("shell")
	compilerDir, _ := cmd.Flags().GetString("compiler-dir")
	listCandidates, _ := cmd.Flags().GetBool("candidates")

	// The manifest is optional here; without one only PATH and the
	// install folder are searched.
	rt := host.New(project.RuntimeSpec{}, nil)
	if _, loaded, err := loadWorkspace(cmd); err == nil {
		rt = loaded
		if compilerDir == "" {
			compilerDir = loaded.CompilerDir()
		}
	} else if !errors.Is(err, errManifestNotFound) {
		return err
	}

	finder := toolfind.New(rt, os.Getenv("PATH"), compilerDir)
	names := toolfind.CompilerNames
	if shell {
		names = toolfind.ShellNames
	}

	out := cmd.OutOrStdout()
	if listCandidates {
		var rows [][]string
		for _, name := range names {
			for _, c := range finder.Candidates(name) {
				rows = append(rows, []string{c.Strategy, c.Tool.Path()})
			}
		}
		return report.Table(out, []string{"STRATEGY", "PATH"}, rows)
	}

	tool, err := locateTool(finder, shell)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, tool.Path())
	return err
}

// locateTool finds the compiler, or the interactive shell when shell is set.
func locateTool(finder *toolfind.Finder, shell bool) (toolfind.Tool, error) {
	find, names := finder.FindCompiler, toolfind.CompilerNames
	if shell {
		find, names = finder.FindShell, toolfind.ShellNames
	}
	tool, ok := find()
	if !ok {
		return toolfind.Tool{}, fmt.Errorf("%w: tried %v", errToolNotFound, names)
	}
	return tool, nil
}
