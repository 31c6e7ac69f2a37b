package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fsargs/internal/host"
	"fsargs/internal/project"
)

var errManifestNotFound = errors.New("no " + project.ManifestName + " found (use --manifest)")

// loadWorkspace reads the manifest named by --manifest or the nearest
// fsargs.toml above the working directory.
func loadWorkspace(cmd *cobra.Command) (*project.Workspace, *host.Runtime, error) {
	path, err := cmd.Root().PersistentFlags().GetString("manifest")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get manifest flag: %w", err)
	}
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		found, ok, err := project.FindManifest(cwd)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			return nil, nil, errManifestNotFound
		}
		path = found
	}
	ws, err := project.LoadWorkspace(path)
	if err != nil {
		return nil, nil, err
	}
	return ws, host.New(ws.Runtime, nil), nil
}

// selectProject picks the named project, or the only one.
func selectProject(ws *project.Workspace, name string) (*project.Project, error) {
	if name != "" {
		p, ok := ws.Find(name)
		if !ok {
			return nil, fmt.Errorf("unknown project %q (workspace has: %v)", name, ws.Names())
		}
		return p, nil
	}
	if len(ws.Projects) == 1 {
		return ws.Projects[0], nil
	}
	return nil, fmt.Errorf("workspace %q has %d projects, pass one of %v or --all", ws.Name, len(ws.Projects), ws.Names())
}
