package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"fsargs/internal/metadata"
	"fsargs/internal/portable"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <assembly>...",
	Short: "Show identity, references and portability of assemblies",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type assemblyInfo struct {
	Path            string   `json:"path"`
	Identity        string   `json:"identity,omitempty"`
	References      []string `json:"references,omitempty"`
	TargetFramework string   `json:"target_framework,omitempty"`
	Portable        bool     `json:"portable"`
	Outcome         string   `json:"outcome"`
	Error           string   `json:"error,omitempty"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	format = strings.ToLower(format)
	switch format {
	case "pretty", "json":
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}

	insp := metadata.FileInspector{}
	classifier := portable.Classifier{Inspector: insp}
	infos := make([]assemblyInfo, 0, len(args))
	for _, path := range args {
		infos = append(infos, inspectAssembly(insp, classifier, path))
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}
	for i, info := range infos {
		if i > 0 {
			fmt.Fprintln(out)
		}
		writeAssemblyInfo(out, info)
	}
	return nil
}

func inspectAssembly(insp metadata.Inspector, classifier portable.Classifier, path string) assemblyInfo {
	info := assemblyInfo{Path: path}
	outcome := classifier.Assembly(path)
	info.Portable = outcome.Portable()
	info.Outcome = outcome.String()

	name, err := insp.Identity(path)
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.Identity = name.FullName()
	if refs, err := insp.AssemblyReferences(path); err == nil {
		for _, r := range refs {
			info.References = append(info.References, r.FullName())
		}
	}
	if moniker, ok, err := insp.TargetFramework(path); err == nil && ok {
		info.TargetFramework = moniker
	}
	return info
}

func writeAssemblyInfo(out io.Writer, info assemblyInfo) {
	fmt.Fprintf(out, "%s\n", info.Path)
	if info.Error != "" {
		fmt.Fprintf(out, "  error:     %s\n", info.Error)
	}
	if info.Identity != "" {
		fmt.Fprintf(out, "  identity:  %s\n", info.Identity)
	}
	if info.TargetFramework != "" {
		fmt.Fprintf(out, "  framework: %s\n", info.TargetFramework)
	}
	fmt.Fprintf(out, "  portable:  %s\n", info.Outcome)
	for _, r := range info.References {
		fmt.Fprintf(out, "  ref        %s\n", r)
	}
}
