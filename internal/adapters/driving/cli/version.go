package cli

import (
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// buildInfo describes the running binary.
type buildInfo struct {
	Version  string `json:"version"`
	Commit   string `json:"commit,omitempty"`
	Go       string `json:"go"`
	Platform string `json:"platform"`
}

func currentBuild() buildInfo {
	b := buildInfo{
		Version:  version,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				b.Commit = s.Value[:7]
			}
		}
	}
	return b
}

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print the version number",
	Annotations: map[string]string{skipSetup: "true"},
	RunE: func(cmd *cobra.Command, _ []string) error {
		b := currentBuild()
		if jsonOutput {
			return printJSON(cmd, b)
		}
		cmd.Printf("devsync version %s\n", b.Version)
		if b.Commit != "" {
			cmd.Printf("  commit:   %s\n", b.Commit)
		}
		cmd.Printf("  go:       %s\n  platform: %s\n", b.Go, b.Platform)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
