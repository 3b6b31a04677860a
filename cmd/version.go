package cmd

import (
	"fmt"
	"runtime/debug"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/sqlquest/internal/progress"
	"github.com/abhisek/sqlquest/internal/ui/theme"
)

// version is set with -ldflags "-X github.com/abhisek/sqlquest/cmd.version=v1.2.3".
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build details",
	Run: func(cmd *cobra.Command, args []string) {
		short, _ := cmd.Flags().GetBool("short")
		if short {
			fmt.Println(version)
			return
		}
		lipgloss.Println("sqlquest " + version)
		for _, kv := range buildDetails() {
			lipgloss.Println(theme.Hint.Render(fmt.Sprintf("  %-16s", kv[0])) + kv[1])
		}
	},
}

// buildDetails lists the Go toolchain, the VCS stamp when the binary was
// built from a checkout, and the progress record version it reads.
func buildDetails() [][2]string {
	out := [][2]string{{"progress format", progress.RecordVersion}}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}
	out = append(out, [2]string{"go", info.GoVersion})
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if len(s.Value) > 12 {
				s.Value = s.Value[:12]
			}
			out = append(out, [2]string{"commit", s.Value})
		case "vcs.time":
			out = append(out, [2]string{"built", s.Value})
		case "vcs.modified":
			if s.Value == "true" {
				out = append(out, [2]string{"dirty", "yes"})
			}
		}
	}
	return out
}

func init() {
	versionCmd.Flags().Bool("short", false, "Print only the version")
}
