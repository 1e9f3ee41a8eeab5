package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

const Version = "0.1.0"

// GitCommit is set with -ldflags "-X main.GitCommit=<sha>". When empty the
// vcs revision recorded by the go tool is used instead.
var GitCommit string

type versionArguments struct {
	Long bool
}

var versionArgs versionArguments

func init() {
	versionCmd.Flags().BoolVarP(&versionArgs.Long, "long", "l", false, "print commit, go version and module path")
}

var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Print the futdao build",
	Aliases: []string{"V"},
	Args:    cobra.NoArgs,
	Run:     versionRun,
}

// VersionWithCommit appends the first 8 characters of gitCommit, if it has
// that many.
func VersionWithCommit(gitCommit string) string {
	if len(gitCommit) < 8 {
		return Version
	}
	return Version + "-" + gitCommit[:8]
}

type buildInfo struct {
	Commit    string
	Modified  bool
	GoVersion string
	Module    string
}

func readBuildInfo() buildInfo {
	bi := buildInfo{Commit: GitCommit, GoVersion: runtime.Version()}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return bi
	}
	bi.Module = info.Main.Path
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if bi.Commit == "" {
				bi.Commit = s.Value
			}
		case "vcs.modified":
			bi.Modified = s.Value == "true"
		}
	}
	return bi
}

func versionRun(cmd *cobra.Command, args []string) {
	bi := readBuildInfo()
	vsn := VersionWithCommit(bi.Commit)
	if bi.Modified {
		vsn += "-dirty"
	}
	if !versionArgs.Long {
		fmt.Fprintln(cmd.OutOrStdout(), vsn)
		return
	}
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendRows([]table.Row{
		{labelStyle.Sprint("Version"), vsn},
		{labelStyle.Sprint("Commit"), bi.Commit},
		{labelStyle.Sprint("Go"), bi.GoVersion},
		{labelStyle.Sprint("Module"), bi.Module},
	})
	fmt.Fprintln(cmd.OutOrStdout(), t.Render())
}
