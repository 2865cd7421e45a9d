package main

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print module build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info, ok := debug.ReadBuildInfo()
			if !ok {
				printInfo("build info unavailable")
				return nil
			}
			printInfo("module:  %s", info.Main.Path)
			printInfo("version: %s", info.Main.Version)
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					printInfo("commit:  %s", s.Value)
				case "vcs.time":
					printInfo("date:    %s", s.Value)
				}
			}
			return nil
		},
	}
}
