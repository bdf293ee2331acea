package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// AddVersionCommand adds the version command to the root command.
func AddVersionCommand(root *cobra.Command, info BuildInfo) {
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "teamcal %s %s/%s\n", formatVersion(info), runtime.GOOS, runtime.GOARCH)
			return err
		},
	})
}
