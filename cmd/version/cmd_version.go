package version

import (
	"fmt"

	"github.com/asgkit/asgkit/internal/build_info"
	"github.com/spf13/cobra"
)

func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version, commit, and build date information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Version: %s\n", build_info.Version)
			fmt.Fprintf(out, "Commit:  %s\n", build_info.Commit)
			fmt.Fprintf(out, "Date:    %s\n", build_info.Date)
		},
	}
}
