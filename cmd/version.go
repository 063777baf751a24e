package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/mcqgen/internal/selfupdate"
	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "mcqgen", version)

		check, _ := cmd.Flags().GetBool("check")
		if !check {
			return
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()
		res, err := selfupdate.NewChecker().Check(ctx, &selfupdate.CheckInput{Version: version})
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Could not check for updates:", err)
			return
		}
		if res.UpdateAvailable {
			fmt.Fprintf(cmd.OutOrStdout(), "A new version is available: %s (run: mcqgen update)\n", res.LatestVersion)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "You are running the latest version.")
		}
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "Check GitHub for a newer release")
}
