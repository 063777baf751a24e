package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete logged LLM requests",
	Long: `Delete entries from the local LLM request log.

By default every entry is removed. Use --older-than to keep recent ones.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		olderThan, _ := cmd.Flags().GetDuration("older-than")
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("refusing to delete without --yes")
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		var before time.Time
		if olderThan > 0 {
			before = time.Now().Add(-olderThan)
		}
		n, err := s.PurgeLLMEvents(cmd.Context(), before)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d LLM events.\n", n)
		return nil
	},
}

func init() {
	resetCmd.Flags().Duration("older-than", 0, "Only delete entries older than this (e.g. 720h)")
	resetCmd.Flags().BoolP("yes", "y", false, "Confirm deletion")
}
