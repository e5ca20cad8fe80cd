package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/abdul-hamid-achik/unitspec/packages/history"
	"github.com/spf13/cobra"
)

var historyLimitFlag int

var historyCmd = &cobra.Command{
	Use:   "history <file>",
	Short: "Show recent runs from a history database",
	Long: `Show recent suite runs recorded with --history, newest first.

Examples:
  unitspec history runs.db
  unitspec history runs.db --limit 5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			os.Exit(ExitConfigError)
		}
		defer store.Close()

		records, err := store.Recent(historyLimitFlag)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No recorded runs.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "STARTED\tSUITE\tPASSED\tFAILED\tDURATION\tID")
		for _, rec := range records {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%dms\t%s\n",
				rec.StartedAt.Format("2006-01-02 15:04:05"),
				rec.Suite, rec.Passed, rec.Failed,
				rec.Duration.Milliseconds(), rec.ID)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimitFlag, "limit", "l", 20, "Maximum number of runs to show")
}
