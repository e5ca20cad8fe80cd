package cmd

import (
	"fmt"

	"github.com/abdul-hamid-achik/unitspec/packages/registry"
	"github.com/abdul-hamid-achik/unitspec/packages/suite"
	"github.com/spf13/cobra"
)

var listTestsFlag bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered suites",
	Long:  `List the suites the host binary registered, with their test counts.`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, entry := range registry.Suites() {
			// Build into a muted suite just to enumerate the tests.
			s := suite.New(&suite.Config{
				Name: entry.Name,
				Sink: func(string, suite.Status) {},
			})
			entry.Build(s)

			names := s.TestNames()
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d tests)\n", entry.Name, len(names))
			if listTestsFlag {
				for _, name := range names {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
				}
			}
		}
	},
}

func init() {
	listCmd.Flags().BoolVarP(&listTestsFlag, "tests", "t", false, "Also list the tests inside each suite")
}
