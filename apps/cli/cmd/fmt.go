package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/abdul-hamid-achik/unitspec/packages/sprintf"
	"github.com/spf13/cobra"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt <template> [args...]",
	Short: "Render a format template",
	Long: `Render a C-style format template against the given arguments.

Arguments that look numeric or boolean are coerced before formatting,
so width, precision, and the numeric directives behave as expected.

Examples:
  unitspec fmt "%05.2f" 3.14159
  unitspec fmt "%2$s %1$s" world hello`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		values := make([]any, 0, len(args)-1)
		for _, arg := range args[1:] {
			values = append(values, coerceArg(arg))
		}

		rendered, err := sprintf.Format(args[0], values...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Template error: %v\n", err)
			os.Exit(ExitTemplateError)
		}
		fmt.Fprintln(cmd.OutOrStdout(), rendered)
	},
}

// coerceArg maps a shell word onto the value kind it spells.
func coerceArg(arg string) any {
	if n, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(arg, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(arg); err == nil {
		return b
	}
	return arg
}
