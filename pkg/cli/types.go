package cli

import (
	"fmt"

	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/getreportd/reportd/pkg/registry"
)

var typesJSON bool

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List document types with a registered report template",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		types := registry.Types()
		if typesJSON {
			fmt.Fprintln(cmd.OutOrStdout(), oj.JSON(types))
			return nil
		}
		for _, t := range types {
			fmt.Fprintln(cmd.OutOrStdout(), t)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "reportd %s (commit %s, built %s)\n", Version, Commit, BuildDate)
	},
}

func init() {
	typesCmd.Flags().BoolVar(&typesJSON, "json", false, "Output as a JSON array")
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(versionCmd)
}
