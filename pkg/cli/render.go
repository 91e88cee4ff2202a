package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/getreportd/reportd/pkg/report"
)

var (
	renderType string
	renderData string
	renderOut  string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render extracted document content into report HTML",
	Long: `Render extracted document content into report HTML.

The input is the raw text produced by document extraction; it may surround
the JSON object with prose. Rendering never fails: content that cannot be
parsed or a type with no registered template produces a generic report.`,
	Example: `  # Render an inspection report to a file
  reportd render --type Inspection-Reports --data extraction.txt -o report.html

  # Render from stdin to stdout
  reportd render -t Disclosures -d - < extraction.txt`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	var raw []byte
	var err error
	if renderData == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(renderData)
	}
	if err != nil {
		return fmt.Errorf("failed to read extraction data: %w", err)
	}

	log := newLogger()
	surface := report.NewSurface(report.Options{Logger: log})
	result := surface.Render(renderType, string(raw))
	log.Info("report rendered",
		"docType", renderType,
		"templated", result.Templated,
		"renderId", result.RenderID)

	if renderOut == "" {
		fmt.Fprintln(cmd.OutOrStdout(), result.HTML)
		return nil
	}
	if err := os.WriteFile(renderOut, []byte(result.HTML), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func init() {
	renderCmd.Flags().StringVarP(&renderType, "type", "t", "", "Document type (see 'reportd types')")
	renderCmd.Flags().StringVarP(&renderData, "data", "d", "-", "Extraction output file, or - for stdin")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output file (default: stdout)")
	_ = renderCmd.MarkFlagRequired("type")
	rootCmd.AddCommand(renderCmd)
}
