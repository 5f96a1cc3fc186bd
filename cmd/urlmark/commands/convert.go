package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/urlmark/urlmark/internal/output"
	"github.com/urlmark/urlmark/pkg/reader"
)

var convertCmd = &cobra.Command{
	Use:   "convert <url>",
	Short: "Convert a single URL to Markdown",
	Long: `Convert one URL and print the result.

Examples:
  # Full result as JSON
  urlmark convert https://example.com/post

  # Just the Markdown, into a file
  urlmark convert -o markdown -f post.md https://example.com/post`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("output", "o", "json", "output format: json, yaml, or markdown")
	convertCmd.Flags().StringP("file", "f", "", "write to file instead of stdout")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	formatFlag, _ := cmd.Flags().GetString("output")
	format, err := output.ParseFormat(formatFlag)
	if err != nil {
		logError("%v", err)
		return err
	}

	r := reader.New(readerConfig())
	result, err := r.Convert(context.Background(), args[0])
	if err != nil {
		logError("converting %s: %v", args[0], err)
		return err
	}

	out := os.Stdout
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		f, err := os.Create(file)
		if err != nil {
			logError("creating %s: %v", file, err)
			return err
		}
		defer f.Close()
		out = f
	}

	if err := output.Write(out, result, format); err != nil {
		logError("writing output: %v", err)
		return err
	}
	return nil
}
