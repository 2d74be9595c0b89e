package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ishant9805/portfolio/internal/portfolio"
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Print the profile extracted from an about-me document",
	Long: `extract reads an about-me document from file, or from stdin when no file
is given, and prints the resulting profile. If the document cannot be read the
canonical defaults are printed instead; --strict turns that into an error.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		strict, _ := cmd.Flags().GetBool("strict")

		in := cmd.InOrStdin()
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return extractFallback(cmd, format, strict, err)
			}
			defer f.Close()
			in = f
		}
		return runExtract(in, cmd.OutOrStdout(), format)
	},
}

func init() {
	extractCmd.Flags().StringP("format", "f", "json", "output format: json or yaml")
	extractCmd.Flags().Bool("strict", false, "fail instead of printing defaults when the document cannot be read")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(in io.Reader, out io.Writer, format string) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}
	return writeProfile(out, portfolio.Extract(string(data)), format)
}

func extractFallback(cmd *cobra.Command, format string, strict bool, readErr error) error {
	if strict {
		return readErr
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; printing defaults\n", readErr)
	return writeProfile(cmd.OutOrStdout(), portfolio.ExtractDefaults(), format)
}

func writeProfile(out io.Writer, p portfolio.Profile, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}
