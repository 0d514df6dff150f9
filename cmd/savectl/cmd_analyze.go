package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/bryanwahyu/factory-save-analyzer/internal/domain/analysis"
	"github.com/bryanwahyu/factory-save-analyzer/internal/infra/archive"
)

var analyzeFlags struct {
	compact bool
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.zip>",
	Short: "Decode a save archive and print its report as JSON",
	Long: `Decode a local save archive through the configured header decoder and
print the analysis report. The file is read in place; nothing is stored.

Usage:
  savectl analyze ./my-base.zip
  savectl analyze --codec "factorio-header --json" ./my-base.zip`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeFlags.compact, "compact", false, "Print single-line JSON")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if len(settings.codec) == 0 {
		return errors.New("no header decoder configured: set --codec, CODEC_COMMAND or codec.command in --config")
	}
	c, err := newCodec(settings.codec)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	save, err := archive.NewDecoder(c).Decode(cmd.Context(), data)
	if err != nil {
		return err
	}
	out, err := analysis.Analyze(*save)
	if err != nil {
		return err
	}

	var b []byte
	if analyzeFlags.compact {
		b, err = json.Marshal(out.Report())
	} else {
		b, err = json.MarshalIndent(out.Report(), "", "  ")
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}
