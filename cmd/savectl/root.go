package main

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bryanwahyu/factory-save-analyzer/internal/config"
	"github.com/bryanwahyu/factory-save-analyzer/internal/domain/saves"
	"github.com/bryanwahyu/factory-save-analyzer/internal/infra/codec"
	"github.com/bryanwahyu/factory-save-analyzer/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
	root       string
	codec      string
	logLevel   string
}

var rootCmd = &cobra.Command{
	Use:   "savectl",
	Short: "Inspect and maintain factory save archives",
	Long: `savectl works directly on save archives and the storage root used by the
API server, without going through HTTP.

Settings come from --config (same file as the server), then environment
(STORAGE_ROOT, CODEC_COMMAND, .env is read if present), then flags.`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// newCodec is swapped in tests.
var newCodec = func(command []string) (saves.HeaderCodec, error) {
	return codec.NewExec(command, nil)
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&rootFlags.configPath, "config", "", "Path to config.yaml (optional)")
	f.StringVar(&rootFlags.root, "root", "", "Storage root directory")
	f.StringVar(&rootFlags.codec, "codec", "", "Header decoder command line")
	f.StringVar(&rootFlags.logLevel, "log-level", "warn", "Log level")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.Version = version
}

// settings resolved by setup
var settings struct {
	root  string
	codec []string
}

func setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	logging.Init(logging.Config{Level: rootFlags.logLevel, Format: "console", Output: cmd.ErrOrStderr()})

	settings.root = "./data/saves"
	settings.codec = nil
	if rootFlags.configPath != "" {
		cfg, err := config.Load(rootFlags.configPath)
		if err != nil {
			return err
		}
		settings.root = cfg.Storage.Root
		settings.codec = cfg.Codec.Command
	}
	if v := os.Getenv("STORAGE_ROOT"); v != "" {
		settings.root = v
	}
	if v := os.Getenv("CODEC_COMMAND"); v != "" {
		settings.codec = strings.Fields(v)
	}
	if rootFlags.root != "" {
		settings.root = rootFlags.root
	}
	if rootFlags.codec != "" {
		settings.codec = strings.Fields(rootFlags.codec)
	}
	return nil
}
