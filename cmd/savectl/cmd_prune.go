package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bryanwahyu/factory-save-analyzer/internal/infra/storage"
)

var pruneFlags struct {
	keep int
}

var pruneCmd = &cobra.Command{
	Use:   "prune --keep N",
	Short: "Delete the oldest archives until at most N remain",
	Args:  cobra.NoArgs,
	RunE:  runPrune,
}

func init() {
	pruneCmd.Flags().IntVar(&pruneFlags.keep, "keep", -1, "Number of newest archives to keep")
	_ = pruneCmd.MarkFlagRequired("keep")
}

func runPrune(cmd *cobra.Command, _ []string) error {
	res, err := storage.NewLocal(settings.root).EnforceRetention(cmd.Context(), pruneFlags.keep)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, name := range res.Deleted {
		fmt.Fprintf(out, "deleted %s\n", name)
	}
	fmt.Fprintf(out, "%d -> %d archives in %s (%d failed)\n", res.Before, res.After, settings.root, res.Failed)
	return nil
}
