package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resumelyze/internal/report"
)

// Actual version can be specified in build command.
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and, with --models, the scoring strategies in use",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Printf("%s version: %s\n", app, version)

		if models, _ := cmd.Flags().GetBool("models"); models {
			printModels()
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().Bool("models", false, "load the configured models and print which strategy each scorer uses")
}

func printModels() {
	ctx := context.Background()

	d := setup(ctx)
	defer d.finish()

	d.store.Warmup(ctx)
	if err := report.Write(os.Stdout, report.FormatJSON, d.store.Status()); err != nil {
		d.logger.Fatal("writing model status", zap.Error(err))
	}
}
