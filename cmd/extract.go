package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resumelyze/internal/extract"
	"github.com/spigell/resumelyze/internal/report"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract structured fields from a résumé",
	Run: func(cmd *cobra.Command, _ []string) {
		extractProfile(cmd)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("resume", "r", "", "résumé text file, - for stdin")
	extractCmd.MarkFlagRequired("resume")
}

func extractProfile(cmd *cobra.Command) {
	logger := newLogger()
	defer logger.Sync()

	path, _ := cmd.Flags().GetString("resume")
	text, err := readInput(path)
	if err != nil {
		logger.Fatal("reading résumé", zap.Error(err))
	}

	profile := extract.New().Extract(text)
	logger.Debug("résumé extracted",
		zap.String("name", profile.FullName),
		zap.Int("skills", len(profile.Skills)),
		zap.Int("experience", len(profile.Experience)),
	)

	if err := report.Write(os.Stdout, report.FormatJSON, profile); err != nil {
		logger.Fatal("writing profile", zap.Error(err))
	}
}
