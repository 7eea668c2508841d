package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resumelyze/internal/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a résumé against a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("resume", "r", "", "résumé text file, - for stdin")
	analyzeCmd.Flags().String("jd", "", "job description text file, - for stdin")
	analyzeCmd.Flags().StringP("format", "o", report.FormatJSON, "output format: json or text")

	analyzeCmd.MarkFlagRequired("resume")
	analyzeCmd.MarkFlagRequired("jd")
}

func analyze(cmd *cobra.Command) {
	ctx := context.Background()

	d := setup(ctx)
	defer d.finish()

	resume, jd := readPair(d, cmd)

	result, err := d.analyzer.Analyze(ctx, resume, jd)
	if err != nil {
		d.logger.Fatal("analysis failed", zap.Error(err))
	}

	format, _ := cmd.Flags().GetString("format")
	if err := report.Write(os.Stdout, format, result); err != nil {
		d.logger.Fatal("writing report", zap.Error(err))
	}
}

// readPair reads the --resume and --jd inputs. Only one of them may be stdin.
func readPair(d *deps, cmd *cobra.Command) (resume, jd string) {
	resumePath, _ := cmd.Flags().GetString("resume")
	jdPath, _ := cmd.Flags().GetString("jd")

	if resumePath == stdinPath && jdPath == stdinPath {
		d.logger.Fatal("only one of --resume and --jd can be read from stdin")
	}

	resume, err := readInput(resumePath)
	if err != nil {
		d.logger.Fatal("reading résumé", zap.Error(err))
	}
	jd, err = readInput(jdPath)
	if err != nil {
		d.logger.Fatal("reading job description", zap.Error(err))
	}
	return resume, jd
}
