package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resumelyze/internal/report"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Categorise the skills a job description asks for",
	Run: func(cmd *cobra.Command, _ []string) {
		skills(cmd)
	},
}

func init() {
	rootCmd.AddCommand(skillsCmd)

	skillsCmd.Flags().String("jd", "", "job description text file, - for stdin")
	skillsCmd.Flags().StringP("resume", "r", "", "optional résumé text file to match against")
	skillsCmd.Flags().String("role", "", "role title to report")

	skillsCmd.MarkFlagRequired("jd")
}

func skills(cmd *cobra.Command) {
	ctx := context.Background()

	d := setup(ctx)
	defer d.finish()

	jdPath, _ := cmd.Flags().GetString("jd")
	jd, err := readInput(jdPath)
	if err != nil {
		d.logger.Fatal("reading job description", zap.Error(err))
	}

	var resume string
	if path, _ := cmd.Flags().GetString("resume"); path != "" {
		if resume, err = readInput(path); err != nil {
			d.logger.Fatal("reading résumé", zap.Error(err))
		}
	}

	role, _ := cmd.Flags().GetString("role")
	result, err := d.analyzer.ScoreSkills(ctx, jd, resume, role)
	if err != nil {
		d.logger.Fatal("scoring skills", zap.Error(err))
	}

	if err := report.Write(os.Stdout, report.FormatJSON, result); err != nil {
		d.logger.Fatal("writing result", zap.Error(err))
	}
}
