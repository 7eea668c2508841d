package cmd

import (
	"context"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resumelyze/internal/coverletter"
	"github.com/spigell/resumelyze/internal/report"
)

var coverLetterCmd = &cobra.Command{
	Use:   "cover-letter",
	Short: "Draft a cover letter from a résumé and a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		coverLetter(cmd)
	},
}

func init() {
	rootCmd.AddCommand(coverLetterCmd)

	coverLetterCmd.Flags().StringP("resume", "r", "", "résumé text file, - for stdin")
	coverLetterCmd.Flags().String("jd", "", "job description text file, - for stdin")
	coverLetterCmd.Flags().String("tone", "", "professional, creative or conversational (asked for when omitted on a terminal)")
	coverLetterCmd.Flags().String("company", "", "company name")
	coverLetterCmd.Flags().String("role", "", "role title")
	coverLetterCmd.Flags().StringP("format", "o", report.FormatText, "output format: text or json")

	coverLetterCmd.MarkFlagRequired("resume")
	coverLetterCmd.MarkFlagRequired("jd")
}

func coverLetter(cmd *cobra.Command) {
	ctx := context.Background()

	d := setup(ctx)
	defer d.finish()

	resume, jd := readPair(d, cmd)

	tone, _ := cmd.Flags().GetString("tone")
	if tone == "" && isTerminal(os.Stdin) {
		var err error
		if tone, err = selectTone(); err != nil {
			d.logger.Fatal("exiting", zap.Error(err))
		}
	}

	company, _ := cmd.Flags().GetString("company")
	role, _ := cmd.Flags().GetString("role")

	letter, err := d.analyzer.CoverLetter(coverletter.Request{
		Resume:         resume,
		JobDescription: jd,
		Tone:           tone,
		Company:        company,
		Role:           role,
	})
	if err != nil {
		d.logger.Fatal("building cover letter", zap.Error(err))
	}

	format, _ := cmd.Flags().GetString("format")
	if format == report.FormatText {
		if _, err := os.Stdout.WriteString(letter.Text + "\n"); err != nil {
			d.logger.Fatal("writing cover letter", zap.Error(err))
		}
		return
	}
	if err := report.Write(os.Stdout, format, letter); err != nil {
		d.logger.Fatal("writing cover letter", zap.Error(err))
	}
}

func selectTone() (string, error) {
	tones := coverletter.Tones()
	items := make([]string, 0, len(tones))
	for _, t := range tones {
		items = append(items, string(t))
	}

	prompt := promptui.Select{
		Label: "Choose a tone",
		Items: items,
	}
	_, tone, err := prompt.Run()
	return tone, err
}
