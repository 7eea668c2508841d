package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resumelyze/internal/ranking"
	"github.com/spigell/resumelyze/internal/report"
)

const (
	PromptDone                = "Done"
	PromptBack                = "back"
	PromptShowReport          = "Show the report of a résumé"
	PromptDescribeFilters     = "Describe filters"
	PromptAppendToExcludeFile = "Append all résumés to exclude file"
	PromptRankingToFile       = "Dump ranking to file"
)

var errExit = errors.New("exit requested")

var rankCmd = &cobra.Command{
	Use:   "rank [flags] RESUME...",
	Short: "Rank many résumés against one job description",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rank(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().String("jd", "", "job description text file, - for stdin")
	rankCmd.Flags().Int("min-score", 0, "drop résumés whose JD match is below this score")
	rankCmd.Flags().String("min-grade", "", "drop résumés graded below this letter")
	rankCmd.Flags().StringSlice("require", nil, "keywords every ranked résumé must mention")
	rankCmd.Flags().Int("workers", 0, "concurrent analyses, 0 means one per CPU")
	rankCmd.Flags().StringP("exclude-file", "e", "", "yaml file with résumés to skip")
	rankCmd.Flags().StringSlice("skip", nil, "filters to disable, see the describe filters menu item for names")
	rankCmd.Flags().StringP("format", "o", report.FormatText, "output format: text or json")
	rankCmd.Flags().BoolP("auto-approve", "y", false, "do not show the interactive menu after ranking")

	rankCmd.MarkFlagRequired("jd")

	viper.BindPFlag("rank.minimum-score", rankCmd.Flags().Lookup("min-score"))
	viper.BindPFlag("rank.minimum-grade", rankCmd.Flags().Lookup("min-grade"))
	viper.BindPFlag("rank.required-keywords", rankCmd.Flags().Lookup("require"))
	viper.BindPFlag("rank.workers", rankCmd.Flags().Lookup("workers"))
	viper.BindPFlag("rank.exclude-file", rankCmd.Flags().Lookup("exclude-file"))
	viper.BindPFlag("rank.skip-filters", rankCmd.Flags().Lookup("skip"))
}

func rank(cmd *cobra.Command, paths []string) {
	ctx := context.Background()

	d := setup(ctx)
	defer d.finish()

	jdPath, _ := cmd.Flags().GetString("jd")
	jd, err := readInput(jdPath)
	if err != nil {
		d.logger.Fatal("reading job description", zap.Error(err))
	}

	steps := ranking.DefaultSteps()
	if err := ranking.Skip(steps, d.config.Rank.SkipFilters, "skipped by configuration"); err != nil {
		d.logger.Fatal("disabling filters", zap.Error(err))
	}

	docs, err := ranking.ReadDocuments(paths)
	if err != nil {
		d.logger.Fatal("reading résumés", zap.Error(err))
	}

	d.logger.Info("starting the ranking", zap.Int("resumes", len(docs)), zap.String("version", version))
	d.store.Warmup(ctx)
	d.logger.Debug("models ready", zap.Any("models", d.store.Status()))

	candidates, err := ranking.Analyze(ctx, d.analyzer, jd, docs, d.config.Rank.Workers, d.logger)
	if err != nil {
		d.logger.Fatal("analysing résumés", zap.Error(err))
	}

	candidates, err = ranking.Run(ctx, d.config.Rank, ranking.Deps{Logger: d.logger, Metrics: d.metrics}, steps, candidates)
	if err != nil {
		d.logger.Fatal("filtering failed", zap.Error(err))
	}

	if candidates.Len() == 0 {
		d.logger.Info("exiting", zap.String("reason", "no résumés left after filters"))
		return
	}

	candidates.Sort()

	format, _ := cmd.Flags().GetString("format")
	if err := writeRanking(format, candidates); err != nil {
		d.logger.Fatal("writing ranking", zap.Error(err))
	}

	autoApprove, _ := cmd.Flags().GetBool("auto-approve")
	if autoApprove || !isTerminal(os.Stdin) {
		return
	}

	menu := promptui.Select{
		Label: "What next?",
		Items: menuItems(d.config.Rank.ExcludeFile),
	}
	for candidates.Len() > 0 {
		_, action, err := menu.Run()
		if err != nil {
			d.logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, d, steps, candidates); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			d.logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func menuItems(excludeFile string) []string {
	items := []string{PromptDone, PromptShowReport, PromptDescribeFilters, PromptRankingToFile}
	if strings.TrimSpace(excludeFile) != "" {
		items = append(items, PromptAppendToExcludeFile)
	}
	return items
}

func writeRanking(format string, c *ranking.Candidates) error {
	if strings.EqualFold(strings.TrimSpace(format), report.FormatText) {
		return c.WriteText(os.Stdout)
	}
	return report.Write(os.Stdout, format, c)
}

func handleAction(action string, d *deps, steps []ranking.Filter, candidates *ranking.Candidates) error {
	switch action {
	case PromptDone:
		d.logger.Info("exiting", zap.String("reason", "done"))
		return errExit
	case PromptShowReport:
		return showReport(candidates)
	case PromptDescribeFilters:
		return report.Write(os.Stdout, report.FormatJSON, ranking.Describe(steps))
	case PromptRankingToFile:
		filename, err := candidates.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump ranking to file: %w", err)
		}
		d.logger.Info("dumping ranking to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		return appendToExcludeFile(d, candidates)
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func showReport(candidates *ranking.Candidates) error {
	items := make([]string, 0, candidates.Len()+1)
	for _, c := range candidates.Items {
		items = append(items, c.Name)
	}

	resumePrompt := promptui.Select{
		Label: "Choose a résumé and press ENTER",
		Items: append(items, PromptBack),
	}

	_, selected, err := resumePrompt.Run()
	if err != nil {
		return err
	}
	if selected == PromptBack {
		return nil
	}

	candidate := candidates.FindByName(selected)
	if candidate == nil {
		return fmt.Errorf("there is no such résumé %s", selected)
	}
	return report.WriteText(os.Stdout, candidate.Report)
}

func appendToExcludeFile(d *deps, candidates *ranking.Candidates) error {
	path := d.config.Rank.ExcludeFile

	excluded, err := ranking.LoadExcluded(path)
	if err != nil {
		return err
	}

	excluded.Append(candidates.ToExcluded())
	if err := excluded.ToFile(path); err != nil {
		return err
	}

	d.logger.Info("appended to exclude file", zap.String("filename", path))

	candidates.Exclude(excluded.Matches)
	return nil
}
