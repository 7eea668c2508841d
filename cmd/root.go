package cmd

import (
	"errors"
	"io/fs"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/resumelyze/internal/analyzer"
	"github.com/spigell/resumelyze/internal/ranking"
	"github.com/spigell/resumelyze/internal/semantic"
)

const (
	app = "resumelyze"

	envPrefix = "RESUMELYZE"
)

type Config struct {
	Analysis  *AnalysisConfig  `mapstructure:"analysis"`
	Models    *ModelsConfig    `mapstructure:"models"`
	Embedding *EmbeddingConfig `mapstructure:"embedding"`
	AI        *AIConfig        `mapstructure:"ai"`
	Rank      *ranking.Config  `mapstructure:"rank"`
	Metrics   *MetricsConfig   `mapstructure:"metrics"`
}

type AnalysisConfig struct {
	MinResumeLength  int     `mapstructure:"min-resume-length"`
	MinJDLength      int     `mapstructure:"min-jd-length"`
	KeywordThreshold float64 `mapstructure:"keyword-threshold"`
	MaxImprovements  int     `mapstructure:"max-improvements"`
}

type ModelsConfig struct {
	Dir string `mapstructure:"dir"`
}

type EmbeddingConfig struct {
	Provider   string                 `mapstructure:"provider"`
	Dimensions int                    `mapstructure:"dimensions"`
	Gemini     *GeminiEmbeddingConfig `mapstructure:"gemini"`
}

type GeminiEmbeddingConfig struct {
	Model string `mapstructure:"model"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
	Prompt   *PromptConfig `mapstructure:"prompt"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type PromptConfig struct {
	TargetRole       string `mapstructure:"target-role"`
	Seniority        string `mapstructure:"seniority"`
	FocusAreas       string `mapstructure:"focus-areas"`
	UserInstructions string `mapstructure:"user-instructions"`
}

type MetricsConfig struct {
	File string `mapstructure:"file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resumelyze scores résumés against job descriptions",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resumelyze.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	setDefaults()
}

func setDefaults() {
	viper.SetDefault("analysis.min-resume-length", analyzer.DefaultMinResumeLength)
	viper.SetDefault("analysis.min-jd-length", analyzer.DefaultMinJDLength)
	viper.SetDefault("analysis.keyword-threshold", analyzer.DefaultKeywordThreshold)
	viper.SetDefault("analysis.max-improvements", analyzer.DefaultMaxImprovements)

	viper.SetDefault("models.dir", "")

	viper.SetDefault("embedding.provider", providerLocal)
	viper.SetDefault("embedding.dimensions", semantic.DefaultDimensions)
	viper.SetDefault("embedding.gemini.model", "gemini-embedding-001")

	viper.SetDefault("ai.enabled", false)
	viper.SetDefault("ai.provider", providerGemini)
	viper.SetDefault("ai.gemini.api-key", "")
	viper.SetDefault("ai.gemini.api-key-file", "")
	viper.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	viper.SetDefault("ai.gemini.max-retries", 3)
	viper.SetDefault("ai.gemini.max-log-length", 2000)
	viper.SetDefault("ai.prompt.target-role", "")
	viper.SetDefault("ai.prompt.seniority", "")
	viper.SetDefault("ai.prompt.focus-areas", "")
	viper.SetDefault("ai.prompt.user-instructions", "")

	viper.SetDefault("rank.minimum-score", 0)
	viper.SetDefault("rank.minimum-grade", "")
	viper.SetDefault("rank.required-keywords", []string{})
	viper.SetDefault("rank.exclude-file", "")
	viper.SetDefault("rank.workers", 0)
	viper.SetDefault("rank.skip-filters", []string{})

	viper.SetDefault("metrics.file", "")
}

func initConfig() {
	// .env is optional, values already in the environment win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional, but one that exists must parse.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
