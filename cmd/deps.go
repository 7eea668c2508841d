package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resumelyze/internal/ai"
	"github.com/spigell/resumelyze/internal/ai/gemini"
	"github.com/spigell/resumelyze/internal/analyzer"
	"github.com/spigell/resumelyze/internal/logger"
	"github.com/spigell/resumelyze/internal/metrics"
	"github.com/spigell/resumelyze/internal/modelstore"
	"github.com/spigell/resumelyze/internal/secrets"
	"github.com/spigell/resumelyze/internal/semantic"
)

const (
	providerLocal  = "local"
	providerGemini = "gemini"

	geminiAPIKeyEnv = "GEMINI_API_KEY"
	stdinPath       = "-"
)

// deps is what every command needs: the parsed config, a logger, metrics and
// an analyzer wired to them.
type deps struct {
	config   *Config
	logger   *zap.Logger
	metrics  *metrics.Metrics
	store    *modelstore.Store
	analyzer *analyzer.Analyzer
}

func newLogger() *zap.Logger {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return logger
}

func setup(ctx context.Context) *deps {
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}
	if config == nil {
		logger.Fatal("config is required")
	}

	logger.Debug("starting", zap.String("version", version), zap.Any("config", redacted(config)))

	m := metrics.New()

	store, err := newStore(ctx, config, logger, m)
	if err != nil {
		logger.Fatal("preparing models", zap.Error(err))
	}

	opts := []analyzer.Option{
		analyzer.WithLogger(logger),
		analyzer.WithMetrics(m),
		analyzer.WithOptions(analyzer.Options{
			MinResumeLength:  config.Analysis.MinResumeLength,
			MinJDLength:      config.Analysis.MinJDLength,
			KeywordThreshold: config.Analysis.KeywordThreshold,
			MaxImprovements:  config.Analysis.MaxImprovements,
		}),
	}

	enhancer, err := newEnhancer(ctx, config.AI, logger)
	switch {
	case err != nil:
		logger.Warn("skipping AI enhancement", zap.Error(err))
	case enhancer != nil:
		opts = append(opts, analyzer.WithEnhancer(enhancer))
	}

	return &deps{
		config:   config,
		logger:   logger,
		metrics:  m,
		store:    store,
		analyzer: analyzer.New(store, opts...),
	}
}

// finish flushes the metrics textfile and the logger.
func (d *deps) finish() {
	if err := d.metrics.WriteToTextfile(d.config.Metrics.File); err != nil {
		d.logger.Warn("writing metrics", zap.Error(err))
	}
	_ = d.logger.Sync()
}

func newStore(ctx context.Context, config *Config, logger *zap.Logger, m *metrics.Metrics) (*modelstore.Store, error) {
	opts := []modelstore.Option{
		modelstore.WithLogger(logger),
		modelstore.WithDimensions(config.Embedding.Dimensions),
		modelstore.WithRecorder(m),
	}

	provider := strings.TrimSpace(strings.ToLower(config.Embedding.Provider))
	switch provider {
	case "", providerLocal:
	case providerGemini:
		opts = append(opts, modelstore.WithEmbedder(geminiEmbedder(ctx, config, logger)))
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", config.Embedding.Provider)
	}

	return modelstore.New(config.Models.Dir, opts...), nil
}

// geminiEmbedder defers the API key lookup to the first comparison so a
// missing key degrades to the local embedder instead of failing startup.
func geminiEmbedder(ctx context.Context, config *Config, log *zap.Logger) modelstore.EmbedderFactory {
	return func() (semantic.Embedder, error) {
		apiKey, err := loadAPIKey(config.AI.Gemini)
		if err != nil {
			return nil, err
		}

		model := config.Embedding.Gemini.Model
		embedder, err := gemini.NewEmbedder(ctx, apiKey, model, config.Embedding.Dimensions,
			logger.WithCommonFields(log, providerGemini, model))
		if err != nil {
			return nil, err
		}
		return embedder, nil
	}
}

func newEnhancer(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Enhancer, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != providerGemini {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
	if cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when ai is enabled")
	}

	apiKey, err := loadAPIKey(cfg.Gemini)
	if err != nil {
		return nil, err
	}

	genLogger := logger.WithCommonFields(log, providerGemini, cfg.Gemini.Model).
		With(zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries))

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	enhancer := gemini.NewEnhancer(generator, cfg.Gemini.MaxLogLength,
		logger.WithCommonFields(log, providerGemini, generator.Model()))
	if cfg.Prompt != nil {
		enhancer.SetPromptOverrides(gemini.PromptOverrides{
			TargetRole:       cfg.Prompt.TargetRole,
			Seniority:        cfg.Prompt.Seniority,
			FocusAreas:       cfg.Prompt.FocusAreas,
			UserInstructions: cfg.Prompt.UserInstructions,
		})
	}

	return enhancer, nil
}

func loadAPIKey(cfg *GeminiConfig) (string, error) {
	src := secrets.Source{Name: "gemini api key", Env: geminiAPIKeyEnv}
	if cfg != nil {
		src.Value = cfg.APIKey
		src.File = cfg.APIKeyFile
	}

	apiKey, err := secrets.Load(src)
	if err != nil {
		return "", fmt.Errorf("%w (set ai.gemini.api-key-file or %s)", err, geminiAPIKeyEnv)
	}
	return apiKey, nil
}

// redacted copies the config for logging without the inline API key.
func redacted(config *Config) Config {
	c := *config
	if c.AI != nil && c.AI.Gemini != nil && c.AI.Gemini.APIKey != "" {
		aiCfg := *c.AI
		gem := *aiCfg.Gemini
		gem.APIKey = "***"
		aiCfg.Gemini = &gem
		c.AI = &aiCfg
	}
	return c
}

// readInput reads a file, or stdin when path is "-".
func readInput(path string) (string, error) {
	if path == stdinPath {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func isTerminal(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}
