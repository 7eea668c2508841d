package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/spigell/resumelyze/internal/ai"
	"github.com/spigell/resumelyze/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

// PromptOverrides are user-supplied hints rendered into the system prompt.
type PromptOverrides struct {
	TargetRole       string
	Seniority        string
	FocusAreas       string
	UserInstructions string
}

// Enhancer asks Gemini for an independent assessment of a résumé.
type Enhancer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
	overrides PromptOverrides
}

var (
	//go:embed prompt.md
	promptTemplate string

	//go:embed schema.json
	responseSchema string
)

const (
	defaultMaxLogLength     = 200
	maxFieldRunes           = 200
	maxUserInstructionRunes = 500
)

var loadSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(responseSchema))
})

func NewEnhancer(generator contentGenerator, maxLogLength int, logger *zap.Logger) *Enhancer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Enhancer{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// SetPromptOverrides replaces the prompt hints. It must not be called
// concurrently with Assess.
func (e *Enhancer) SetPromptOverrides(overrides PromptOverrides) {
	e.overrides = overrides
}

func (e *Enhancer) Model() string {
	if e.generator == nil {
		return ""
	}
	return e.generator.Model()
}

func (e *Enhancer) Assess(ctx context.Context, resume, jobDescription string) (*ai.Assessment, error) {
	if e.generator == nil {
		return nil, errors.New("gemini enhancer has no generator")
	}
	if strings.TrimSpace(resume) == "" || strings.TrimSpace(jobDescription) == "" {
		return nil, errors.New("resume and job description are required")
	}

	system := buildSystemPrompt(e.overrides)
	message := buildMessage(resume, jobDescription)

	e.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(system)+utf8.RuneCountInString(message)),
		zap.String("prompt_preview", utils.TruncateForLog(message, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, system, message)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, e.maxLogLen)),
	)

	assessment, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	assessment.Raw = raw
	return assessment, nil
}

func buildSystemPrompt(o PromptOverrides) string {
	replacer := strings.NewReplacer(
		"{{TARGET_ROLE}}", sanitizeField(o.TargetRole),
		"{{SENIORITY}}", sanitizeField(o.Seniority),
		"{{FOCUS_AREAS}}", sanitizeField(o.FocusAreas),
		"{{USER_INSTRUCTIONS}}", sanitizeInstructions(o.UserInstructions),
	)
	return replacer.Replace(promptTemplate)
}

func buildMessage(resume, jobDescription string) string {
	var b strings.Builder
	b.WriteString("[Inputs]\n\nRésumé:\n")
	b.WriteString(strings.TrimSpace(resume))
	b.WriteString("\n\nJob description:\n")
	b.WriteString(strings.TrimSpace(jobDescription))
	b.WriteString("\n\nJSON Response:")
	return b.String()
}

var bracketReplacer = strings.NewReplacer("[", "(", "]", ")")

func sanitizeLine(s string) string {
	return strings.Join(strings.Fields(bracketReplacer.Replace(s)), " ")
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// sanitizeField flattens a single-line hint. Square brackets are replaced so
// user text cannot open a new prompt section.
func sanitizeField(s string) string {
	s = truncateRunes(sanitizeLine(s), maxFieldRunes)
	if s == "" {
		return "none"
	}
	return s
}

func sanitizeInstructions(s string) string {
	budget := maxUserInstructionRunes
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = sanitizeLine(line)
		if line == "" || budget <= 0 {
			continue
		}
		line = truncateRunes(line, budget)
		budget -= utf8.RuneCountInString(line)
		lines = append(lines, "  - "+line)
	}
	if len(lines) == 0 {
		return "  - none"
	}
	return strings.Join(lines, "\n")
}

var scoreKeys = []string{"jd_match", "ats_score", "readability_score"}

func parseResponse(raw string) (*ai.Assessment, error) {
	data, err := decodeObject(raw)
	if err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	if err := validate(data); err != nil {
		return nil, err
	}

	for _, key := range scoreKeys {
		if v, ok := data[key]; ok {
			data[key] = clampScore(coerceFloat(v))
		}
	}
	if v, ok := data["keyword_density"]; ok {
		data["keyword_density"] = normalizeDensity(coerceFloat(v))
	}
	if secs, ok := data["section_scores"].(map[string]any); ok {
		normalized := make(map[string]any, len(secs))
		for name, v := range secs {
			sec := v.(map[string]any)
			sec["score"] = clampScore(coerceFloat(sec["score"]))
			normalized[strings.ToLower(strings.TrimSpace(name))] = sec
		}
		data["section_scores"] = normalized
	}

	var assessment ai.Assessment
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &assessment,
	})
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}
	if err := decoder.Decode(data); err != nil {
		return nil, fmt.Errorf("decode gemini response: %w", err)
	}

	return &assessment, nil
}

// decodeObject parses the first JSON object in raw, tolerating Markdown
// fences and surrounding prose.
func decodeObject(raw string) (map[string]any, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	err := json.Unmarshal([]byte(cleaned), &data)
	if err == nil {
		return data, nil
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end <= start {
		return nil, err
	}
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &data); err != nil {
		return nil, err
	}
	return data, nil
}

func validate(data map[string]any) error {
	schema, err := loadSchema()
	if err != nil {
		return fmt.Errorf("load response schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(data))
	if err != nil {
		return fmt.Errorf("validate gemini response: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("gemini response does not match schema: %s", strings.Join(errs, "; "))
	}

	return nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(val), "%"))
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func clampScore(f float64) int {
	if math.IsNaN(f) {
		return 0
	}
	return int(math.Round(math.Max(0, math.Min(100, f))))
}

// normalizeDensity accepts both fractions and percentages.
func normalizeDensity(f float64) float64 {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f > 1 {
		f /= 100
	}
	return math.Min(1, f)
}
