package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/resumatch/internal/resume"
	"github.com/spigell/resumatch/internal/utils"
)

//go:embed prompt.md
var entityPrompt string

// EntityRecognizer asks Gemini to tag organizations, products and places.
type EntityRecognizer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

var _ resume.EntityRecognizer = (*EntityRecognizer)(nil)

func NewEntityRecognizer(generator contentGenerator, maxLogLength int, logger *zap.Logger) *EntityRecognizer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &EntityRecognizer{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (r *EntityRecognizer) Recognize(ctx context.Context, text string) ([]resume.Entity, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	r.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(text)),
		zap.String("prompt_preview", utils.TruncateForLog(text, r.maxLogLen)),
	)

	raw, err := r.generator.GenerateContent(ctx, entityPrompt, text)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, r.maxLogLen)),
	)

	return parseEntities(raw)
}

func parseEntities(raw string) ([]resume.Entity, error) {
	cleaned := extractJSON(raw)

	var items []map[string]any
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		var wrapped struct {
			Entities []map[string]any `json:"entities"`
		}
		if werr := json.Unmarshal([]byte(cleaned), &wrapped); werr != nil {
			return nil, fmt.Errorf("parse gemini entities: %w", err)
		}
		items = wrapped.Entities
	}

	entities := make([]resume.Entity, 0, len(items))
	seen := make(map[resume.Entity]struct{})
	for _, item := range items {
		e := resume.Entity{
			Text:  coerceString(item["text"]),
			Label: strings.ToUpper(coerceString(item["label"])),
		}
		if e.Text == "" {
			continue
		}

		switch e.Label {
		case resume.LabelOrganization, resume.LabelProduct, resume.LabelLocation:
		default:
			continue
		}

		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		entities = append(entities, e)
	}

	return entities, nil
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

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}
