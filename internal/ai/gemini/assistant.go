package gemini

import (
	"context"
	"errors"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/resumatch/internal/ai"
	"github.com/spigell/resumatch/internal/utils"
)

const defaultMaxLogLength = 200

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
}

// Assistant answers career questions through a Gemini chat.
type Assistant struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

var _ ai.Assistant = (*Assistant)(nil)

func NewAssistant(generator contentGenerator, maxLogLength int, logger *zap.Logger) *Assistant {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Assistant{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (a *Assistant) Ask(ctx context.Context, query string, c *ai.Context) (string, error) {
	if query == "" {
		return "", errors.New("query must not be empty")
	}

	system := ai.SystemPrompt(c)

	a.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(system)),
		zap.String("prompt_preview", utils.TruncateForLog(system, a.maxLogLen)),
		zap.String("query_preview", utils.TruncateForLog(query, a.maxLogLen)),
	)

	answer, err := a.generator.GenerateContent(ctx, system, query)
	if err != nil {
		return "", err
	}

	a.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(answer)),
		zap.String("response_preview", utils.TruncateForLog(answer, a.maxLogLen)),
	)

	return answer, nil
}
