// Package gemini backs the assistant, the embedding similarity tier and the
// entity recognizer with the Google Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/spigell/resumatch/internal/logger"
	"github.com/spigell/resumatch/internal/utils"
)

const (
	defaultModel      = "gemini-2.5-flash"
	defaultMaxRetries = 3
	defaultMaxOutput  = 500

	// Quota errors asking to come back later than this are not retried.
	maxQuotaDelay = 30 * time.Second
)

var sleep = time.Sleep

var retryAfterRe = regexp.MustCompile(`(?i)retry (?:after|in) (\d+(?:\.\d+)?)\s*(?:s\b|sec|seconds?)`)

var (
	clientOnce   sync.Once
	sharedClient *genai.Client
	clientErr    error
)

// Client returns the process-wide genai client, creating it on first use.
// Later calls reuse the first client regardless of apiKey.
func Client(ctx context.Context, apiKey string) (*genai.Client, error) {
	clientOnce.Do(func() {
		apiKey = strings.TrimSpace(apiKey)
		if apiKey == "" {
			clientErr = errors.New("gemini api key is required")
			return
		}

		sharedClient, clientErr = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if clientErr != nil {
			clientErr = fmt.Errorf("create genai client: %w", clientErr)
		}
	})

	return sharedClient, clientErr
}

type chatSession interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type chatCreator interface {
	Create(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content) (chatSession, error)
}

type genaiChats struct {
	chats *genai.Chats
}

func (c genaiChats) Create(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content) (chatSession, error) {
	chat, err := c.chats.Create(ctx, model, config, history)
	if err != nil {
		return nil, err
	}
	return chat, nil
}

// Generator sends a system instruction and a single user message to Gemini,
// retrying transient API failures.
type Generator struct {
	chats       chatCreator
	model       string
	maxRetries  int
	temperature *float32
	maxOutput   int32
	limiter     *rate.Limiter
	logger      *zap.Logger
}

// NewGenerator creates a Generator on the shared client. A nil limiter
// disables request pacing.
func NewGenerator(ctx context.Context, apiKey, model string, maxRetries int, limiter *rate.Limiter, log *zap.Logger) (*Generator, error) {
	client, err := Client(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	return &Generator{
		chats:      genaiChats{chats: client.Chats},
		model:      model,
		maxRetries: maxRetries,
		limiter:    limiter,
		logger:     logger.WithCommonFields(log, "gemini", model),
	}, nil
}

// WithTemperature returns a copy of the generator sampling at t.
func (g *Generator) WithTemperature(t float32) *Generator {
	clone := *g
	clone.temperature = genai.Ptr(t)
	return &clone
}

// WithMaxOutputTokens returns a copy of the generator allowing n output tokens.
// Thinking tokens count against the same budget.
func (g *Generator) WithMaxOutputTokens(n int32) *Generator {
	clone := *g
	clone.maxOutput = n
	return &clone
}

// GenerateContent returns the textual answer to message under the system
// instruction. At most maxRetries attempts are made.
func (g *Generator) GenerateContent(ctx context.Context, system, message string) (string, error) {
	if g == nil || g.chats == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return "", errors.New("message must not be empty")
	}

	log := g.logger
	if log == nil {
		log = zap.NewNop()
	}

	maxOutput := g.maxOutput
	if maxOutput <= 0 {
		maxOutput = defaultMaxOutput
	}

	config := &genai.GenerateContentConfig{
		MaxOutputTokens: maxOutput,
		Temperature:     g.temperature,
	}
	if system = strings.TrimSpace(system); system != "" {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: system}}}
	}

	attempts := g.maxRetries
	if attempts <= 0 {
		attempts = 1
	}

	schedule := &backoff.ExponentialBackOff{
		InitialInterval: time.Second,
		Multiplier:      2,
		MaxInterval:     maxQuotaDelay,
	}
	schedule.Reset()

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		output, err := g.send(ctx, config, message)
		if err == nil {
			return output, nil
		}
		lastErr = err

		hint, retryable := retryDelay(err)
		if !retryable || attempt == attempts {
			break
		}

		delay := schedule.NextBackOff()
		if hint > delay {
			delay = hint
		}

		log.Warn("gemini request failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		if err := utils.WaitFor(ctx, delay, sleep); err != nil {
			return "", err
		}
	}

	return "", fmt.Errorf("generate content: %w", lastErr)
}

func (g *Generator) send(ctx context.Context, config *genai.GenerateContentConfig, message string) (string, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	chat, err := g.chats.Create(ctx, g.model, config, nil)
	if err != nil {
		return "", err
	}

	resp, err := chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return "", err
	}

	return responseText(resp)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errors.New("gemini api returned no response")
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}

// retryDelay reports whether err is transient and the delay the server asked
// for, if any.
func retryDelay(err error) (time.Duration, bool) {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		var apiErrPtr *genai.APIError
		if !errors.As(err, &apiErrPtr) || apiErrPtr == nil {
			return 0, false
		}
		apiErr = *apiErrPtr
	}

	switch {
	case apiErr.Code >= http.StatusInternalServerError:
		return 0, true
	case apiErr.Code == http.StatusTooManyRequests:
		delay := quotaDelay(apiErr.Message)
		if delay > maxQuotaDelay {
			return delay, false
		}
		return delay, true
	default:
		return 0, false
	}
}

func quotaDelay(message string) time.Duration {
	m := retryAfterRe.FindStringSubmatch(message)
	if m == nil {
		return 0
	}

	seconds, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}

	return time.Duration(seconds * float64(time.Second))
}
