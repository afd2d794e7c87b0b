// Package completion relays prompts to the language-model provider on behalf
// of clients so the provider credential never leaves the server.
package completion

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/atinyakov/VocabDeck/internal/prompt"
	"github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

var (
	// ErrNoPrompt is returned for requests without any message content.
	ErrNoPrompt = errors.New("No prompt provided")
	// ErrNoCredential is returned when neither the server nor the caller supplied a key.
	ErrNoCredential = errors.New("OpenAI API key not found")
	// ErrEmptyCompletion is returned when the provider answered with no text.
	ErrEmptyCompletion = errors.New("No text was generated")
	// ErrProvider wraps every provider-side failure, including an open breaker.
	ErrProvider = errors.New("Error generating text")
)

// ChatClient is the subset of *openai.Client used by the gateway.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ClientFactory builds a provider client for one outbound call.
type ClientFactory func(apiKey string) ChatClient

// OpenAIClient is the production ClientFactory.
func OpenAIClient(apiKey string) ChatClient {
	return openai.NewClient(apiKey)
}

// Config tunes the outbound provider call.
type Config struct {
	APIKey      string
	Model       string
	MaxTokens int
	// Temperature is sent as is; nil means DefaultTemperature.
	Temperature *float32
	Timeout     time.Duration
}

// DefaultTemperature is used when Config.Temperature is nil.
const DefaultTemperature float32 = 0.2

// Request is one completion call.
type Request struct {
	Messages []prompt.Message
	Format   prompt.Format
	// APIKey, when set, replaces the server credential for this call only.
	APIKey string
}

// Gateway forwards prompts to the provider. It never retries.
type Gateway struct {
	cfg       Config
	newClient ClientFactory
	breaker   *gobreaker.CircuitBreaker
	log       *zap.Logger
}

// NewGateway returns a Gateway. Unset Config fields fall back to gpt-4o-mini,
// 500 tokens, DefaultTemperature and a 30 second timeout.
func NewGateway(cfg Config, newClient ClientFactory, log *zap.Logger) *Gateway {
	if cfg.Model == "" {
		cfg.Model = openai.GPT4oMini
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 500
	}
	if cfg.Temperature == nil {
		t := DefaultTemperature
		cfg.Temperature = &t
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "completion-provider",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// a client hanging up says nothing about the provider
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &Gateway{cfg: cfg, newClient: newClient, breaker: breaker, log: log}
}

// Complete sends req to the provider and returns the generated text trimmed of
// surrounding whitespace.
func (g *Gateway) Complete(ctx context.Context, req Request) (string, error) {
	if !hasContent(req.Messages) {
		return "", ErrNoPrompt
	}

	key := g.cfg.APIKey
	if req.APIKey != "" {
		key = req.APIKey
	}
	if key == "" {
		return "", ErrNoCredential
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       g.cfg.Model,
		Messages:    toChatMessages(req.Messages),
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: wireTemperature(*g.cfg.Temperature),
	}
	if req.Format == prompt.FormatJSON {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	call := func() (interface{}, error) {
		// the client lives only for this call
		client := g.newClient(key)

		callCtx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()

		return client.CreateChatCompletion(callCtx, chatReq)
	}

	var (
		out interface{}
		err error
	)
	if req.APIKey != "" {
		// caller-supplied keys must not trip the shared breaker
		out, err = call()
	} else {
		out, err = g.breaker.Execute(call)
	}
	if err != nil {
		g.log.Error("completion provider failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}

	resp := out.(openai.ChatCompletionResponse)
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

// wireTemperature maps 0 to the smallest positive float32, since go-openai
// omits a zero temperature from the request body.
func wireTemperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}

func hasContent(msgs []prompt.Message) bool {
	for _, m := range msgs {
		if strings.TrimSpace(m.Content) != "" {
			return true
		}
	}
	return false
}

func toChatMessages(msgs []prompt.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(msgs))
	for _, m := range msgs {
		role := m.Role
		switch role {
		case openai.ChatMessageRoleSystem, openai.ChatMessageRoleAssistant:
		default:
			role = openai.ChatMessageRoleUser
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return out
}
