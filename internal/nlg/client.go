// Package nlg adapts language-model providers for intervention messaging
// and free-text event parsing.
package nlg

import (
	"context"
	"fmt"

	"github.com/huangsam/pulse/internal/contract"
	"github.com/huangsam/pulse/schema"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// langchainClient adapts any langchaingo model to the completion contract.
type langchainClient struct {
	model llms.Model
}

var _ contract.LanguageModelClient = &langchainClient{} // Compile-time check

// Complete runs a single-prompt completion against the underlying model.
func (c *langchainClient) Complete(ctx context.Context, prompt string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt)
	if err != nil {
		return "", fmt.Errorf("completion failed: %w", err)
	}
	return out, nil
}

// clientBuilders maps each provider to its constructor. Selection happens
// here once, never by inspecting the client type at call sites.
var clientBuilders = map[schema.LLMProvider]func(model string) (contract.LanguageModelClient, error){
	schema.OpenAIProvider: func(model string) (contract.LanguageModelClient, error) {
		llm, err := openai.New(openai.WithModel(model))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenAI client: %w. Check that OPENAI_API_KEY is set", err)
		}
		return &langchainClient{model: llm}, nil
	},
	schema.OllamaProvider: func(model string) (contract.LanguageModelClient, error) {
		llm, err := ollama.New(ollama.WithModel(model))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Ollama client: %w. Check that the Ollama server is reachable", err)
		}
		return &langchainClient{model: llm}, nil
	},
}

// NewClient builds a completion client for the provider. The NoneProvider
// yields a nil client, which downstream code treats as "templates only".
func NewClient(provider schema.LLMProvider, model string) (contract.LanguageModelClient, error) {
	if provider == schema.NoneProvider || provider == "" {
		return nil, nil
	}
	builder, ok := clientBuilders[provider]
	if !ok {
		return nil, fmt.Errorf("unsupported LLM provider: %s. Must be openai, ollama, or none", provider)
	}
	return builder(model)
}
