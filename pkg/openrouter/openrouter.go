// Package openrouter builds chat-model clients against an OpenRouter-style
// OpenAI-compatible API. Research briefs run long, so defaults lean toward
// generous token and timeout budgets and a low temperature.
package openrouter

import (
	"context"
	"fmt"
	"strings"
	"time"

	openaimodel "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type LLMBuilder interface {
	New(ctx context.Context) (model.BaseChatModel, error)
}

var _ LLMBuilder = (*Config)(nil)

type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" required:"true"`
	MaxCompletionToken *int          `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"4000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.3"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"120s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`
}

func (c *Config) New(ctx context.Context) (model.BaseChatModel, error) {
	conf := &openaimodel.ChatModelConfig{
		BaseURL:     strings.TrimRight(c.BaseURL, "/"),
		APIKey:      strings.TrimSpace(c.APIKey),
		Model:       strings.TrimSpace(c.Model),
		MaxTokens:   c.MaxCompletionToken,
		Temperature: &c.Temperature,
		Timeout:     c.Timeout,
	}

	m, err := openaimodel.NewChatModel(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("openrouter: create chat model: %w", err)
	}

	return m, nil
}

// NewClient creates a raw OpenAI SDK client configured for OpenRouter.
func NewClient(cfg Config) *openaisdk.Client {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil
	}

	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
	}

	if trimmed := strings.TrimRight(cfg.BaseURL, "/"); trimmed != "" {
		opts = append(opts, option.WithBaseURL(trimmed))
	}

	// OpenRouter attributes traffic through these headers.
	if cfg.SiteURL != "" {
		opts = append(opts, option.WithHeader("HTTP-Referer", cfg.SiteURL))
	}
	if cfg.SiteName != "" {
		opts = append(opts, option.WithHeader("X-Title", cfg.SiteName))
	}

	client := openaisdk.NewClient(opts...)
	return &client
}
