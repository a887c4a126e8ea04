// Package llm adapts Gemini chat models (via the Eino component) to the
// LanguageModelPort the router and explorer depend on.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/AngelitoMA11/DataProject-3/internal/agent/model"
	"github.com/AngelitoMA11/DataProject-3/internal/agent/tools"
	errx "github.com/AngelitoMA11/DataProject-3/internal/core/error"
	logx "github.com/AngelitoMA11/DataProject-3/pkg/logger"
)

// Config holds what is needed to build both Gemini models.
type Config struct {
	APIKey   string
	BaseURL  string
	Planner  *model.PlannerModelConfig
	Explorer *model.ExplorerModelConfig
}

// Models holds the two LanguageModelPort implementations: the planner with
// the five trip tools bound, and the untooled explorer model for the
// destination sub-dialogue and itinerary text.
type Models struct {
	Planner  model.LanguageModelPort
	Explorer model.LanguageModelPort
}

// NewModels creates both Gemini chat models and wraps them as ports.
func NewModels(ctx context.Context, cfg Config) (*Models, error) {
	if cfg.Planner == nil || cfg.Explorer == nil {
		return nil, fmt.Errorf("model configs are not properly initialized")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	plannerModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       cfg.Planner.Model,
		Temperature: &cfg.Planner.Temperature,
		MaxTokens:   &cfg.Planner.MaxTokens,
		ThinkingConfig: &genai.ThinkingConfig{
			IncludeThoughts: true,
			ThinkingBudget:  genai.Ptr(int32(2000)),
		},
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating planner model")
		return nil, fmt.Errorf("error creating planner model: %w", err)
	}
	if err := plannerModel.BindTools(tools.GetToolInfos()); err != nil {
		logx.Error().Err(err).Msg("Failed to bind tools to planner model")
		return nil, fmt.Errorf("failed to bind tools: %w", err)
	}

	explorerModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       cfg.Explorer.Model,
		Temperature: &cfg.Explorer.Temperature,
		MaxTokens:   &cfg.Explorer.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating explorer model")
		return nil, fmt.Errorf("error creating explorer model: %w", err)
	}

	plannerTimeout, err := parseTimeout(cfg.Planner.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid planner timeout: %w", err)
	}
	explorerTimeout, err := parseTimeout(cfg.Explorer.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid explorer timeout: %w", err)
	}

	return &Models{
		Planner:  &adapter{cm: plannerModel, modelName: cfg.Planner.Model, timeout: plannerTimeout},
		Explorer: &adapter{cm: explorerModel, modelName: cfg.Explorer.Model, timeout: explorerTimeout},
	}, nil
}

func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 30 * time.Second, nil
	}
	return time.ParseDuration(s)
}

// adapter bounds each call with a timeout and translates transport errors
// into the model error kinds the router understands.
type adapter struct {
	cm        *gemini.ChatModel
	modelName string
	timeout   time.Duration
}

func (a *adapter) Complete(ctx context.Context, systemPrompt string, history []*schema.Message) (*schema.Message, error) {
	msgs := make([]*schema.Message, 0, len(history)+1)
	msgs = append(msgs, schema.SystemMessage(systemPrompt))
	msgs = append(msgs, history...)

	cctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	out, err := a.cm.Generate(cctx, msgs)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, errx.Wrap(err, errx.ModelTimeout, fmt.Sprintf("model %s timed out after %s", a.modelName, a.timeout))
		}
		return nil, errx.Wrap(err, errx.ModelUnavailable, fmt.Sprintf("model %s unavailable", a.modelName))
	}
	if out == nil {
		return nil, errx.Newf(errx.ModelUnavailable, "model %s returned no message", a.modelName)
	}

	a.attachUsageCost(out)
	return out, nil
}

// attachUsageCost computes and logs the USD cost of the call and exposes it
// in the message Extra for the router to accumulate per turn.
func (a *adapter) attachUsageCost(out *schema.Message) {
	if out.ResponseMeta == nil || out.ResponseMeta.Usage == nil {
		return
	}
	usage := out.ResponseMeta.Usage
	pricing := model.ResolvePricing(a.modelName)
	inC, outC, totalC := model.ComputeCost(usage, pricing)

	if out.Extra == nil {
		out.Extra = map[string]any{}
	}
	out.Extra["usage_cost_usd"] = totalC

	logx.Debug().
		Str("model", a.modelName).
		Int("prompt_tokens", usage.PromptTokens).
		Int("completion_tokens", usage.CompletionTokens).
		Int("total_tokens", usage.TotalTokens).
		Float64("input_cost_usd", inC).
		Float64("output_cost_usd", outC).
		Float64("total_cost_usd", totalC).
		Msg("LLM usage")
}

var _ model.LanguageModelPort = (*adapter)(nil)
