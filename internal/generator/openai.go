package generator

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIClient talks to any chat-completions compatible endpoint.
type OpenAIClient struct {
	Model string
	Opts  []option.RequestOption
}

func NewOpenAIClient(s *Settings) (*OpenAIClient, error) {
	if s == nil {
		return nil, errors.New("generator settings are nil")
	}
	if s.APIKey == "" {
		return nil, errors.New("openai api key missing")
	}
	if s.Model == "" {
		return nil, errors.New("openai model is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(s.APIKey)}
	if s.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(s.BaseURL))
	}
	return &OpenAIClient{Model: s.Model, Opts: opts}, nil
}

func (o *OpenAIClient) complete(ctx context.Context, prompt Prompt) (string, error) {
	client := openai.NewClient(o.Opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt.System),
			openai.UserMessage(prompt.User),
		},
		Temperature: openai.Float(0.7),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAIClient) Write(ctx context.Context, gc Context) (Draft, error) {
	raw, err := o.complete(ctx, BuildWritePrompt(gc))
	if err != nil {
		return Draft{}, err
	}
	return ParseDraft(raw)
}

func (o *OpenAIClient) Hashtags(ctx context.Context, gc Context, content string) ([]string, error) {
	raw, err := o.complete(ctx, BuildHashtagPrompt(gc, content))
	if err != nil {
		return nil, err
	}
	return ParseHashtags(raw)
}

func (o *OpenAIClient) Repurpose(ctx context.Context, gc Context, targetPlatform, content string) (Repurposed, error) {
	raw, err := o.complete(ctx, BuildRepurposePrompt(gc, targetPlatform, content))
	if err != nil {
		return Repurposed{}, err
	}
	return ParseRepurposed(raw, targetPlatform)
}

func (o *OpenAIClient) Research(ctx context.Context, gc Context) (Research, error) {
	raw, err := o.complete(ctx, BuildResearchPrompt(gc))
	if err != nil {
		return Research{}, err
	}
	return ParseResearch(raw)
}

func (o *OpenAIClient) Plan(ctx context.Context, gc Context, research Research, days int) ([]PlannedItem, error) {
	raw, err := o.complete(ctx, BuildPlanPrompt(gc, research, days))
	if err != nil {
		return nil, err
	}
	return ParsePlan(raw)
}
