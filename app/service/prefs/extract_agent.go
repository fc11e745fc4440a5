package prefs

import (
	"context"
	"fmt"
	"strings"
	"time"

	_ "embed"

	"github.com/sashabaranov/go-openai"
)

//go:embed extract_prompt_template.txt
var extractPromptTemplate string

const (
	// Extraction is deterministic work, not generation.
	extractTemperature = 0.01
	extractMaxTokens   = 512
	maxExtractDuration = 30 * time.Second
)

type completionClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ExtractAgent maps the combined user-authored conversation text to a
// structured preference Record via a JSON-mode completion.
type ExtractAgent struct {
	client completionClient
	model  string
}

func NewExtractAgent(client completionClient, model string) *ExtractAgent {
	return &ExtractAgent{
		client: client,
		model:  model,
	}
}

// Extract re-derives the full preference record from combinedUserText.
// The caller must treat an error as "no new information this turn".
func (a *ExtractAgent) Extract(ctx context.Context, combinedUserText, persona string) (Record, error) {
	if persona == "" {
		persona = "null"
	}

	systemPrompt := strings.ReplaceAll(extractPromptTemplate, "{persona}", persona)

	ctx, cancel := context.WithTimeout(ctx, maxExtractDuration)
	defer cancel()

	aiResponse, err := a.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: a.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: combinedUserText,
				},
			},
			MaxCompletionTokens: extractMaxTokens,
			Temperature:         extractTemperature,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		},
	)
	if err != nil {
		return Record{}, fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(aiResponse.Choices) == 0 {
		return Record{}, fmt.Errorf("no chat completion found")
	}

	record, err := decodeRecord(aiResponse.Choices[0].Message.Content)
	if err != nil {
		return Record{}, err
	}

	record.sanitize()

	return record, nil
}
