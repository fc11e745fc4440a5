package conversation

import (
	"context"
	"fmt"
	"strings"
	"time"

	_ "embed"

	"github.com/sashabaranov/go-openai"
)

//go:embed reply_prompt_template.txt
var replyPromptTemplate string

// CompletionSentinel is the exact phrase the assistant emits once all
// preference fields are known. Downstream planners match on it.
const CompletionSentinel = "Thanks, I will be now developing an optimized tour plan for you."

const (
	replyTemperature = 0.7
	replyMaxTokens   = 2048
	maxReplyDuration = 30 * time.Second
)

type completionClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ReplyAgent produces the next user-visible assistant utterance. It is
// stateless: the full transcript is passed in on every call.
type ReplyAgent struct {
	client completionClient
	model  string
}

func NewReplyAgent(client completionClient, model string) *ReplyAgent {
	return &ReplyAgent{
		client: client,
		model:  model,
	}
}

// Call generates the reply for userMessage given the transcript so
// far. weatherJSON is the serialized hourly forecast, empty when no
// weather context is available.
func (a *ReplyAgent) Call(ctx context.Context, userMessage string, history []Message, weatherJSON string) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: buildReplyPrompt(weatherJSON),
	})

	for _, msg := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userMessage,
	})

	ctx, cancel := context.WithTimeout(ctx, maxReplyDuration)
	defer cancel()

	aiResponse, err := a.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:               a.model,
			Messages:            messages,
			MaxCompletionTokens: replyMaxTokens,
			Temperature:         replyTemperature,
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(aiResponse.Choices) == 0 {
		return "", fmt.Errorf("no chat completion found")
	}

	return strings.TrimSpace(aiResponse.Choices[0].Message.Content), nil
}

func buildReplyPrompt(weatherJSON string) string {
	var weatherInfo string
	if weatherJSON != "" {
		weatherInfo = "Here is the hourly weather forecast data (already retrieved):\n" + weatherJSON
	}

	prompt := replyPromptTemplate
	prompt = strings.ReplaceAll(prompt, "{completion_sentinel}", CompletionSentinel)
	prompt = strings.ReplaceAll(prompt, "{weather_info}", weatherInfo)

	return prompt
}
