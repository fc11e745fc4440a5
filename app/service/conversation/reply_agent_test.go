package conversation

import (
	"context"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReplyPrompt_QuestionPriorityOrder(t *testing.T) {
	prompt := buildReplyPrompt("")

	city := strings.Index(prompt, "City (if empty)")
	timings := strings.Index(prompt, "Timings (if empty)")
	budget := strings.Index(prompt, "Budget (if empty)")
	interests := strings.Index(prompt, "Interests (if empty")
	start := strings.Index(prompt, "Starting point (if empty)")

	require.NotEqual(t, -1, city)
	require.NotEqual(t, -1, start)

	assert.Less(t, city, timings)
	assert.Less(t, timings, budget)
	assert.Less(t, budget, interests)
	assert.Less(t, interests, start)
}

func TestBuildReplyPrompt_ContainsSentinel(t *testing.T) {
	prompt := buildReplyPrompt("")

	assert.Contains(t, prompt, CompletionSentinel)
	assert.NotContains(t, prompt, "{completion_sentinel}")
	assert.NotContains(t, prompt, "{weather_info}")
}

func TestBuildReplyPrompt_WeatherSection(t *testing.T) {
	withWeather := buildReplyPrompt(`[{"date":"2024-05-01"}]`)
	assert.Contains(t, withWeather, "already retrieved")
	assert.Contains(t, withWeather, `"2024-05-01"`)

	withoutWeather := buildReplyPrompt("")
	assert.NotContains(t, withoutWeather, "already retrieved")
}

func TestReplyAgent_Call_MessageLayout(t *testing.T) {
	stub := &stubCompletion{content: "  Sounds like a great trip!  "}
	agent := NewReplyAgent(stub, "reply-model")

	history := []Message{
		{Role: RoleUser, Content: "I want to visit Jaipur"},
		{Role: RoleAssistant, Content: "When would you like to go?"},
	}

	text, err := agent.Call(context.Background(), "From 9 to 6", history, "")
	require.NoError(t, err)
	assert.Equal(t, "Sounds like a great trip!", text)

	require.Len(t, stub.requests, 1)
	request := stub.requests[0]

	assert.Equal(t, "reply-model", request.Model)
	assert.InDelta(t, 0.7, request.Temperature, 0.001)

	require.Len(t, request.Messages, 4)
	assert.Equal(t, openai.ChatMessageRoleSystem, request.Messages[0].Role)
	assert.Equal(t, openai.ChatMessageRoleUser, request.Messages[1].Role)
	assert.Equal(t, "I want to visit Jaipur", request.Messages[1].Content)
	assert.Equal(t, openai.ChatMessageRoleAssistant, request.Messages[2].Role)
	assert.Equal(t, "From 9 to 6", request.Messages[3].Content)
}
