package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"tourplan/app/client/googleweather"
	"tourplan/app/config"
	"tourplan/app/service/prefs"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
	"github.com/tmc/langchaingo/tools"
)

// Service runs one conversation turn: extract preferences from the
// user-authored transcript, fetch weather once a city is known, and
// generate the reply. It holds no per-session state; the caller owns
// the transcript and the accumulated record.
type Service struct {
	extractAgent *prefs.ExtractAgent
	replyAgent   *ReplyAgent
	weatherTool  tools.Tool
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)
	weatherClient := do.MustInvoke[*googleweather.Client](di)

	extractAgent := prefs.NewExtractAgent(createClient(cfg.OpenAI.Extract), cfg.OpenAI.Extract.Model)
	replyAgent := NewReplyAgent(createClient(cfg.OpenAI.Reply), cfg.OpenAI.Reply.Model)

	return newService(extractAgent, replyAgent, NewWeatherTool(weatherClient)), nil
}

func newService(extractAgent *prefs.ExtractAgent, replyAgent *ReplyAgent, weatherTool tools.Tool) *Service {
	return &Service{
		extractAgent: extractAgent,
		replyAgent:   replyAgent,
		weatherTool:  weatherTool,
	}
}

// HandleTurn processes one incoming user message against the session
// transcript and the accumulated preference record. It always returns
// a user-visible reply: model and weather failures degrade, they never
// abort the turn.
func (s *Service) HandleTurn(ctx context.Context, userMessage string, history []Message, current prefs.Record) TurnResult {
	combined := combineUserText(userMessage, history)

	merged := current
	extracted, err := s.extractAgent.Extract(ctx, combined, current.Persona)
	if err != nil {
		// No new information this turn; never a reset.
		slog.Warn("Preference extraction failed, keeping previous record", "error", err)
	} else {
		merged = current.Merge(extracted)
	}

	var weatherJSON string
	if merged.City != "" {
		weatherJSON, err = s.weatherTool.Call(ctx, merged.City)
		if err != nil {
			slog.Warn("Weather lookup failed, replying without weather context",
				"city", merged.City,
				"error", err,
			)
			weatherJSON = ""
		}
	}

	text, err := s.replyAgent.Call(ctx, userMessage, history, weatherJSON)
	if err != nil {
		slog.Error("Reply generation failed", "error", err)
		text = fmt.Sprintf("Error processing request: %s", err)
	}

	isComplete := merged.Complete()
	if isComplete {
		slog.Info("Collected all travel preferences",
			"city", merged.City,
			"time_range", merged.TimeRange,
			"budget", merged.Budget,
			"interests", merged.Interests,
			"starting_point", merged.StartingPoint,
		)
	}

	return TurnResult{
		AssistantText: text,
		Preferences:   merged,
		IsComplete:    isComplete,
	}
}

// combineUserText rolls the user-authored side of the transcript plus
// the new message into one extraction input. Assistant text is never
// fed back into extraction.
func combineUserText(userMessage string, history []Message) string {
	userMessages := pie.Filter(history, func(msg Message) bool {
		return msg.Role == RoleUser
	})

	parts := pie.Map(userMessages, func(msg Message) string {
		return msg.Content
	})

	parts = append(parts, userMessage)

	return strings.Join(parts, " ")
}
