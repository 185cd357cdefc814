package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"brightlearn-backend/internal/models"
)

// ErrNotConfigured is returned when no completion API key was provided.
// The chat handler maps it to a 500 "service not configured" so the rest
// of the platform keeps working without the key.
var ErrNotConfigured = errors.New("completion service is not configured")

// Sampling parameters are fixed for every tutor conversation: warm but
// not rambly, with penalties to keep long help sessions from looping.
const (
	completionTemperature      = 0.6
	completionMaxTokens        = 800
	completionPresencePenalty  = 0.6
	completionFrequencyPenalty = 0.3

	// Caller identity passed upstream for abuse monitoring is capped.
	maxUserTagLength = 64
)

type CompletionService struct {
	client *openai.Client
	model  string
}

func NewCompletionService(apiKey, model string) *CompletionService {
	s := &CompletionService{model: model}
	if apiKey != "" {
		s.client = openai.NewClient(apiKey)
	}
	return s
}

func (s *CompletionService) Configured() bool {
	return s.client != nil
}

// TutorReply forwards the moderated conversation to the completion API.
// One bounded attempt, no retries: a transport failure is surfaced to
// the caller immediately.
func (s *CompletionService) TutorReply(ctx context.Context, systemPrompt string, history []models.ChatMessage, callerID string) (string, error) {
	if s.client == nil {
		return "", ErrNotConfigured
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, m := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	if len(callerID) > maxUserTagLength {
		callerID = callerID[:maxUserTagLength]
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:            s.model,
		Messages:         messages,
		Temperature:      completionTemperature,
		MaxTokens:        completionMaxTokens,
		PresencePenalty:  completionPresencePenalty,
		FrequencyPenalty: completionFrequencyPenalty,
		User:             callerID,
	})
	if err != nil {
		return "", fmt.Errorf("completion API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion API returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
