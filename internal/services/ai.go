package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/todo-tracker/internal/constants"
	apierrors "github.com/yukikurage/todo-tracker/internal/errors"
)

var ErrSuggestTextRequired = apierrors.New(apierrors.ErrValidation, "text is required")

// chatCompleter is the part of the OpenAI client the suggester uses.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// TodoSuggester drafts todos from free text. Drafts are never stored.
type TodoSuggester struct {
	client chatCompleter
	now    func() time.Time
}

// TodoDraft is a suggested todo the client may submit as a create request.
type TodoDraft struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

var languageNames = map[string]string{
	"en": "English",
	"ru": "Russian",
}

func NewTodoSuggester(apiKey string) *TodoSuggester {
	return &TodoSuggester{
		client: openai.NewClient(apiKey),
		now:    time.Now,
	}
}

// Suggest extracts todo drafts from text, written in lang.
func (s *TodoSuggester) Suggest(ctx context.Context, text, lang string) ([]TodoDraft, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrSuggestTextRequired
	}

	language, ok := languageNames[lang]
	if !ok {
		language = languageNames["en"]
	}

	ctx, cancel := context.WithTimeout(ctx, constants.AIRequestTimeout)
	defer cancel()

	prompt := fmt.Sprintf(`You extract concrete todo items from text.

Current time (UTC): %s

Text:
%s

Return a JSON array of at most %d items in this form:
[
  {
    "title": "short title, at most 100 characters",
    "description": "details",
    "due_date": "deadline in ISO8601 (e.g. 2025-10-28T23:59:59Z), or null when none is given"
  }
]

Rules:
- Write titles and descriptions in %s
- Return [] when the text contains no tasks
- Resolve relative dates ("tomorrow", "next week") to absolute ones
- Return JSON only, without any explanation`, s.now().UTC().Format(time.RFC3339), text, constants.MaxAIGeneratedTasks, language)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var drafts []TodoDraft
	if err := json.Unmarshal([]byte(content), &drafts); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	result := make([]TodoDraft, 0, len(drafts))
	for _, d := range drafts {
		title, err := normalizeTitle(d.Title)
		if err != nil {
			continue
		}
		d.Title = title
		if d.DueDate != nil {
			due := d.DueDate.UTC()
			d.DueDate = &due
		}
		result = append(result, d)
		if len(result) == constants.MaxAIGeneratedTasks {
			break
		}
	}

	return result, nil
}
