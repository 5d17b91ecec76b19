package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/todo-tracker/internal/constants"
	apierrors "github.com/yukikurage/todo-tracker/internal/errors"
)

type fakeCompleter struct {
	content string
	err     error
	request openai.ChatCompletionRequest
}

func (f *fakeCompleter) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.request = request
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: f.content}},
		},
	}, nil
}

func newTestSuggester(client chatCompleter) *TodoSuggester {
	return &TodoSuggester{
		client: client,
		now: func() time.Time {
			return time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC)
		},
	}
}

func TestSuggest_ParsesFencedResponse(t *testing.T) {
	client := &fakeCompleter{content: "```json\n" + `[
  {"title": "  Buy milk  ", "description": "2 liters", "due_date": "2025-04-11T18:00:00+03:00"},
  {"title": "   ", "description": "dropped"},
  {"title": "Call mom", "description": "", "due_date": null}
]` + "\n```"}

	drafts, err := newTestSuggester(client).Suggest(context.Background(), "buy milk tomorrow, call mom", "ru")
	require.NoError(t, err)

	require.Len(t, drafts, 2)
	assert.Equal(t, "Buy milk", drafts[0].Title)
	require.NotNil(t, drafts[0].DueDate)
	assert.Equal(t, time.Date(2025, 4, 11, 15, 0, 0, 0, time.UTC), *drafts[0].DueDate)
	assert.Equal(t, "Call mom", drafts[1].Title)
	assert.Nil(t, drafts[1].DueDate)

	prompt := client.request.Messages[0].Content
	assert.Contains(t, prompt, "Russian")
	assert.Contains(t, prompt, "2025-04-10T12:00:00Z")
}

func TestSuggest_CapsDrafts(t *testing.T) {
	items := make([]string, 0, constants.MaxAIGeneratedTasks+5)
	for i := 0; i < constants.MaxAIGeneratedTasks+5; i++ {
		items = append(items, fmt.Sprintf(`{"title": "Task %d"}`, i))
	}
	client := &fakeCompleter{content: "[" + strings.Join(items, ",") + "]"}

	drafts, err := newTestSuggester(client).Suggest(context.Background(), "a lot of work", "en")
	require.NoError(t, err)
	assert.Len(t, drafts, constants.MaxAIGeneratedTasks)
}

func TestSuggest_Errors(t *testing.T) {
	t.Run("empty text", func(t *testing.T) {
		client := &fakeCompleter{}
		_, err := newTestSuggester(client).Suggest(context.Background(), "  ", "en")
		assert.ErrorIs(t, err, apierrors.ErrValidation)
		assert.Empty(t, client.request.Messages)
	})

	t.Run("api failure", func(t *testing.T) {
		_, err := newTestSuggester(&fakeCompleter{err: errors.New("boom")}).Suggest(context.Background(), "work", "en")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, apierrors.ErrValidation)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := newTestSuggester(&fakeCompleter{content: "Sure! Here are your tasks."}).Suggest(context.Background(), "work", "en")
		assert.Error(t, err)
	})

	t.Run("unknown language prompts in English", func(t *testing.T) {
		client := &fakeCompleter{content: "[]"}
		drafts, err := newTestSuggester(client).Suggest(context.Background(), "nothing to do", "xx")
		require.NoError(t, err)
		assert.Empty(t, drafts)
		assert.Contains(t, client.request.Messages[0].Content, "English")
	})
}
