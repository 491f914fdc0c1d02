// Package llm wraps the Anthropic Messages API for task effort scoring and
// natural language task parsing.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const scoringModel = anthropic.Model("claude-3-haiku-20240307")

type Client struct {
	api anthropic.Client
}

func New(apiKey string, opts ...option.RequestOption) *Client {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Client{
		api: anthropic.NewClient(opts...),
	}
}

// TaskInput is one task to score in a bulk run.
type TaskInput struct {
	ID    string
	Title string
	Notes string
}

// ParsedTask is the structured result of parsing free text like
// "remind me to pay rent tomorrow".
type ParsedTask struct {
	Title   string `json:"title"`
	Notes   string `json:"notes"`
	DueDate string `json:"dueDate"` // YYYY-MM-DD
}

// ScoreTaskEffort rates a task's effort on a 1-10 scale. The model answers a
// bare 0-100 number which is divided by 10, rounded and clamped. Any failure
// is returned to the caller, who decides the fallback.
func (c *Client) ScoreTaskEffort(ctx context.Context, title, notes string) (int, error) {
	prompt := fmt.Sprintf(`You are a task scoring assistant. Rate the points for this task on a scale of 0-100 based on difficulty and time required, where:
0-30 = Low difficulty (quick, simple tasks like "reply to email", "make a phone call")
31-60 = Medium difficulty (moderate complexity like "write a report", "debug a feature")
61-100 = High difficulty (complex, time-consuming tasks like "build full authentication system", "refactor entire codebase")

Task: %s
%s
Respond with ONLY a single number between 0-100. No explanation.`, title, notesLine(notes))

	reply, err := c.complete(ctx, prompt, 10)
	if err != nil {
		return 0, err
	}

	raw, err := strconv.Atoi(strings.TrimSpace(reply))
	if err != nil {
		return 0, fmt.Errorf("non-numeric score reply %q: %w", reply, err)
	}

	slog.Debug("task scored", "title", title, "raw", raw)
	return clampScore(raw), nil
}

// ScoreTasks scores many tasks sequentially (the API has no batch endpoint)
// and returns a task-id to score mapping. The first failure aborts the run.
func (c *Client) ScoreTasks(ctx context.Context, tasks []TaskInput) (map[string]int, error) {
	scores := make(map[string]int, len(tasks))
	for _, t := range tasks {
		s, err := c.ScoreTaskEffort(ctx, t.Title, t.Notes)
		if err != nil {
			return nil, fmt.Errorf("scoring task %s: %w", t.ID, err)
		}
		scores[t.ID] = s
	}
	return scores, nil
}

// ParseTask turns free text into a structured task, resolving relative dates
// ("tomorrow", "next Tuesday") against now. A reply that is not valid JSON is
// a hard error: a wrong title or date is worse than no task.
func (c *Client) ParseTask(ctx context.Context, text string, now time.Time) (*ParsedTask, error) {
	today := now.Format("2006-01-02")
	weekday := now.Weekday().String()

	prompt := fmt.Sprintf(`You are a task parsing assistant. Parse the following natural language input into a structured task format.

Today's date: %s (%s)

User input: "%s"

Extract:
1. Task title (the main action/task)
2. Notes (any additional details, can be empty)
3. Due date in YYYY-MM-DD format (if mentioned, otherwise use today's date)

For relative dates:
- "today" = %s
- "tomorrow" = calculate tomorrow's date
- "next Monday/Tuesday/etc" = find the next occurrence of that day
- "coming Thursday" = find the next Thursday
- If no date mentioned, use today: %s

Respond with ONLY valid JSON in this exact format, no other text:
{
  "title": "string",
  "notes": "string",
  "dueDate": "YYYY-MM-DD"
}`, today, weekday, text, today, today)

	reply, err := c.complete(ctx, prompt, 200)
	if err != nil {
		return nil, err
	}

	parsed := &ParsedTask{}
	err = json.Unmarshal([]byte(unfence(reply)), parsed)
	if err != nil {
		return nil, fmt.Errorf("model reply is not valid task JSON: %w", err)
	}
	if parsed.Title == "" {
		return nil, fmt.Errorf("model reply has no task title")
	}

	return parsed, nil
}

func (c *Client) complete(ctx context.Context, prompt string, maxTokens int64) (string, error) {
	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     scoringModel,
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}
	if len(msg.Content) == 0 {
		return "", fmt.Errorf("anthropic reply has no content")
	}
	return msg.Content[0].Text, nil
}

func notesLine(notes string) string {
	if notes == "" {
		return ""
	}
	return "Notes: " + notes + "\n"
}

// clampScore converts a raw 0-100 rating to the stored 1-10 range.
func clampScore(raw int) int {
	s := int(math.Round(float64(raw) / 10))
	if s < 1 {
		return 1
	}
	if s > 10 {
		return 10
	}
	return s
}

// unfence strips a markdown code fence if the model wrapped its JSON in one.
func unfence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
