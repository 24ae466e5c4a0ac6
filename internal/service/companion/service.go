// Package companion produces AI text from journal entries: insights,
// summaries, reflection prompts and supportive chat replies.
package companion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/heartmarshall/howzue/internal/domain"
)

//go:generate moq -out text_model_mock_test.go -pkg companion . textModel

type textModel interface {
	Complete(ctx context.Context, system string, messages []domain.ChatMessage) (string, error)
}

const (
	minEntriesForAnalysis = 3
	analysisWindow        = 10
	promptWindow          = 5
	maxPrompts            = 3
)

var (
	// ErrDisabled is returned when the identity turned AI insights off.
	ErrDisabled = fmt.Errorf("ai insights disabled: %w", domain.ErrForbidden)

	// ErrNotEnoughEntries is returned before calling the model when the journal is too short.
	ErrNotEnoughEntries = fmt.Errorf("not enough entries: %w", domain.ErrValidation)

	// ErrNotConfigured is returned when no AI text service is available.
	ErrNotConfigured = errors.New("ai text service not configured")
)

// Service gates and formats requests to the AI text service.
type Service struct {
	model textModel
	log   *slog.Logger
}

// New creates a Service. A nil model makes every call fail with ErrNotConfigured.
func New(log *slog.Logger, model textModel) *Service {
	return &Service{model: model, log: log.With("service", "companion")}
}

// Insights looks for triggers and patterns in the most recent entries.
func (s *Service) Insights(ctx context.Context, settings domain.Settings, entries []domain.JournalEntry) (string, error) {
	if err := s.gate(settings); err != nil {
		return "", err
	}
	if len(entries) < minEntriesForAnalysis {
		return "", ErrNotEnoughEntries
	}
	return s.complete(ctx, "insights", insightsSystem, formatEntries(recent(entries, analysisWindow)))
}

// Summary describes mood patterns over the most recent entries.
func (s *Service) Summary(ctx context.Context, settings domain.Settings, entries []domain.JournalEntry) (string, error) {
	if err := s.gate(settings); err != nil {
		return "", err
	}
	if len(entries) < minEntriesForAnalysis {
		return "", ErrNotEnoughEntries
	}
	return s.complete(ctx, "summary", summarySystem, formatEntries(recent(entries, analysisWindow)))
}

// ReflectionPrompts suggests up to three writing prompts from the latest entry texts.
func (s *Service) ReflectionPrompts(ctx context.Context, settings domain.Settings, entries []domain.JournalEntry) ([]string, error) {
	if err := s.gate(settings); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNotEnoughEntries
	}

	var b strings.Builder
	for _, e := range recent(entries, promptWindow) {
		text := strings.TrimSpace(e.Text)
		if text == "" {
			text = "(mood only: " + e.Mood.String() + ")"
		}
		fmt.Fprintf(&b, "- %s\n", text)
	}

	out, err := s.complete(ctx, "prompts", promptsSystem, b.String())
	if err != nil {
		return nil, err
	}
	return parsePrompts(out), nil
}

// Reply continues a supportive conversation with message as the user's latest turn.
func (s *Service) Reply(ctx context.Context, settings domain.Settings, history []domain.ChatMessage, message string) (string, error) {
	if err := s.gate(settings); err != nil {
		return "", err
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return "", domain.NewValidationError("message", "required")
	}
	for i, m := range history {
		if !m.Role.IsValid() {
			return "", domain.NewValidationError(fmt.Sprintf("history[%d].role", i), "must be user or model")
		}
	}

	msgs := make([]domain.ChatMessage, 0, len(history)+1)
	msgs = append(msgs, history...)
	msgs = append(msgs, domain.ChatMessage{Role: domain.ChatRoleUser, Content: message})

	start := time.Now()
	reply, err := s.model.Complete(ctx, companionSystem, msgs)
	if err != nil {
		return "", fmt.Errorf("companion.Reply: %w", err)
	}
	s.log.InfoContext(ctx, "companion replied",
		slog.Int("history", len(history)),
		slog.Duration("took", time.Since(start)),
	)
	return reply, nil
}

func (s *Service) gate(settings domain.Settings) error {
	if s.model == nil {
		return ErrNotConfigured
	}
	if !settings.EnableAIInsights {
		return ErrDisabled
	}
	return nil
}

func (s *Service) complete(ctx context.Context, kind, system, body string) (string, error) {
	start := time.Now()
	out, err := s.model.Complete(ctx, system, []domain.ChatMessage{{Role: domain.ChatRoleUser, Content: body}})
	if err != nil {
		return "", fmt.Errorf("companion.%s: %w", kind, err)
	}
	s.log.InfoContext(ctx, "ai text generated",
		slog.String("kind", kind),
		slog.Duration("took", time.Since(start)),
	)
	return out, nil
}

// recent returns the n newest entries, oldest first.
func recent(entries []domain.JournalEntry, n int) []domain.JournalEntry {
	sorted := make([]domain.JournalEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })
	if len(sorted) > n {
		sorted = sorted[len(sorted)-n:]
	}
	return sorted
}

func formatEntries(entries []domain.JournalEntry) string {
	var b strings.Builder
	b.WriteString("Journal Entries:\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "- Timestamp: %s, Mood: %s, Text: %s\n",
			e.Date.UTC().Format(time.RFC3339), e.Mood, strings.TrimSpace(e.Text))
	}
	return b.String()
}

// listMarker matches a bullet or an enumerator such as "2." or "3)".
var listMarker = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+`)

// parsePrompts takes one prompt per non-empty line, stripping list markers.
func parsePrompts(out string) []string {
	var prompts []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(listMarker.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		prompts = append(prompts, line)
		if len(prompts) == maxPrompts {
			break
		}
	}
	return prompts
}
