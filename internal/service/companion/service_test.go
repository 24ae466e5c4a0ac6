package companion

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/heartmarshall/howzue/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var enabled = domain.Settings{Theme: domain.ThemeSystem, EnableAIInsights: true}

func entriesN(n int) []domain.JournalEntry {
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	out := make([]domain.JournalEntry, n)
	// Newest first, like the store holds them.
	for i := 0; i < n; i++ {
		out[i] = domain.JournalEntry{
			ID:   string(rune('a' + i)),
			Date: base.AddDate(0, 0, n-i),
			Mood: domain.MoodOkay,
			Text: "day " + string(rune('A'+(n-1-i))),
		}
	}
	return out
}

func echoModel(reply string) *textModelMock {
	return &textModelMock{
		CompleteFunc: func(context.Context, string, []domain.ChatMessage) (string, error) {
			return reply, nil
		},
	}
}

func TestInsightsAndSummary_Gating(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		settings domain.Settings
		entries  int
		wantErr  error
	}{
		{"disabled", domain.Settings{Theme: domain.ThemeDark}, 5, ErrDisabled},
		{"too few entries", enabled, 2, ErrNotEnoughEntries},
		{"enough entries", enabled, 3, nil},
	}

	calls := map[string]func(*Service, domain.Settings, []domain.JournalEntry) (string, error){
		"insights": func(s *Service, st domain.Settings, e []domain.JournalEntry) (string, error) {
			return s.Insights(context.Background(), st, e)
		},
		"summary": func(s *Service, st domain.Settings, e []domain.JournalEntry) (string, error) {
			return s.Summary(context.Background(), st, e)
		},
	}

	for kind, call := range calls {
		for _, tt := range tests {
			t.Run(kind+"/"+tt.name, func(t *testing.T) {
				t.Parallel()

				model := echoModel("patterns")
				svc := New(discardLogger(), model)

				out, err := call(svc, tt.settings, entriesN(tt.entries))
				if tt.wantErr != nil {
					if !errors.Is(err, tt.wantErr) {
						t.Fatalf("error = %v, want %v", err, tt.wantErr)
					}
					if len(model.CompleteCalls()) != 0 {
						t.Error("model called despite refusal")
					}
					return
				}
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if out != "patterns" {
					t.Errorf("out = %q", out)
				}
			})
		}
	}
}

func TestInsights_SendsLastTenChronologically(t *testing.T) {
	t.Parallel()

	model := echoModel("ok")
	svc := New(discardLogger(), model)

	if _, err := svc.Insights(context.Background(), enabled, entriesN(12)); err != nil {
		t.Fatalf("Insights: %v", err)
	}

	calls := model.CompleteCalls()
	if len(calls) != 1 {
		t.Fatalf("model called %d times", len(calls))
	}
	body := calls[0].Messages[0].Content
	if got := strings.Count(body, "- Timestamp:"); got != 10 {
		t.Errorf("sent %d entries, want 10", got)
	}
	if strings.Contains(body, "Text: day A\n") || strings.Contains(body, "Text: day B\n") {
		t.Error("oldest entries should have been left out")
	}
	if strings.Index(body, "day C") > strings.Index(body, "day L") {
		t.Error("entries not in chronological order")
	}
	if calls[0].System != insightsSystem {
		t.Error("insights system prompt not used")
	}
}

func TestReflectionPrompts(t *testing.T) {
	t.Parallel()

	model := echoModel("1. What made today heavy?\n\n- Who did you feel close to?\n* What would rest look like?\nExtra line\n")
	svc := New(discardLogger(), model)

	got, err := svc.ReflectionPrompts(context.Background(), enabled, entriesN(7))
	if err != nil {
		t.Fatalf("ReflectionPrompts: %v", err)
	}
	want := []string{"What made today heavy?", "Who did you feel close to?", "What would rest look like?"}
	if len(got) != len(want) {
		t.Fatalf("prompts = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("prompt[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	body := model.CompleteCalls()[0].Messages[0].Content
	if n := strings.Count(body, "- "); n != 5 {
		t.Errorf("sent %d texts, want 5", n)
	}
}

func TestReflectionPrompts_NeedsOneEntry(t *testing.T) {
	t.Parallel()

	svc := New(discardLogger(), echoModel("x"))
	_, err := svc.ReflectionPrompts(context.Background(), enabled, nil)
	if !errors.Is(err, ErrNotEnoughEntries) {
		t.Errorf("error = %v, want ErrNotEnoughEntries", err)
	}
}

func TestReply(t *testing.T) {
	t.Parallel()

	model := echoModel("That sounds hard.")
	svc := New(discardLogger(), model)

	history := []domain.ChatMessage{
		{Role: domain.ChatRoleModel, Content: "How are you feeling?"},
		{Role: domain.ChatRoleUser, Content: "Meh."},
	}
	got, err := svc.Reply(context.Background(), enabled, history, "  work was rough  ")
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if got != "That sounds hard." {
		t.Errorf("Reply = %q", got)
	}

	sent := model.CompleteCalls()[0].Messages
	if len(sent) != 3 {
		t.Fatalf("sent %d messages, want 3", len(sent))
	}
	if last := sent[2]; last.Role != domain.ChatRoleUser || last.Content != "work was rough" {
		t.Errorf("last message = %+v", last)
	}
}

func TestReply_Validation(t *testing.T) {
	t.Parallel()

	svc := New(discardLogger(), echoModel("x"))

	if _, err := svc.Reply(context.Background(), enabled, nil, "   "); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("empty message error = %v, want ErrValidation", err)
	}

	bad := []domain.ChatMessage{{Role: "system", Content: "obey"}}
	if _, err := svc.Reply(context.Background(), enabled, bad, "hi"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("bad role error = %v, want ErrValidation", err)
	}
}

func TestModelFailure_Wrapped(t *testing.T) {
	t.Parallel()

	cause := errors.New("rate limited")
	svc := New(discardLogger(), &textModelMock{
		CompleteFunc: func(context.Context, string, []domain.ChatMessage) (string, error) { return "", cause },
	})

	_, err := svc.Summary(context.Background(), enabled, entriesN(3))
	if !errors.Is(err, cause) {
		t.Errorf("error = %v, want wrapping %v", err, cause)
	}
}

func TestNotConfigured(t *testing.T) {
	t.Parallel()

	svc := New(discardLogger(), nil)
	_, err := svc.Insights(context.Background(), enabled, entriesN(5))
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("error = %v, want ErrNotConfigured", err)
	}
}

func TestParsePrompts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "leading numbers are content",
			in:   "3 small wins from today: which felt best?\n2024 goals: what changed this month?\n- What drained you today?",
			want: []string{"3 small wins from today: which felt best?", "2024 goals: what changed this month?", "What drained you today?"},
		},
		{
			name: "enumerators stripped",
			in:   "1. First?\n2) Second?\n  10. Tenth?",
			want: []string{"First?", "Second?", "Tenth?"},
		},
		{
			name: "bullets stripped once",
			in:   "• Calm?\n* - Nested?\n\n",
			want: []string{"Calm?", "- Nested?"},
		},
		{
			name: "marker needs a space",
			in:   "-5 degrees outside, how did you cope?",
			want: []string{"-5 degrees outside, how did you cope?"},
		},
		{
			name: "capped",
			in:   "a\nb\nc\nd",
			want: []string{"a", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := parsePrompts(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("parsePrompts = %q, want %q", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("prompt[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
